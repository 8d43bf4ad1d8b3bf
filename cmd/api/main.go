package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/email"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/jobs"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/notification"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/payment"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/voucher"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/handlers"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/services"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/storefront-be/cmd/api/docs"
)

// @title Handmade Storefront API
// @version 1.0
// @description Checkout, payment reconciliation, vouchers and order tracking for the handmade goods storefront
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-Key
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	decimal.MarshalJSONWithoutQuotes = true

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting storefront-api")

	// Init database
	db := database.NewDB(cfg.DatabaseURL, cfg.Env)
	defer db.Close()

	// Init repositories (use GORM instance)
	orderRepo := repositories.NewOrderRepo(db.GORM)
	voucherRepo := repositories.NewVoucherRepo(db.GORM)
	auditService := audit.NewService(db.GORM)

	// Device sessions are optional
	var sessionRepo repositories.SessionRepo
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		sessionRepo = repositories.NewSessionRepo(redisClient, cfg.SessionTTL)
	} else {
		log.Warn().Msg("REDIS_URL not set, device sessions disabled")
	}

	// Init email service (multi-provider support)
	emailService := email.NewService(email.NewProvider(cfg.EmailProvider, cfg.ResendAPIKey, cfg.BrevoAPIKey, cfg.EmailFrom, cfg.EmailFromName))
	if emailService.GetProviderName() == "none" {
		log.Warn().Msg("email service not configured, notifications will fail")
	} else {
		log.Info().Str("provider", emailService.GetProviderName()).Msg("email provider ready")
	}

	// Init notifications
	dispatcher := notification.NewDispatcher(emailService, orderRepo, notification.Options{
		StoreName:  cfg.EmailFromName,
		StoreURL:   cfg.StoreURL,
		AdminEmail: cfg.AdminEmail,
	})
	notifier := notification.NewBackground(dispatcher, 30*time.Second)

	// Init payment gateway
	gateway := payment.NewGateway(cfg)
	log.Info().Str("provider", gateway.Name()).Msg("payment gateway ready")

	// Init services
	validator := utils.NewRequestValidator()
	evaluator := voucher.NewEvaluator(voucherRepo, orderRepo)
	checkoutService := services.NewCheckoutService(orderRepo, evaluator, gateway, validator)
	reconcileService := services.NewReconciliationService(orderRepo, voucherRepo, evaluator, gateway, notifier)
	orderService := services.NewOrderService(orderRepo, notifier, dispatcher)
	voucherService := services.NewVoucherService(voucherRepo, evaluator, validator)
	maintenanceService := services.NewMaintenanceService(orderRepo, dispatcher, cfg.PromoDelay)
	reportService := services.NewReportService(analytics.NewAggregator(db.GORM), orderRepo, export.NewService("Orders"))

	// Scheduled jobs
	scheduler := jobs.NewScheduler(10 * time.Minute)
	if err := scheduler.Add("cleanup-abandoned-orders", cfg.CleanupSchedule, maintenanceService.CleanupAbandoned); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule cleanup job")
	}
	if err := scheduler.Add("promo-followups", cfg.PromoSchedule, maintenanceService.SendPromoFollowups); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule promo job")
	}
	purgeAudit := func(ctx context.Context) error {
		_, err := auditService.Purge(ctx, cfg.AuditRetention)
		return err
	}
	if err := scheduler.Add("purge-audit-log", cfg.CleanupSchedule, purgeAudit); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule audit purge job")
	}
	scheduler.Start()

	// Init handlers
	routes := &handlers.Routes{
		Health:  handlers.NewHealthHandler(gateway.Name(), emailService.GetProviderName(), sessionRepo != nil),
		Payment: handlers.NewPaymentHandler(checkoutService, reconcileService),
		Voucher: handlers.NewVoucherHandler(voucherService),
		Order:   handlers.NewOrderHandler(orderService),
		Report:  handlers.NewReportHandler(reportService),
		Audit:   auditService,
	}
	if sessionRepo != nil {
		routes.Session = handlers.NewSessionHandler(services.NewSessionService(sessionRepo, validator))
	}
	if cfg.AdminAPIKey == "" {
		log.Warn().Msg("ADMIN_API_KEY not set, admin routes are locked")
	}

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Handmade Storefront API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(utils.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.StoreURL,
		AllowHeaders: "Origin, Content-Type, Accept, " + handlers.AdminKeyHeader,
	}))

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.Register(app, handlers.AdminAuth(cfg.AdminAPIKey))

	// Start server
	go func() {
		log.Info().Msgf("storefront-api running at :%s", cfg.Port)
		log.Info().Msgf("Swagger UI: http://localhost:%s/swagger/", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	scheduler.Stop()
	notifier.Drain()
	log.Info().Int64("failed_notifications", notifier.Failures()).Msg("shutdown complete")
}
