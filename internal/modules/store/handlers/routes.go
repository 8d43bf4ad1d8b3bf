package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/rs/zerolog/log"
)

// AdminKeyHeader carries the shared admin API key
const AdminKeyHeader = "X-Admin-Key"

// Routes groups the store handlers for registration. Session, Report and Audit are optional.
type Routes struct {
	Health  *HealthHandler
	Payment *PaymentHandler
	Voucher *VoucherHandler
	Order   *OrderHandler
	Session *SessionHandler
	Report  *ReportHandler
	Audit   AuditStore
}

// AdminAuth guards admin routes with a static key. An empty key locks them.
func AdminAuth(adminKey string) fiber.Handler {
	return keyauth.New(keyauth.Config{
		KeyLookup: "header:" + AdminKeyHeader,
		Validator: func(c *fiber.Ctx, key string) (bool, error) {
			if adminKey == "" {
				return false, keyauth.ErrMissingOrMalformedAPIKey
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
				return false, keyauth.ErrMissingOrMalformedAPIKey
			}
			return true, nil
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Warn().Str("path", c.Path()).Str("ip", c.IP()).Msg("admin request rejected")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		},
	})
}

// Register mounts every store route on app
func (r *Routes) Register(app fiber.Router, admin fiber.Handler) {
	// Health check
	app.Get("/health", r.Health.GetHealth)

	api := app.Group("/api")

	// Payment routes
	api.Post("/paystack/initialize", r.Payment.Initialize)
	api.Get("/paystack/verify/:reference", r.Payment.Verify)
	api.Post("/paystack/webhook", r.Payment.Webhook)

	// Voucher routes
	api.Post("/vouchers/validate", r.Voucher.Validate)

	// Order tracking
	api.Get("/orders/track/:code", r.Order.Track)

	// Device sessions
	if r.Session != nil {
		api.Get("/sessions/:device", r.Session.Get)
		api.Put("/sessions/:device", r.Session.Save)
		api.Delete("/sessions/:device", r.Session.Delete)
	}

	// Admin routes
	adminGroup := api.Group("/admin", admin)
	if r.Audit != nil {
		adminGroup.Use(AuditTrail(r.Audit))
		adminGroup.Get("/audit", NewAuditHandler(r.Audit).List)
	}
	adminGroup.Get("/orders", r.Order.List)
	if r.Report != nil {
		adminGroup.Get("/orders/export", r.Report.ExportOrders)
		adminGroup.Get("/reports/sales", r.Report.Sales)
	}
	adminGroup.Get("/orders/:id", r.Order.Get)
	adminGroup.Put("/orders/:id/status", r.Order.UpdateStatus)
	adminGroup.Post("/orders/:id/receipt", r.Order.ResendReceipt)
	adminGroup.Get("/vouchers", r.Voucher.List)
	adminGroup.Post("/vouchers", r.Voucher.Create)
	adminGroup.Put("/vouchers/:code", r.Voucher.Update)
	adminGroup.Delete("/vouchers/:code", r.Voucher.Delete)
}
