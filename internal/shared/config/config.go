package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	RedisURL    string
	StoreURL    string

	// Payment provider
	PaystackSecretKey   string
	PaystackBaseURL     string
	PaystackCallbackURL string

	// Email
	EmailProvider string
	ResendAPIKey  string
	BrevoAPIKey   string
	EmailFrom     string
	EmailFromName string
	AdminEmail    string

	AdminAPIKey string

	// Background jobs
	CleanupSchedule string
	PromoSchedule   string
	PromoDelay      time.Duration
	SessionTTL      time.Duration
	AuditRetention  time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:                os.Getenv("PORT"),
		Env:                 os.Getenv("ENV"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            os.Getenv("REDIS_URL"),
		StoreURL:            os.Getenv("STORE_URL"),
		PaystackSecretKey:   os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:     os.Getenv("PAYSTACK_BASE_URL"),
		PaystackCallbackURL: os.Getenv("PAYSTACK_CALLBACK_URL"),
		EmailProvider:       os.Getenv("EMAIL_PROVIDER"),
		ResendAPIKey:        os.Getenv("RESEND_API_KEY"),
		BrevoAPIKey:         os.Getenv("BREVO_API_KEY"),
		EmailFrom:           os.Getenv("EMAIL_FROM"),
		EmailFromName:       os.Getenv("EMAIL_FROM_NAME"),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminAPIKey:         os.Getenv("ADMIN_API_KEY"),
		CleanupSchedule:     os.Getenv("CLEANUP_SCHEDULE"),
		PromoSchedule:       os.Getenv("PROMO_SCHEDULE"),
		PromoDelay:          durationEnv("PROMO_DELAY", 72*time.Hour),
		SessionTTL:          durationEnv("SESSION_TTL", 30*24*time.Hour),
		AuditRetention:      durationEnv("AUDIT_RETENTION", 90*24*time.Hour),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.StoreURL == "" {
		cfg.StoreURL = "http://localhost:3000"
	}
	if cfg.PaystackBaseURL == "" {
		cfg.PaystackBaseURL = "https://api.paystack.co"
	}
	if cfg.PaystackCallbackURL == "" {
		cfg.PaystackCallbackURL = cfg.StoreURL + "/checkout/callback"
	}
	if cfg.EmailFromName == "" {
		cfg.EmailFromName = "Handmade Store"
	}
	if cfg.CleanupSchedule == "" {
		cfg.CleanupSchedule = "@daily"
	}
	if cfg.PromoSchedule == "" {
		cfg.PromoSchedule = "0 0 10 * * *"
	}

	return cfg
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
		return fallback
	}
	return d
}
