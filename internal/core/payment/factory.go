package payment

import (
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/config"
	"github.com/rs/zerolog/log"
)

// NewGateway creates a payment gateway based on configuration.
// A missing secret key is not fatal here; every call then fails with a
// configuration error so the rest of the store keeps serving.
func NewGateway(cfg *config.Config) Gateway {
	if cfg.PaystackSecretKey == "" {
		log.Warn().Msg("PAYSTACK_SECRET_KEY is not set, payments are unavailable")
	} else {
		log.Info().Str("base_url", cfg.PaystackBaseURL).Msg("using Paystack payment gateway")
	}
	return NewPaystackGateway(cfg.PaystackSecretKey, cfg.PaystackBaseURL, cfg.PaystackCallbackURL)
}
