package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	paymentProvider string
	emailProvider   string
	sessions        bool
}

func NewHealthHandler(paymentProvider, emailProvider string, sessions bool) *HealthHandler {
	return &HealthHandler{
		paymentProvider: paymentProvider,
		emailProvider:   emailProvider,
		sessions:        sessions,
	}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":           "ok",
		"service":          "storefront-api",
		"payment_provider": h.paymentProvider,
		"email_provider":   h.emailProvider,
		"sessions":         h.sessions,
	})
}
