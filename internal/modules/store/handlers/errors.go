package handlers

import (
	"errors"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/services"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// respondError writes err as JSON using the status of its kind
func respondError(c *fiber.Ctx, err error) error {
	var rejected *services.VoucherRejectedError
	if errors.As(err, &rejected) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"ok":      false,
			"reason":  rejected.Reason,
			"message": rejected.Reason.Message(),
		})
	}

	appErr := errs.From(err)
	status := appErr.HTTPStatus()
	if status >= fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("kind", string(appErr.Kind)).
			Str("path", c.Path()).
			Msg("request failed")
	}

	body := fiber.Map{"error": appErr.Message}
	if appErr.Kind == errs.KindGateway && appErr.StatusCode != 0 {
		body["provider_status"] = appErr.StatusCode
	}
	return c.Status(status).JSON(body)
}

// respondPaymentError maps provider failures to the messages the storefront shows
func respondPaymentError(c *fiber.Ctx, err error, gatewayMessage string) error {
	switch {
	case errors.Is(err, errs.ErrConfiguration):
		log.Error().Err(err).Msg("payment provider not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment session unavailable"})
	case errors.Is(err, errs.ErrGateway):
		appErr := errs.From(err)
		log.Error().Err(err).Int("provider_status", appErr.StatusCode).Str("provider_body", appErr.Body).Msg(gatewayMessage)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   gatewayMessage,
			"details": appErr.Message,
		})
	}
	return respondError(c, err)
}
