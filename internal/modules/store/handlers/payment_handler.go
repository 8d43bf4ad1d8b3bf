package handlers

import (
	"errors"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/services"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// SignatureHeader carries the provider's HMAC of the webhook body
const SignatureHeader = "x-paystack-signature"

const verifyFailedMessage = "Payment verification failed"

type PaymentHandler struct {
	checkoutService  *services.CheckoutService
	reconcileService *services.ReconciliationService
}

func NewPaymentHandler(checkoutService *services.CheckoutService, reconcileService *services.ReconciliationService) *PaymentHandler {
	return &PaymentHandler{
		checkoutService:  checkoutService,
		reconcileService: reconcileService,
	}
}

// Initialize godoc
// @Summary Start checkout
// @Description Price the cart, record a pending order and open a hosted payment session
// @Tags Payments
// @Accept json
// @Produce json
// @Param checkout body services.CheckoutRequest true "Cart and delivery details"
// @Success 200 {object} services.CheckoutResult
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/paystack/initialize [post]
func (h *PaymentHandler) Initialize(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	result, err := h.checkoutService.Start(c.UserContext(), &req)
	if err != nil {
		return respondPaymentError(c, err, "Payment initialization failed")
	}

	return c.JSON(result)
}

// Verify godoc
// @Summary Verify a payment
// @Description Ask the provider for the outcome of a payment and confirm the order when it succeeded. Safe to call repeatedly.
// @Tags Payments
// @Produce json
// @Param reference path string true "Payment reference (tracking code)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/paystack/verify/{reference} [get]
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	reference := c.Params("reference")
	result, err := h.reconcileService.VerifyAndReconcile(c.UserContext(), reference)
	if errors.Is(err, errs.ErrGateway) || errors.Is(err, errs.ErrConfiguration) {
		return respondPaymentError(c, err, verifyFailedMessage)
	}
	if err != nil {
		appErr := errs.From(err)
		log.Error().
			Err(err).
			Str("kind", string(appErr.Kind)).
			Str("reference", reference).
			Msg(verifyFailedMessage)
		return c.Status(appErr.HTTPStatus()).JSON(fiber.Map{"error": verifyFailedMessage})
	}

	if !result.Reconciled {
		return c.JSON(fiber.Map{
			"ok":     false,
			"status": result.Transaction.Status,
		})
	}

	resp := fiber.Map{
		"ok":             true,
		"order":          result.Order,
		"just_confirmed": result.JustConfirmed,
	}
	if len(result.Transaction.Raw) > 0 {
		resp["transaction"] = result.Transaction.Raw
	}
	if result.VoucherDrop != "" {
		resp["voucher_dropped"] = result.VoucherDrop
	}
	return c.JSON(resp)
}

// Webhook godoc
// @Summary Payment provider webhook
// @Description Receive signed payment events. Successful charges are reconciled like a verify call.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param x-paystack-signature header string true "HMAC-SHA512 of the body"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/paystack/webhook [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	body := append([]byte(nil), c.Body()...)

	result, err := h.reconcileService.HandleWebhook(c.UserContext(), body, c.Get(SignatureHeader))
	if errors.Is(err, services.ErrInvalidSignature) {
		log.Warn().Str("ip", c.IP()).Msg("webhook rejected: invalid signature")
		return c.Status(401).JSON(fiber.Map{"error": "invalid signature"})
	}
	if err != nil {
		// acknowledged anyway; the verify route repairs missed confirmations
		log.Error().Err(err).Msg("webhook processing failed")
		return c.JSON(fiber.Map{"received": true})
	}

	resp := fiber.Map{"received": true}
	if result.Order != nil {
		resp["tracking_code"] = result.Order.TrackingCode
	}
	return c.JSON(resp)
}
