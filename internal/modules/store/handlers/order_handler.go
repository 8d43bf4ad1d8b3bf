package handlers

import (
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/services"
	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Track godoc
// @Summary Track an order
// @Description Look an order up by tracking code (case-insensitive)
// @Tags Orders
// @Produce json
// @Param code path string true "Tracking code"
// @Success 200 {object} services.TrackingView
// @Failure 404 {object} map[string]interface{}
// @Router /api/orders/track/{code} [get]
func (h *OrderHandler) Track(c *fiber.Ctx) error {
	view, err := h.orderService.Track(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// List godoc
// @Summary List orders
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Param status query string false "Filter by status"
// @Param limit query int false "Max results (default 50)"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.orderService.List(c.UserContext(), c.Query("status"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"orders": orders,
		"count":  len(orders),
	})
}

// Get godoc
// @Summary Get an order
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Router /api/admin/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.orderService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// UpdateStatus godoc
// @Summary Advance order status
// @Description Move an order to the next fulfillment stage and email the customer
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path string true "Order ID"
// @Param request body services.StatusUpdateRequest true "Next status and optional note"
// @Success 200 {object} models.Order
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req services.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	order, err := h.orderService.UpdateStatus(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ResendReceipt godoc
// @Summary Resend receipt
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/admin/orders/{id}/receipt [post]
func (h *OrderHandler) ResendReceipt(c *fiber.Ctx) error {
	if err := h.orderService.ResendReceipt(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Receipt sent"})
}
