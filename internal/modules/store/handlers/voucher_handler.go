package handlers

import (
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/services"
	"github.com/gofiber/fiber/v2"
)

type VoucherHandler struct {
	voucherService *services.VoucherService
}

func NewVoucherHandler(voucherService *services.VoucherService) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucherService,
	}
}

// Validate godoc
// @Summary Check a voucher
// @Description Evaluate a voucher code against the cart without using it
// @Tags Vouchers
// @Accept json
// @Produce json
// @Param request body services.ValidateVoucherRequest true "Code and cart"
// @Success 200 {object} services.ValidateVoucherResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/vouchers/validate [post]
func (h *VoucherHandler) Validate(c *fiber.Ctx) error {
	var req services.ValidateVoucherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	result, err := h.voucherService.Validate(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// List godoc
// @Summary List vouchers
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/vouchers [get]
func (h *VoucherHandler) List(c *fiber.Ctx) error {
	vouchers, err := h.voucherService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"vouchers": vouchers,
		"count":    len(vouchers),
	})
}

// Create godoc
// @Summary Create a voucher
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param voucher body services.VoucherInput true "Voucher"
// @Success 201 {object} models.Voucher
// @Router /api/admin/vouchers [post]
func (h *VoucherHandler) Create(c *fiber.Ctx) error {
	var input services.VoucherInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	voucher, err := h.voucherService.Create(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(voucher)
}

// Update godoc
// @Summary Edit a voucher
// @Description Replace the editable fields of a voucher. The usage count cannot be changed.
// @Tags Admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param code path string true "Voucher code"
// @Param voucher body services.VoucherInput true "Voucher"
// @Success 200 {object} models.Voucher
// @Router /api/admin/vouchers/{code} [put]
func (h *VoucherHandler) Update(c *fiber.Ctx) error {
	var input services.VoucherInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	voucher, err := h.voucherService.Update(c.UserContext(), c.Params("code"), &input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(voucher)
}

// Delete godoc
// @Summary Delete a voucher
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Param code path string true "Voucher code"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/vouchers/{code} [delete]
func (h *VoucherHandler) Delete(c *fiber.Ctx) error {
	if err := h.voucherService.Delete(c.UserContext(), c.Params("code")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Voucher deleted successfully"})
}
