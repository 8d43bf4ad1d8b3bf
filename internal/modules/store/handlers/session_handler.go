package handlers

import (
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/services"
	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Get godoc
// @Summary Load device session
// @Description Return the cart and favorites stored for a device
// @Tags Sessions
// @Produce json
// @Param device path string true "Device token"
// @Success 200 {object} models.Session
// @Failure 404 {object} map[string]interface{}
// @Router /api/sessions/{device} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	session, err := h.sessionService.Get(c.UserContext(), c.Params("device"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

// Save godoc
// @Summary Save device session
// @Description Overwrite the cart and favorites for a device (last write wins)
// @Tags Sessions
// @Accept json
// @Produce json
// @Param device path string true "Device token"
// @Param session body services.SessionPayload true "Cart and favorites"
// @Success 200 {object} models.Session
// @Router /api/sessions/{device} [put]
func (h *SessionHandler) Save(c *fiber.Ctx) error {
	var payload services.SessionPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request"})
	}

	session, err := h.sessionService.Save(c.UserContext(), c.Params("device"), &payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

// Delete godoc
// @Summary Forget device session
// @Tags Sessions
// @Produce json
// @Param device path string true "Device token"
// @Success 200 {object} map[string]interface{}
// @Router /api/sessions/{device} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessionService.Delete(c.UserContext(), c.Params("device")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Session deleted"})
}
