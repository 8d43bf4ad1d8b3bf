package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/audit"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// AuditStore persists and queries the admin audit trail
type AuditStore interface {
	Log(ctx context.Context, entry *audit.Entry) error
	List(ctx context.Context, filter audit.Filter) (*audit.Page, error)
}

// AuditTrail records every mutating request that passes through it.
// Read requests are not recorded and a failed write never fails the request.
func AuditTrail(store AuditStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead || c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			if fe, ok := chainErr.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		action, entity, entityID := describeAdminRequest(c)
		entry := &audit.Entry{
			Action:    action,
			Entity:    entity,
			EntityID:  entityID,
			Status:    status,
			Payload:   requestPayload(c.Body()),
			IPAddress: c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
			Method:    c.Method(),
			Endpoint:  c.OriginalURL(),
			Duration:  time.Since(start).Milliseconds(),
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			entry.RequestID = rid
		}

		if err := store.Log(c.UserContext(), entry); err != nil {
			log.Error().Err(err).Str("action", action).Str("entity", entity).Msg("failed to record audit entry")
		}
		return chainErr
	}
}

// describeAdminRequest maps the matched admin route to an audit action
func describeAdminRequest(c *fiber.Ctx) (action, entity, entityID string) {
	route := c.Route().Path

	switch {
	case strings.HasSuffix(route, "/status"):
		return "update_status", "order", c.Params("id")
	case strings.HasSuffix(route, "/receipt"):
		return "resend_receipt", "order", c.Params("id")
	case strings.Contains(route, "/vouchers"):
		entityID = c.Params("code")
		if entityID == "" {
			var body struct {
				Code string `json:"code"`
			}
			if json.Unmarshal(c.Body(), &body) == nil {
				entityID = strings.TrimSpace(body.Code)
			}
		}
		return methodAction(c.Method()), "voucher", entityID
	}
	return methodAction(c.Method()), "unknown", ""
}

func methodAction(method string) string {
	switch method {
	case fiber.MethodPost:
		return "create"
	case fiber.MethodPut, fiber.MethodPatch:
		return "update"
	case fiber.MethodDelete:
		return "delete"
	}
	return strings.ToLower(method)
}

func requestPayload(body []byte) datatypes.JSON {
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	return datatypes.JSON(append([]byte(nil), body...))
}

type AuditHandler struct {
	store AuditStore
}

func NewAuditHandler(store AuditStore) *AuditHandler {
	return &AuditHandler{store: store}
}

// List godoc
// @Summary List admin audit entries
// @Description Paginated audit trail of admin changes, newest first
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Param entity query string false "order or voucher"
// @Param entity_id query string false "Order ID or voucher code"
// @Param action query string false "Action name"
// @Param since query string false "RFC3339 lower bound"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size (max 200)"
// @Success 200 {object} audit.Page
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	filter := audit.Filter{
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "since must be an RFC3339 timestamp"})
		}
		filter.Since = &since
	}

	page, err := h.store.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}
