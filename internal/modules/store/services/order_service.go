package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/notification"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// TrackingView is what the public tracking page shows for an order
type TrackingView struct {
	TrackingCode   string               `json:"tracking_code"`
	Status         models.Status        `json:"status"`
	StatusLabel    string               `json:"status_label"`
	StageIndex     int                  `json:"stage_index"`
	Stages         []Stage              `json:"stages"`
	History        []models.StatusEntry `json:"history"`
	Items          []models.OrderItem   `json:"items"`
	Subtotal       decimal.Decimal      `json:"subtotal" swaggertype:"number"`
	DiscountAmount decimal.Decimal      `json:"discount_amount" swaggertype:"number"`
	Total          decimal.Decimal      `json:"total" swaggertype:"number"`
	VoucherCode    *string              `json:"voucher_code"`
	City           string               `json:"city"`
	State          string               `json:"state"`
	CreatedAt      time.Time            `json:"created_at"`
}

// Stage is one step of the progress bar
type Stage struct {
	Status   models.Status `json:"status"`
	Label    string        `json:"label"`
	Complete bool          `json:"complete"`
	Current  bool          `json:"current"`
}

// StatusUpdateRequest moves an order to its next stage
type StatusUpdateRequest struct {
	Status models.Status `json:"status" validate:"required"`
	Note   string        `json:"note,omitempty" validate:"max=500"`
}

type OrderService struct {
	orders   repositories.OrderRepo
	notifier notification.Notifier
	sender   notification.Sender
	now      func() time.Time
}

func NewOrderService(orders repositories.OrderRepo, notifier notification.Notifier, sender notification.Sender) *OrderService {
	return &OrderService{
		orders:   orders,
		notifier: notifier,
		sender:   sender,
		now:      time.Now,
	}
}

// Track finds an order by tracking code, ignoring case
func (s *OrderService) Track(ctx context.Context, code string) (*TrackingView, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.Validation("tracking code is required")
	}

	order, err := s.orders.GetByTrackingCode(ctx, code)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("No order found with this tracking code")
	}
	if err != nil {
		return nil, errs.Persistence("failed to load order", err)
	}
	return NewTrackingView(order), nil
}

// NewTrackingView builds the customer view of order. History is newest first.
func NewTrackingView(order *models.Order) *TrackingView {
	current := order.Status.Index()
	stages := make([]Stage, len(models.Stages))
	for i, st := range models.Stages {
		stages[i] = Stage{
			Status:   st,
			Label:    st.Label(),
			Complete: current >= 0 && i <= current,
			Current:  i == current,
		}
	}

	history := make([]models.StatusEntry, len(order.StatusHistory))
	for i, entry := range order.StatusHistory {
		history[len(order.StatusHistory)-1-i] = entry
	}

	return &TrackingView{
		TrackingCode:   order.TrackingCode,
		Status:         order.Status,
		StatusLabel:    order.Status.Label(),
		StageIndex:     current,
		Stages:         stages,
		History:        history,
		Items:          order.Items,
		Subtotal:       order.Subtotal(),
		DiscountAmount: order.DiscountAmount,
		Total:          order.Total,
		VoucherCode:    order.VoucherCode,
		City:           order.City,
		State:          order.State,
		CreatedAt:      order.CreatedAt,
	}
}

func (s *OrderService) List(ctx context.Context, status string, limit int) ([]models.Order, error) {
	st := models.Status(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, errs.Validation(fmt.Sprintf("unknown status %q", status))
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	orders, err := s.orders.List(ctx, st, limit)
	if err != nil {
		return nil, errs.Persistence("failed to list orders", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, errs.Persistence("failed to load order", err)
	}
	return order, nil
}

// UpdateStatus advances an order exactly one stage. Skipping stages or
// moving backwards is rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req StatusUpdateRequest) (*models.Order, error) {
	if !req.Status.Valid() {
		return nil, errs.Validation(fmt.Sprintf("unknown status %q", req.Status))
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	next, ok := previous.Next()
	if !ok || req.Status != next {
		if !ok {
			return nil, errs.Validation(fmt.Sprintf("order is already %s", previous.Label()))
		}
		return nil, errs.Validation(fmt.Sprintf("order can only move from %s to %s", previous.Label(), next.Label()))
	}

	note := strings.TrimSpace(req.Note)
	if note == "" {
		note = defaultStatusNote(next)
	}
	order.AppendStatus(next, s.now(), note)

	updated, err := s.orders.UpdateStatus(ctx, order, previous)
	if err != nil {
		return nil, errs.Persistence("failed to update order status", err)
	}
	if !updated {
		return nil, errs.Validation("order status changed concurrently, reload and try again")
	}

	log.Info().
		Str("tracking_code", order.TrackingCode).
		Str("from", string(previous)).
		Str("to", string(next)).
		Msg("order status updated")

	if order.Email != "" {
		snapshot := *order
		s.notifier.Notify(notification.KindStatusChanged, notification.Data{
			To:             order.Email,
			Order:          &snapshot,
			PreviousStatus: previous,
			Note:           note,
		})
	}
	return order, nil
}

// ResendReceipt emails the order receipt and reports provider failures
func (s *OrderService) ResendReceipt(ctx context.Context, id string) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if order.Email == "" {
		return errs.Validation("order has no email address")
	}

	if err := s.sender.Send(ctx, notification.KindReceipt, notification.Data{To: order.Email, Order: order}); err != nil {
		return errs.Gateway("failed to send receipt", 0, "", err)
	}
	return nil
}

func defaultStatusNote(status models.Status) string {
	switch status {
	case models.StatusProcessing:
		return "Your order is being prepared"
	case models.StatusShipped:
		return "Your order has been shipped"
	case models.StatusOutForDelivery:
		return "Your order is out for delivery"
	case models.StatusDelivered:
		return "Your order has been delivered"
	}
	return "Status updated to " + status.Label()
}
