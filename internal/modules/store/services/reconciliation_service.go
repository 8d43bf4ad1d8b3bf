package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/notification"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/payment"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/voucher"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrInvalidSignature is returned for webhook bodies that fail verification
var ErrInvalidSignature = errors.New("invalid webhook signature")

const confirmedNote = "Payment received, order confirmed"

// ReconcileResult is the outcome of applying a verified payment to the order store
type ReconcileResult struct {
	Order       *models.Order        `json:"order,omitempty"`
	Transaction *payment.Transaction `json:"transaction,omitempty"`
	// Reconciled is false when the provider did not report a successful payment
	Reconciled    bool           `json:"reconciled"`
	JustConfirmed bool           `json:"just_confirmed"`
	VoucherDrop   voucher.Reason `json:"voucher_dropped,omitempty"`
}

type ReconciliationService struct {
	orders    repositories.OrderRepo
	vouchers  repositories.VoucherRepo
	evaluator *voucher.Evaluator
	gateway   payment.Gateway
	notifier  notification.Notifier
	now       func() time.Time
}

func NewReconciliationService(
	orders repositories.OrderRepo,
	vouchers repositories.VoucherRepo,
	evaluator *voucher.Evaluator,
	gateway payment.Gateway,
	notifier notification.Notifier,
) *ReconciliationService {
	return &ReconciliationService{
		orders:    orders,
		vouchers:  vouchers,
		evaluator: evaluator,
		gateway:   gateway,
		notifier:  notifier,
		now:       time.Now,
	}
}

// VerifyAndReconcile asks the provider for the outcome of reference and
// applies it when the payment succeeded.
func (s *ReconciliationService) VerifyAndReconcile(ctx context.Context, reference string) (*ReconcileResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errs.Validation("reference is required")
	}

	tx, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, tx)
}

// HandleWebhook verifies and applies a provider webhook delivery.
// Events other than a successful charge are acknowledged and ignored.
func (s *ReconciliationService) HandleWebhook(ctx context.Context, body []byte, signature string) (*ReconcileResult, error) {
	if !s.gateway.VerifySignature(body, signature) {
		return nil, ErrInvalidSignature
	}

	event, err := payment.ParseEvent(body)
	if err != nil {
		return nil, errs.Validation(err.Error())
	}
	if event.Event != payment.EventChargeSuccess {
		log.Debug().Str("event", event.Event).Msg("webhook event ignored")
		return &ReconcileResult{}, nil
	}

	tx, err := payment.ParseTransaction(event.Data)
	if err != nil {
		return nil, errs.Validation(err.Error())
	}
	return s.Reconcile(ctx, tx)
}

// Reconcile turns a successful transaction into a confirmed order. It is
// safe to call any number of times for the same reference: only the call
// that moves the order out of pending records history, notifies, and counts
// voucher usage.
func (s *ReconciliationService) Reconcile(ctx context.Context, tx *payment.Transaction) (*ReconcileResult, error) {
	result := &ReconcileResult{Transaction: tx}
	if tx == nil || !tx.Successful() {
		return result, nil
	}

	reference := strings.TrimSpace(tx.Reference)
	if reference == "" {
		return nil, errs.Validation("transaction has no reference")
	}
	result.Reconciled = true
	logger := log.With().Str("tracking_code", reference).Logger()

	existing, err := s.orders.GetByReference(ctx, reference)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, errs.Persistence("failed to load order", err)
	}

	if existing == nil {
		order, drop, err := s.insertConfirmed(ctx, reference, tx)
		switch {
		case err == nil:
			result.Order = order
			result.JustConfirmed = true
			result.VoucherDrop = drop
		case errors.Is(err, repositories.ErrDuplicateTrackingCode):
			// a concurrent call inserted it first
			logger.Info().Msg("order inserted concurrently, continuing with stored order")
			existing, err = s.orders.GetByReference(ctx, reference)
			if err != nil {
				return nil, errs.Persistence("failed to reload order", err)
			}
		default:
			return nil, err
		}
	}

	if existing != nil {
		if existing.Status != models.StatusPending {
			// already confirmed or further along; nothing to do
			result.Order = existing
			return result, nil
		}

		order, confirmed, drop, err := s.confirmPending(ctx, existing, tx)
		if err != nil {
			return nil, err
		}
		result.Order = order
		result.JustConfirmed = confirmed
		result.VoucherDrop = drop
	}

	if result.JustConfirmed {
		s.afterConfirm(ctx, result.Order)
		logger.Info().
			Str("total", result.Order.Total.StringFixed(2)).
			Int64("amount_paid", tx.Amount).
			Msg("order confirmed")
		if paid := payment.FromMinor(tx.Amount); tx.Amount > 0 && !paid.Equal(result.Order.Total) {
			logger.Warn().
				Str("paid", paid.StringFixed(2)).
				Str("total", result.Order.Total.StringFixed(2)).
				Msg("amount paid differs from order total")
		}
	}

	return result, nil
}

func (s *ReconciliationService) insertConfirmed(ctx context.Context, reference string, tx *payment.Transaction) (*models.Order, voucher.Reason, error) {
	meta := tx.Metadata
	order := &models.Order{
		TrackingCode: reference,
	}
	applyMetadata(order, meta)

	drop, err := s.resolveVoucher(ctx, order, meta, reference)
	if err != nil {
		return nil, "", err
	}

	order.AppendStatus(models.StatusConfirmed, s.paidAt(tx), confirmedNote)

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTrackingCode) {
			return nil, "", err
		}
		return nil, "", errs.Persistence("failed to create order", err)
	}
	return order, drop, nil
}

func (s *ReconciliationService) confirmPending(ctx context.Context, order *models.Order, tx *payment.Transaction) (*models.Order, bool, voucher.Reason, error) {
	meta := tx.Metadata
	if len(meta.Items) == 0 && meta.Total.IsZero() {
		// nothing echoed back; re-check what checkout stored
		meta = metadataFromOrder(order)
	}
	applyMetadata(order, meta)

	drop, err := s.resolveVoucher(ctx, order, meta, order.TrackingCode)
	if err != nil {
		return nil, false, "", err
	}

	if order.LastStatus() != models.StatusConfirmed {
		order.AppendStatus(models.StatusConfirmed, s.paidAt(tx), confirmedNote)
	}
	order.Status = models.StatusConfirmed

	ok, err := s.orders.ConfirmPending(ctx, order)
	if err != nil {
		return nil, false, "", errs.Persistence("failed to update order", err)
	}
	if !ok {
		// another call confirmed it between our read and write
		current, err := s.orders.GetByReference(ctx, order.TrackingCode)
		if err != nil {
			return nil, false, "", errs.Persistence("failed to reload order", err)
		}
		return current, false, "", nil
	}
	return order, true, drop, nil
}

// resolveVoucher re-checks the checkout voucher against current state and
// drops the discount when it no longer applies. The total is left as paid.
func (s *ReconciliationService) resolveVoucher(ctx context.Context, order *models.Order, meta payment.CheckoutMetadata, reference string) (voucher.Reason, error) {
	code := strings.TrimSpace(meta.VoucherCode)
	if code == "" {
		order.VoucherCode = nil
		order.DiscountAmount = decimal.Zero
		return "", nil
	}

	res, err := s.evaluator.Evaluate(ctx, voucher.Request{
		Code:             code,
		CartTotal:        order.Total.Add(meta.DiscountAmount),
		Items:            order.Items,
		Email:            order.Email,
		ExcludeReference: reference,
		Now:              s.now(),
	})
	if err != nil {
		return "", errs.Persistence("failed to re-check voucher", err)
	}

	if !res.OK {
		log.Warn().
			Str("tracking_code", reference).
			Str("voucher", code).
			Str("reason", string(res.Reason)).
			Msg("voucher no longer eligible, discount dropped")
		order.VoucherCode = nil
		order.DiscountAmount = decimal.Zero
		return res.Reason, nil
	}

	order.VoucherCode = &code
	order.DiscountAmount = res.DiscountAmount
	return "", nil
}

// afterConfirm runs the best-effort side effects of a fresh confirmation
func (s *ReconciliationService) afterConfirm(ctx context.Context, order *models.Order) {
	snapshot := *order
	if order.Email != "" {
		s.notifier.Notify(notification.KindOrderConfirmed, notification.Data{To: order.Email, Order: &snapshot})
	}
	s.notifier.Notify(notification.KindNewOrderAlert, notification.Data{Order: &snapshot})

	if order.VoucherCode == nil {
		return
	}
	ok, err := s.vouchers.IncrementUsage(ctx, *order.VoucherCode)
	switch {
	case err != nil:
		log.Error().Err(err).Str("voucher", *order.VoucherCode).Msg("failed to increment voucher usage")
	case !ok:
		log.Warn().Str("voucher", *order.VoucherCode).Msg("voucher usage limit reached, increment skipped")
	}
}

func (s *ReconciliationService) paidAt(tx *payment.Transaction) time.Time {
	if tx.PaidAt != nil && !tx.PaidAt.IsZero() {
		return *tx.PaidAt
	}
	return s.now()
}

// applyMetadata copies the echoed checkout details onto order. Empty fields
// keep what the order already holds.
func applyMetadata(order *models.Order, meta payment.CheckoutMetadata) {
	order.CustomerName = keepIfEmpty(meta.CustomerName, order.CustomerName)
	order.Phone = keepIfEmpty(meta.Phone, order.Phone)
	order.Email = strings.ToLower(keepIfEmpty(meta.Email, order.Email))
	order.Address = keepIfEmpty(meta.Address, order.Address)
	order.Landmark = keepIfEmpty(meta.Landmark, order.Landmark)
	order.City = keepIfEmpty(meta.City, order.City)
	order.State = keepIfEmpty(meta.State, order.State)
	if len(meta.Items) > 0 {
		order.Items = meta.Items
	}
	if !meta.Total.IsZero() {
		order.Total = meta.Total
	}
}

func keepIfEmpty(incoming, current string) string {
	if v := strings.TrimSpace(incoming); v != "" {
		return v
	}
	return strings.TrimSpace(current)
}
