package voucher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/shopspring/decimal"
)

// Reason explains why a voucher was rejected
type Reason string

const (
	ReasonInvalidCode      Reason = "invalid_code"
	ReasonInactive         Reason = "inactive"
	ReasonNotYetValid      Reason = "not_yet_valid"
	ReasonExpired          Reason = "expired"
	ReasonUsageLimit       Reason = "usage_limit_reached"
	ReasonBelowMinimum     Reason = "below_minimum"
	ReasonCategoryMismatch Reason = "category_mismatch"
	ReasonFirstTimeOnly    Reason = "first_time_only_violation"
	ReasonSingleUse        Reason = "single_use_violation"
	ReasonNoDiscount       Reason = "no_discount"
)

// Message is a customer-facing description of the reason
func (r Reason) Message() string {
	switch r {
	case ReasonInvalidCode:
		return "This voucher code does not exist"
	case ReasonInactive:
		return "This voucher is no longer active"
	case ReasonNotYetValid:
		return "This voucher is not valid yet"
	case ReasonExpired:
		return "This voucher has expired"
	case ReasonUsageLimit:
		return "This voucher has reached its usage limit"
	case ReasonBelowMinimum:
		return "Your order does not meet the minimum amount for this voucher"
	case ReasonCategoryMismatch:
		return "This voucher does not apply to some items in your cart"
	case ReasonFirstTimeOnly:
		return "This voucher is only for first-time customers"
	case ReasonSingleUse:
		return "You have already used this voucher"
	case ReasonNoDiscount:
		return "This voucher gives no discount on your order"
	}
	return string(r)
}

// Store looks vouchers up by exact code
type Store interface {
	GetByCode(ctx context.Context, code string) (*models.Voucher, error)
}

// OrderHistory answers prior-order questions for a customer.
// excludeRef leaves the order being evaluated out of the count.
type OrderHistory interface {
	CountPriorOrders(ctx context.Context, email, excludeRef string) (int64, error)
	CountPriorVoucherUses(ctx context.Context, email, code, excludeRef string) (int64, error)
}

// Request is one evaluation input
type Request struct {
	Code             string
	CartTotal        decimal.Decimal
	Items            []models.OrderItem
	Email            string
	ExcludeReference string
	Now              time.Time
}

// Result is either OK with a discount or rejected with a reason
type Result struct {
	OK             bool            `json:"ok"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Reason         Reason          `json:"reason,omitempty"`
	Voucher        *models.Voucher `json:"-"`
}

func reject(reason Reason, v *models.Voucher) Result {
	return Result{OK: false, DiscountAmount: decimal.Zero, Reason: reason, Voucher: v}
}

// Evaluator applies voucher eligibility rules. It never mutates state.
type Evaluator struct {
	vouchers Store
	history  OrderHistory
}

func NewEvaluator(vouchers Store, history OrderHistory) *Evaluator {
	return &Evaluator{
		vouchers: vouchers,
		history:  history,
	}
}

// Evaluate runs the eligibility checks in order; the first failure wins.
// An error is returned only when a lookup fails.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (Result, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return reject(ReasonInvalidCode, nil), nil
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	v, err := e.vouchers.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return reject(ReasonInvalidCode, nil), nil
		}
		return Result{}, fmt.Errorf("failed to load voucher: %w", err)
	}

	if !v.Active {
		return reject(ReasonInactive, v), nil
	}
	if v.StartDate != nil && now.Before(*v.StartDate) {
		return reject(ReasonNotYetValid, v), nil
	}
	if v.EndDate != nil && now.After(*v.EndDate) {
		return reject(ReasonExpired, v), nil
	}
	if v.Exhausted() {
		return reject(ReasonUsageLimit, v), nil
	}
	if v.MinOrderAmount != nil && req.CartTotal.LessThan(*v.MinOrderAmount) {
		return reject(ReasonBelowMinimum, v), nil
	}
	if len(v.ApplicableCategories) > 0 && !categoriesAllowed(req.Items, v.ApplicableCategories) {
		return reject(ReasonCategoryMismatch, v), nil
	}

	if v.FirstTimeOnly {
		n, err := e.countPriorOrders(ctx, req.Email, req.ExcludeReference)
		if err != nil {
			return Result{}, err
		}
		if n > 0 {
			return reject(ReasonFirstTimeOnly, v), nil
		}
	}
	if v.SingleUsePerCustomer {
		n, err := e.countPriorVoucherUses(ctx, req.Email, v.Code, req.ExcludeReference)
		if err != nil {
			return Result{}, err
		}
		if n > 0 {
			return reject(ReasonSingleUse, v), nil
		}
	}

	discount := Discount(v, req.CartTotal)
	if !discount.IsPositive() {
		return reject(ReasonNoDiscount, v), nil
	}

	return Result{OK: true, DiscountAmount: discount, Voucher: v}, nil
}

func (e *Evaluator) countPriorOrders(ctx context.Context, email, excludeRef string) (int64, error) {
	// without an email the customer cannot be identified as returning
	if strings.TrimSpace(email) == "" {
		return 0, nil
	}
	n, err := e.history.CountPriorOrders(ctx, email, excludeRef)
	if err != nil {
		return 0, fmt.Errorf("failed to count prior orders: %w", err)
	}
	return n, nil
}

func (e *Evaluator) countPriorVoucherUses(ctx context.Context, email, code, excludeRef string) (int64, error) {
	if strings.TrimSpace(email) == "" {
		return 0, nil
	}
	n, err := e.history.CountPriorVoucherUses(ctx, email, code, excludeRef)
	if err != nil {
		return 0, fmt.Errorf("failed to count prior voucher uses: %w", err)
	}
	return n, nil
}

var hundred = decimal.NewFromInt(100)

// Discount computes the amount v takes off cartTotal: clamped to
// [0, cartTotal], capped by MaxDiscount, rounded to two places.
func Discount(v *models.Voucher, cartTotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch v.DiscountType {
	case models.DiscountPercent:
		amount = cartTotal.Mul(v.DiscountValue).Div(hundred)
	case models.DiscountFixed:
		amount = v.DiscountValue
	default:
		return decimal.Zero
	}

	if amount.IsNegative() {
		amount = decimal.Zero
	}
	if amount.GreaterThan(cartTotal) {
		amount = cartTotal
	}
	if v.MaxDiscount != nil && amount.GreaterThan(*v.MaxDiscount) {
		amount = *v.MaxDiscount
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount.Round(2)
}

func categoriesAllowed(items []models.OrderItem, allowed []string) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, c := range allowed {
		set[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	for _, item := range items {
		if _, ok := set[strings.ToLower(strings.TrimSpace(item.Category))]; !ok {
			return false
		}
	}
	return true
}
