package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/payment"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/tracking"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/voucher"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/utils"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CheckoutItem is a cart line as sent by the storefront
type CheckoutItem struct {
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" swaggertype:"number"`
	Quantity int             `json:"quantity" validate:"min=1"`
	Image    string          `json:"image,omitempty"`
	Category string          `json:"category,omitempty"`
}

// CheckoutRequest starts a payment for the customer's cart
type CheckoutRequest struct {
	CustomerName string         `json:"customer_name" validate:"required"`
	Phone        string         `json:"phone" validate:"required"`
	Email        string         `json:"email" validate:"required,email"`
	Address      string         `json:"address" validate:"required"`
	Landmark     string         `json:"landmark,omitempty"`
	City         string         `json:"city" validate:"required"`
	State        string         `json:"state" validate:"required"`
	Items        []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	VoucherCode  string         `json:"voucher_code,omitempty"`
}

// CheckoutResult is returned to the storefront to redirect the customer
type CheckoutResult struct {
	AuthorizationURL string          `json:"authorization_url"`
	AccessCode       string          `json:"access_code"`
	Reference        string          `json:"reference"`
	Subtotal         decimal.Decimal `json:"subtotal" swaggertype:"number"`
	DiscountAmount   decimal.Decimal `json:"discount_amount" swaggertype:"number"`
	Total            decimal.Decimal `json:"total" swaggertype:"number"`
}

// VoucherRejectedError is returned when checkout names an ineligible voucher
type VoucherRejectedError struct {
	Code   string
	Reason voucher.Reason
}

func (e *VoucherRejectedError) Error() string {
	return fmt.Sprintf("voucher %s rejected: %s", e.Code, e.Reason)
}

type CheckoutService struct {
	orders    repositories.OrderRepo
	evaluator *voucher.Evaluator
	gateway   payment.Gateway
	validator *utils.RequestValidator
	now       func() time.Time
}

func NewCheckoutService(orders repositories.OrderRepo, evaluator *voucher.Evaluator, gateway payment.Gateway, validator *utils.RequestValidator) *CheckoutService {
	return &CheckoutService{
		orders:    orders,
		evaluator: evaluator,
		gateway:   gateway,
		validator: validator,
		now:       time.Now,
	}
}

// Start prices the cart, records a pending order and opens a payment with
// the provider. The pending order carries the tracking code that is also
// the payment reference.
func (s *CheckoutService) Start(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	subtotal := decimal.Zero
	for _, it := range req.Items {
		if !it.Price.IsPositive() {
			return nil, errs.Validation(fmt.Sprintf("price for %s must be greater than 0", it.Name))
		}
		item := models.OrderItem{
			Name:     strings.TrimSpace(it.Name),
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
			Category: it.Category,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}

	now := s.now()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	discount := decimal.Zero
	var voucherCode *string

	if code := strings.TrimSpace(req.VoucherCode); code != "" {
		res, err := s.evaluator.Evaluate(ctx, voucher.Request{
			Code:      code,
			CartTotal: subtotal,
			Items:     items,
			Email:     email,
			Now:       now,
		})
		if err != nil {
			return nil, errs.Persistence("failed to evaluate voucher", err)
		}
		if !res.OK {
			return nil, &VoucherRejectedError{Code: code, Reason: res.Reason}
		}
		discount = res.DiscountAmount
		voucherCode = &code
	}

	total := subtotal.Sub(discount)
	reference := tracking.NewCode()

	order := &models.Order{
		TrackingCode:   reference,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          email,
		Address:        strings.TrimSpace(req.Address),
		Landmark:       strings.TrimSpace(req.Landmark),
		City:           strings.TrimSpace(req.City),
		State:          strings.TrimSpace(req.State),
		Items:          items,
		Total:          total,
		VoucherCode:    voucherCode,
		DiscountAmount: discount,
	}
	order.AppendStatus(models.StatusPending, now, "Order placed, awaiting payment")

	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrDuplicateTrackingCode) {
			log.Error().Str("tracking_code", reference).Msg("tracking code collision")
		}
		return nil, errs.Persistence("failed to create order", err)
	}

	session, err := s.gateway.Initialize(ctx, payment.InitializeRequest{
		Email:       email,
		AmountMinor: payment.ToMinor(total),
		Reference:   reference,
		Metadata:    metadataFromOrder(order),
	})
	if err != nil {
		log.Error().Err(err).Str("tracking_code", reference).Msg("payment initialization failed")
		return nil, err
	}

	log.Info().
		Str("tracking_code", reference).
		Str("total", total.StringFixed(2)).
		Str("discount", discount.StringFixed(2)).
		Msg("checkout started")

	return &CheckoutResult{
		AuthorizationURL: session.AuthorizationURL,
		AccessCode:       session.AccessCode,
		Reference:        reference,
		Subtotal:         subtotal,
		DiscountAmount:   discount,
		Total:            total,
	}, nil
}

func metadataFromOrder(order *models.Order) payment.CheckoutMetadata {
	meta := payment.CheckoutMetadata{
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		Email:          order.Email,
		Address:        order.Address,
		Landmark:       order.Landmark,
		City:           order.City,
		State:          order.State,
		Items:          order.Items,
		Total:          order.Total,
		DiscountAmount: order.DiscountAmount,
	}
	if order.VoucherCode != nil {
		meta.VoucherCode = *order.VoucherCode
	}
	return meta
}
