package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/voucher"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/utils"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ValidateVoucherRequest asks whether a code applies to the current cart
type ValidateVoucherRequest struct {
	Code  string         `json:"code" validate:"required"`
	Email string         `json:"email,omitempty" validate:"omitempty,email"`
	Items []CheckoutItem `json:"items" validate:"required,min=1,dive"`
}

// ValidateVoucherResponse is the storefront's answer to a voucher check
type ValidateVoucherResponse struct {
	OK             bool            `json:"ok"`
	Code           string          `json:"code,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount" swaggertype:"number"`
	Subtotal       decimal.Decimal `json:"subtotal" swaggertype:"number"`
	Total          decimal.Decimal `json:"total" swaggertype:"number"`
	Reason         voucher.Reason  `json:"reason,omitempty"`
	Message        string          `json:"message,omitempty"`
}

// VoucherInput is the admin create/edit payload. usage_count is not accepted.
type VoucherInput struct {
	Code                 string           `json:"code" validate:"required,max=64"`
	DiscountType         string           `json:"discount_type" validate:"required,oneof=percent fixed"`
	DiscountValue        decimal.Decimal  `json:"discount_value" swaggertype:"number"`
	MinOrderAmount       *decimal.Decimal `json:"min_order_amount" swaggertype:"number"`
	MaxDiscount          *decimal.Decimal `json:"max_discount" swaggertype:"number"`
	StartDate            *time.Time       `json:"start_date"`
	EndDate              *time.Time       `json:"end_date"`
	UsageLimit           *int             `json:"usage_limit" validate:"omitempty,min=1"`
	Active               *bool            `json:"active"`
	FirstTimeOnly        bool             `json:"first_time_only"`
	SingleUsePerCustomer bool             `json:"single_use_per_customer"`
	ApplicableCategories []string         `json:"applicable_categories"`
	Note                 string           `json:"note,omitempty"`
}

type VoucherService struct {
	vouchers  repositories.VoucherRepo
	evaluator *voucher.Evaluator
	validator *utils.RequestValidator
	now       func() time.Time
}

func NewVoucherService(vouchers repositories.VoucherRepo, evaluator *voucher.Evaluator, validator *utils.RequestValidator) *VoucherService {
	return &VoucherService{
		vouchers:  vouchers,
		evaluator: evaluator,
		validator: validator,
		now:       time.Now,
	}
}

// Validate evaluates a code against the cart without side effects
func (s *VoucherService) Validate(ctx context.Context, req *ValidateVoucherRequest) (*ValidateVoucherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	subtotal := decimal.Zero
	for _, it := range req.Items {
		item := models.OrderItem{Name: it.Name, Price: it.Price, Quantity: it.Quantity, Category: it.Category}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}

	code := strings.TrimSpace(req.Code)
	res, err := s.evaluator.Evaluate(ctx, voucher.Request{
		Code:      code,
		CartTotal: subtotal,
		Items:     items,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Now:       s.now(),
	})
	if err != nil {
		return nil, errs.Persistence("failed to evaluate voucher", err)
	}

	if !res.OK {
		return &ValidateVoucherResponse{
			OK:       false,
			Code:     code,
			Subtotal: subtotal,
			Total:    subtotal,
			Reason:   res.Reason,
			Message:  res.Reason.Message(),
		}, nil
	}
	return &ValidateVoucherResponse{
		OK:             true,
		Code:           code,
		DiscountAmount: res.DiscountAmount,
		Subtotal:       subtotal,
		Total:          subtotal.Sub(res.DiscountAmount),
	}, nil
}

func (s *VoucherService) List(ctx context.Context) ([]models.Voucher, error) {
	vouchers, err := s.vouchers.List(ctx)
	if err != nil {
		return nil, errs.Persistence("failed to list vouchers", err)
	}
	return vouchers, nil
}

func (s *VoucherService) Create(ctx context.Context, input *VoucherInput) (*models.Voucher, error) {
	v, err := s.build(input)
	if err != nil {
		return nil, err
	}

	if err := s.vouchers.Create(ctx, v); err != nil {
		if errors.Is(err, errs.ErrValidation) {
			return nil, err
		}
		return nil, errs.Persistence("failed to create voucher", err)
	}
	log.Info().Str("voucher", v.Code).Msg("voucher created")
	return v, nil
}

// Update replaces the editable fields of the voucher named by code
func (s *VoucherService) Update(ctx context.Context, code string, input *VoucherInput) (*models.Voucher, error) {
	input.Code = code
	v, err := s.build(input)
	if err != nil {
		return nil, err
	}

	if err := s.vouchers.Update(ctx, v); err != nil {
		if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrValidation) {
			return nil, err
		}
		return nil, errs.Persistence("failed to update voucher", err)
	}

	updated, err := s.vouchers.GetByCode(ctx, v.Code)
	if err != nil {
		return nil, errs.Persistence("failed to reload voucher", err)
	}
	log.Info().Str("voucher", v.Code).Msg("voucher updated")
	return updated, nil
}

func (s *VoucherService) Delete(ctx context.Context, code string) error {
	if err := s.vouchers.Delete(ctx, code); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return err
		}
		return errs.Persistence("failed to delete voucher", err)
	}
	log.Info().Str("voucher", code).Msg("voucher deleted")
	return nil
}

func (s *VoucherService) build(input *VoucherInput) (*models.Voucher, error) {
	input.Code = strings.TrimSpace(input.Code)
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if !input.DiscountValue.IsPositive() {
		return nil, errs.Validation("discount_value must be greater than 0")
	}
	if input.DiscountType == string(models.DiscountPercent) && input.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errs.Validation("discount_value must be at most 100 for percent vouchers")
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, errs.Validation("end_date must not be before start_date")
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	var categories pq.StringArray
	for _, c := range input.ApplicableCategories {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}

	return &models.Voucher{
		Code:                 input.Code,
		DiscountType:         models.DiscountType(input.DiscountType),
		DiscountValue:        input.DiscountValue,
		MinOrderAmount:       input.MinOrderAmount,
		MaxDiscount:          input.MaxDiscount,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		UsageLimit:           input.UsageLimit,
		Active:               active,
		FirstTimeOnly:        input.FirstTimeOnly,
		SingleUsePerCustomer: input.SingleUsePerCustomer,
		ApplicableCategories: categories,
		Note:                 strings.TrimSpace(input.Note),
	}, nil
}
