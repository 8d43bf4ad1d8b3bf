package repositories

import (
	"context"
	"errors"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"gorm.io/gorm"
)

var (
	ErrVoucherNotFound  = errs.NotFound("voucher not found")
	ErrDuplicateVoucher = errs.Validation("voucher code already exists")
	ErrUsageLimitBelow  = errs.Validation("usage_limit is below current usage_count")
)

type VoucherRepo interface {
	GetByCode(ctx context.Context, code string) (*models.Voucher, error)
	List(ctx context.Context) ([]models.Voucher, error)
	Create(ctx context.Context, voucher *models.Voucher) error
	Update(ctx context.Context, voucher *models.Voucher) error
	Delete(ctx context.Context, code string) error

	// IncrementUsage bumps usage_count unless the limit is already reached.
	// It reports false when nothing was incremented.
	IncrementUsage(ctx context.Context, code string) (bool, error)
}

type voucherRepo struct {
	db *gorm.DB
}

func NewVoucherRepo(db *gorm.DB) VoucherRepo {
	return &voucherRepo{db: db}
}

func (r *voucherRepo) GetByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var voucher models.Voucher
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&voucher).Error
	if err != nil {
		return nil, notFound(err, ErrVoucherNotFound)
	}
	return &voucher, nil
}

func (r *voucherRepo) List(ctx context.Context) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&vouchers).Error
	return vouchers, err
}

func (r *voucherRepo) Create(ctx context.Context, voucher *models.Voucher) error {
	err := r.db.WithContext(ctx).Create(voucher).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateVoucher
	}
	return err
}

// Update writes every editable column; usage_count is left untouched.
// A usage_limit below the stored usage_count is refused.
func (r *voucherRepo) Update(ctx context.Context, voucher *models.Voucher) error {
	query := r.db.WithContext(ctx).
		Model(&models.Voucher{}).
		Where("code = ?", voucher.Code)
	if voucher.UsageLimit != nil {
		query = query.Where("usage_count <= ?", *voucher.UsageLimit)
	}
	result := query.Updates(map[string]interface{}{
		"discount_type":           voucher.DiscountType,
		"discount_value":          voucher.DiscountValue,
		"min_order_amount":        voucher.MinOrderAmount,
		"max_discount":            voucher.MaxDiscount,
		"start_date":              voucher.StartDate,
		"end_date":                voucher.EndDate,
		"usage_limit":             voucher.UsageLimit,
		"active":                  voucher.Active,
		"first_time_only":         voucher.FirstTimeOnly,
		"single_use_per_customer": voucher.SingleUsePerCustomer,
		"applicable_categories":   voucher.ApplicableCategories,
		"note":                    voucher.Note,
	})
	if errors.Is(result.Error, gorm.ErrCheckConstraintViolated) {
		return ErrUsageLimitBelow
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if voucher.UsageLimit == nil {
		return ErrVoucherNotFound
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Voucher{}).Where("code = ?", voucher.Code).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrVoucherNotFound
	}
	return ErrUsageLimitBelow
}

func (r *voucherRepo) Delete(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Where("code = ?", code).Delete(&models.Voucher{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVoucherNotFound
	}
	return nil
}

func (r *voucherRepo) IncrementUsage(ctx context.Context, code string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Voucher{}).
		Where("code = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", code).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
