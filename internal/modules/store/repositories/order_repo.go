package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateTrackingCode is returned by Create when the tracking code is taken
var ErrDuplicateTrackingCode = errors.New("duplicate tracking code")

// ErrOrderNotFound is returned when no order matches
var ErrOrderNotFound = errs.NotFound("order not found")

type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// GetByTrackingCode matches case-insensitively, for customers typing a code
	GetByTrackingCode(ctx context.Context, code string) (*models.Order, error)
	// GetByReference matches the payment reference exactly
	GetByReference(ctx context.Context, reference string) (*models.Order, error)
	List(ctx context.Context, status models.Status, limit int) ([]models.Order, error)
	// ListCreatedBetween returns orders created in [from, to), oldest first
	ListCreatedBetween(ctx context.Context, status models.Status, from, to time.Time, limit int) ([]models.Order, error)

	// ConfirmPending saves order only while its stored status is still pending.
	// It reports false when another caller moved the order first.
	ConfirmPending(ctx context.Context, order *models.Order) (bool, error)
	// UpdateStatus saves order's status and history only while the stored status equals from.
	UpdateStatus(ctx context.Context, order *models.Order, from models.Status) (bool, error)
	MarkPromoSent(ctx context.Context, id uuid.UUID) error
	ListPromoCandidates(ctx context.Context, deliveredBefore time.Time, limit int) ([]models.Order, error)
	DeleteStalePending(ctx context.Context, createdBefore time.Time) (int64, error)

	CountPriorOrders(ctx context.Context, email, excludeRef string) (int64, error)
	CountPriorVoucherUses(ctx context.Context, email, code, excludeRef string) (int64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateTrackingCode
	}
	return err
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var order models.Order
	err = r.db.WithContext(ctx).First(&order, "id = ?", uid).Error
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return &order, nil
}

func (r *orderRepo) GetByTrackingCode(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("LOWER(tracking_code) = LOWER(?)", code).
		First(&order).Error
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return &order, nil
}

func (r *orderRepo) GetByReference(ctx context.Context, reference string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("tracking_code = ?", reference).
		First(&order).Error
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, status models.Status, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListCreatedBetween(ctx context.Context, status models.Status, from, to time.Time, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ConfirmPending(ctx context.Context, order *models.Order) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.StatusPending).
		Updates(map[string]interface{}{
			"customer_name":   order.CustomerName,
			"phone":           order.Phone,
			"email":           order.Email,
			"address":         order.Address,
			"landmark":        order.Landmark,
			"city":            order.City,
			"state":           order.State,
			"items":           order.Items,
			"total":           order.Total,
			"voucher_code":    order.VoucherCode,
			"discount_amount": order.DiscountAmount,
			"status":          order.Status,
			"status_history":  order.StatusHistory,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, order *models.Order, from models.Status) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, from).
		Updates(map[string]interface{}{
			"status":         order.Status,
			"status_history": order.StatusHistory,
			"delivered_at":   order.DeliveredAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *orderRepo) MarkPromoSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("promo_sent", true).Error
}

func (r *orderRepo) ListPromoCandidates(ctx context.Context, deliveredBefore time.Time, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.WithContext(ctx).
		Where("status = ? AND promo_sent = ? AND email <> '' AND delivered_at < ?",
			models.StatusDelivered, false, deliveredBefore).
		Order("delivered_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) DeleteStalePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.StatusPending, createdBefore).
		Delete(&models.Order{})
	return result.RowsAffected, result.Error
}

// CountPriorOrders counts paid orders for email. Pending checkouts are not purchases.
func (r *orderRepo) CountPriorOrders(ctx context.Context, email, excludeRef string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("LOWER(email) = LOWER(?) AND status <> ? AND tracking_code <> ?",
			email, models.StatusPending, excludeRef).
		Count(&count).Error
	return count, err
}

func (r *orderRepo) CountPriorVoucherUses(ctx context.Context, email, code, excludeRef string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("LOWER(email) = LOWER(?) AND voucher_code = ? AND status <> ? AND tracking_code <> ?",
			email, code, models.StatusPending, excludeRef).
		Count(&count).Error
	return count, err
}

func notFound(err error, notFoundErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr
	}
	return err
}
