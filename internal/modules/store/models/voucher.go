package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountType is how a voucher's value is applied
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Voucher represents a discount code
type Voucher struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Code          string          `gorm:"type:text;uniqueIndex;not null" json:"code"`
	DiscountType  DiscountType    `gorm:"type:text;not null" json:"discount_type"`
	DiscountValue decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_value"`

	MinOrderAmount *decimal.Decimal `gorm:"type:numeric(12,2)" json:"min_order_amount"`
	MaxDiscount    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"max_discount"`
	StartDate      *time.Time       `json:"start_date"`
	EndDate        *time.Time       `json:"end_date"`

	UsageLimit *int `json:"usage_limit"`
	UsageCount int  `gorm:"not null;default:0" json:"usage_count"`

	Active               bool           `gorm:"not null" json:"active"`
	FirstTimeOnly        bool           `gorm:"not null;default:false" json:"first_time_only"`
	SingleUsePerCustomer bool           `gorm:"not null;default:false" json:"single_use_per_customer"`
	ApplicableCategories pq.StringArray `gorm:"type:text[]" json:"applicable_categories"`
	Note                 string         `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Voucher) TableName() string {
	return "vouchers"
}

// BeforeCreate sets UUID before creating
func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Exhausted reports whether the usage limit has been reached
func (v *Voucher) Exhausted() bool {
	return v.UsageLimit != nil && v.UsageCount >= *v.UsageLimit
}
