package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status is an order's position in the fulfillment sequence
type Status string

// Order status constants, in fulfillment order
const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

// Stages is the fixed six-stage sequence shown on the tracking page
var Stages = []Status{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// Index returns the position of s in Stages, or -1 for an unknown status
func (s Status) Index() int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Next returns the stage that follows s
func (s Status) Next() (Status, bool) {
	i := s.Index()
	if i < 0 || i == len(Stages)-1 {
		return "", false
	}
	return Stages[i+1], true
}

func (s Status) Valid() bool {
	return s.Index() >= 0
}

// Label is the human readable stage name used in emails and notes
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusProcessing:
		return "Processing"
	case StatusShipped:
		return "Shipped"
	case StatusOutForDelivery:
		return "Out for delivery"
	case StatusDelivered:
		return "Delivered"
	}
	return string(s)
}

// OrderItem is a snapshot of a product at the time of sale
type OrderItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
	Category string          `json:"category,omitempty"`
}

// LineTotal is price times quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// StatusEntry is one append-only record in an order's history
type StatusEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// Order represents a customer purchase
type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TrackingCode string    `gorm:"type:text;uniqueIndex;not null" json:"tracking_code"`

	// Customer
	CustomerName string `gorm:"type:text;not null" json:"customer_name"`
	Phone        string `gorm:"type:text;not null" json:"phone"`
	Email        string `gorm:"type:text" json:"email,omitempty"`

	// Delivery
	Address  string `gorm:"type:text;not null" json:"address"`
	Landmark string `gorm:"type:text" json:"landmark,omitempty"`
	City     string `gorm:"type:text;not null" json:"city"`
	State    string `gorm:"type:text;not null" json:"state"`

	// Order Details
	Items          datatypes.JSONSlice[OrderItem] `gorm:"type:jsonb;not null" json:"items"`
	Total          decimal.Decimal                `gorm:"type:numeric(12,2);not null" json:"total"`
	VoucherCode    *string                        `gorm:"type:text" json:"voucher_code"`
	DiscountAmount decimal.Decimal                `gorm:"type:numeric(12,2);not null" json:"discount_amount"`

	// Lifecycle
	Status        Status                           `gorm:"type:text;not null;default:'pending'" json:"status"`
	StatusHistory datatypes.JSONSlice[StatusEntry] `gorm:"type:jsonb;not null" json:"status_history"`
	PromoSent     bool                             `gorm:"not null;default:false" json:"promo_sent"`
	DeliveredAt   *time.Time                       `json:"delivered_at,omitempty"`

	// Timestamps
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate sets UUID before creating
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// LastStatus returns the status of the newest history entry
func (o *Order) LastStatus() Status {
	if len(o.StatusHistory) == 0 {
		return ""
	}
	return o.StatusHistory[len(o.StatusHistory)-1].Status
}

// AppendStatus moves the order to status and records it in the history
func (o *Order) AppendStatus(status Status, at time.Time, note string) {
	o.Status = status
	o.StatusHistory = append(o.StatusHistory, StatusEntry{
		Status:    status,
		Timestamp: at,
		Note:      note,
	})
	if status == StatusDelivered {
		o.DeliveredAt = &at
	}
}

// Subtotal is the pre-discount cart value
func (o *Order) Subtotal() decimal.Decimal {
	return o.Total.Add(o.DiscountAmount)
}
