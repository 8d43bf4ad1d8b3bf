package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/shopspring/decimal"
)

// Gateway defines the interface for the hosted payment provider
type Gateway interface {
	// Initialize opens a transaction and returns the hosted checkout URL
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)

	// Verify fetches the outcome of a transaction by reference.
	// It never changes order state.
	Verify(ctx context.Context, reference string) (*Transaction, error)

	// VerifySignature checks a webhook body against its signature header
	VerifySignature(body []byte, signature string) bool

	// Name returns the gateway provider name
	Name() string
}

// InitializeRequest is what checkout sends to the provider
type InitializeRequest struct {
	Email       string
	AmountMinor int64 // kobo
	Reference   string
	Metadata    CheckoutMetadata
}

// InitializeResult contains the provider's hosted checkout details
type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Transaction is the provider's view of a payment
type Transaction struct {
	Status          string           `json:"status"`
	Reference       string           `json:"reference"`
	Amount          int64            `json:"amount"`
	Currency        string           `json:"currency,omitempty"`
	Channel         string           `json:"channel,omitempty"`
	GatewayResponse string           `json:"gateway_response,omitempty"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`
	Metadata        CheckoutMetadata `json:"metadata"`
	Raw             json.RawMessage  `json:"-"`
}

// Successful reports whether the provider settled the payment
func (t *Transaction) Successful() bool {
	return t.Status == StatusSuccess
}

// CheckoutMetadata is captured at checkout, echoed back by the provider,
// and trusted as the order's contents at confirmation time.
type CheckoutMetadata struct {
	CustomerName   string             `json:"customer_name"`
	Phone          string             `json:"phone"`
	Email          string             `json:"email,omitempty"`
	Address        string             `json:"address"`
	Landmark       string             `json:"landmark,omitempty"`
	City           string             `json:"city"`
	State          string             `json:"state"`
	Items          []models.OrderItem `json:"items"`
	Total          decimal.Decimal    `json:"total"`
	VoucherCode    string             `json:"voucher_code,omitempty"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
}

// UnmarshalJSON accepts the metadata either as an object or as a JSON
// encoded string, since the provider echoes back whatever it was given.
func (m *CheckoutMetadata) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		if encoded == "" {
			return nil
		}
		data = []byte(encoded)
	}

	type plain CheckoutMetadata
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = CheckoutMetadata(p)
	return nil
}

// Provider transaction statuses
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusAbandoned = "abandoned"
	StatusPending   = "pending"
)

// EventChargeSuccess is the webhook event for a settled payment
const EventChargeSuccess = "charge.success"

var hundred = decimal.NewFromInt(100)

// ToMinor converts a naira amount to kobo
func ToMinor(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromMinor converts kobo to naira
func FromMinor(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Div(hundred)
}
