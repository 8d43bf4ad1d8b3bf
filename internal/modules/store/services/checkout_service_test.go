package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/payment"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/tracking"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/voucher"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/utils"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture(vouchers ...*models.Voucher) (*CheckoutService, *testutil.OrderStore, *testutil.Gateway) {
	orders := testutil.NewOrderStore()
	gateway := testutil.NewGateway()
	evaluator := voucher.NewEvaluator(testutil.NewVoucherStore(vouchers...), orders)
	svc := NewCheckoutService(orders, evaluator, gateway, utils.NewRequestValidator())
	svc.now = func() time.Time { return fixedNow }
	return svc, orders, gateway
}

func checkoutRequest() *CheckoutRequest {
	return &CheckoutRequest{
		CustomerName: "Ada",
		Phone:        "08030000000",
		Email:        "Ada@Example.com",
		Address:      "1 Marina",
		City:         "Lagos",
		State:        "Lagos",
		Items: []CheckoutItem{
			{Name: "Woven basket", Price: decimal.NewFromInt(12500), Quantity: 2, Category: "Home"},
			{Name: "Beaded bracelet", Price: decimal.RequireFromString("2500.50"), Quantity: 1, Category: "Jewelry"},
		},
	}
}

func TestCheckout_Start(t *testing.T) {
	svc, orders, gateway := newCheckoutFixture()

	res, err := svc.Start(context.Background(), checkoutRequest())

	require.NoError(t, err)
	assert.True(t, tracking.Valid(res.Reference))
	assert.Equal(t, "https://checkout.test/"+res.Reference, res.AuthorizationURL)
	assert.True(t, decimal.RequireFromString("27500.50").Equal(res.Total))
	assert.True(t, res.DiscountAmount.IsZero())

	stored := orders.All()
	require.Len(t, stored, 1)
	assert.Equal(t, models.StatusPending, stored[0].Status)
	assert.Equal(t, res.Reference, stored[0].TrackingCode)
	assert.Equal(t, "ada@example.com", stored[0].Email)
	require.Len(t, stored[0].StatusHistory, 1)
	assert.Equal(t, models.StatusPending, stored[0].StatusHistory[0].Status)

	require.Len(t, gateway.Initialized, 1)
	initReq := gateway.Initialized[0]
	assert.Equal(t, int64(2750050), initReq.AmountMinor)
	assert.Equal(t, res.Reference, initReq.Reference)
	assert.Equal(t, "Ada", initReq.Metadata.CustomerName)
	assert.Len(t, initReq.Metadata.Items, 2)
	assert.True(t, decimal.RequireFromString("27500.50").Equal(initReq.Metadata.Total))
}

func TestCheckout_WithVoucher(t *testing.T) {
	svc, orders, gateway := newCheckoutFixture(&models.Voucher{
		Code:          "SAVE10",
		DiscountType:  models.DiscountPercent,
		DiscountValue: decimal.NewFromInt(10),
		Active:        true,
	})
	req := checkoutRequest()
	req.Items = req.Items[:1]
	req.VoucherCode = "SAVE10"

	res, err := svc.Start(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25000).Equal(res.Subtotal))
	assert.True(t, decimal.NewFromInt(2500).Equal(res.DiscountAmount))
	assert.True(t, decimal.NewFromInt(22500).Equal(res.Total))

	meta := gateway.Initialized[0].Metadata
	assert.Equal(t, "SAVE10", meta.VoucherCode)
	assert.True(t, decimal.NewFromInt(2500).Equal(meta.DiscountAmount))
	assert.Equal(t, int64(2250000), gateway.Initialized[0].AmountMinor)

	stored := orders.All()[0]
	require.NotNil(t, stored.VoucherCode)
	assert.Equal(t, "SAVE10", *stored.VoucherCode)
}

func TestCheckout_VoucherRejected(t *testing.T) {
	svc, orders, gateway := newCheckoutFixture()
	req := checkoutRequest()
	req.VoucherCode = "NOPE"

	_, err := svc.Start(context.Background(), req)

	var rejected *VoucherRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, voucher.ReasonInvalidCode, rejected.Reason)
	assert.Empty(t, orders.All())
	assert.Empty(t, gateway.Initialized)
}

func TestCheckout_Validation(t *testing.T) {
	svc, _, _ := newCheckoutFixture()

	req := checkoutRequest()
	req.Email = "not-an-email"
	_, err := svc.Start(context.Background(), req)
	assert.ErrorIs(t, err, errs.ErrValidation)

	req = checkoutRequest()
	req.Items = nil
	_, err = svc.Start(context.Background(), req)
	assert.ErrorIs(t, err, errs.ErrValidation)

	req = checkoutRequest()
	req.Items[0].Price = decimal.Zero
	_, err = svc.Start(context.Background(), req)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCheckout_GatewayFailure(t *testing.T) {
	svc, orders, gateway := newCheckoutFixture()
	gateway.InitErr = errs.Gateway("paystack API error: Invalid key", 401, `{"status":false}`, nil)

	_, err := svc.Start(context.Background(), checkoutRequest())

	assert.ErrorIs(t, err, errs.ErrGateway)
	// the unpaid order stays pending until cleanup
	require.Len(t, orders.All(), 1)
	assert.Equal(t, models.StatusPending, orders.All()[0].Status)
}

func TestCheckout_MissingCredential(t *testing.T) {
	svc, _, gateway := newCheckoutFixture()
	gateway.InitErr = errs.Configuration("payment provider secret key is not configured")

	_, err := svc.Start(context.Background(), checkoutRequest())

	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestCheckout_PersistenceFailure(t *testing.T) {
	svc, orders, gateway := newCheckoutFixture()
	orders.CreateErr = errors.New("connection reset")

	_, err := svc.Start(context.Background(), checkoutRequest())

	assert.ErrorIs(t, err, errs.ErrPersistence)
	assert.Empty(t, gateway.Initialized)
}

func TestMetadataFromOrder(t *testing.T) {
	code := "SAVE10"
	order := &models.Order{
		CustomerName:   "Ada",
		Email:          "ada@example.com",
		Total:          decimal.NewFromInt(900),
		DiscountAmount: decimal.NewFromInt(100),
		VoucherCode:    &code,
	}

	meta := metadataFromOrder(order)

	assert.Equal(t, "SAVE10", meta.VoucherCode)
	assert.Equal(t, payment.ToMinor(meta.Total), int64(90000))
}
