package services

import (
	"context"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/voucher"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/utils"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVoucherFixture(vouchers ...*models.Voucher) (*VoucherService, *testutil.VoucherStore) {
	store := testutil.NewVoucherStore(vouchers...)
	evaluator := voucher.NewEvaluator(store, testutil.NewOrderStore())
	svc := NewVoucherService(store, evaluator, utils.NewRequestValidator())
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func basketCart(code string) *ValidateVoucherRequest {
	return &ValidateVoucherRequest{
		Code:  code,
		Items: []CheckoutItem{{Name: "Woven basket", Price: decimal.NewFromInt(10000), Quantity: 2, Category: "Home"}},
	}
}

func TestValidateVoucher(t *testing.T) {
	svc, _ := newVoucherFixture(&models.Voucher{
		Code:          "SAVE10",
		DiscountType:  models.DiscountPercent,
		DiscountValue: decimal.NewFromInt(10),
		Active:        true,
	})

	res, err := svc.Validate(context.Background(), basketCart("SAVE10"))

	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.True(t, decimal.NewFromInt(2000).Equal(res.DiscountAmount))
	assert.True(t, decimal.NewFromInt(18000).Equal(res.Total))
}

func TestValidateVoucher_Rejected(t *testing.T) {
	svc, _ := newVoucherFixture(&models.Voucher{
		Code:          "BIGSPEND",
		DiscountType:  models.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5000),
		MinOrderAmount: func() *decimal.Decimal {
			d := decimal.NewFromInt(50000)
			return &d
		}(),
		Active: true,
	})

	res, err := svc.Validate(context.Background(), basketCart("BIGSPEND"))

	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, voucher.ReasonBelowMinimum, res.Reason)
	assert.NotEmpty(t, res.Message)
	assert.True(t, res.DiscountAmount.IsZero())

	_, err = svc.Validate(context.Background(), &ValidateVoucherRequest{Code: "SAVE10"})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestVoucherLifecycle(t *testing.T) {
	svc, store := newVoucherFixture()
	ctx := context.Background()
	inactive := false

	created, err := svc.Create(ctx, &VoucherInput{
		Code:                 " WELCOME ",
		DiscountType:         "fixed",
		DiscountValue:        decimal.NewFromInt(1500),
		ApplicableCategories: []string{"Home", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME", created.Code)
	assert.True(t, created.Active)
	assert.Equal(t, []string{"Home"}, []string(created.ApplicableCategories))

	_, err = svc.Create(ctx, &VoucherInput{Code: "WELCOME", DiscountType: "fixed", DiscountValue: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, errs.ErrValidation)

	store.SetUsage("WELCOME", 3)
	updated, err := svc.Update(ctx, "WELCOME", &VoucherInput{
		DiscountType:  "percent",
		DiscountValue: decimal.NewFromInt(15),
		Active:        &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DiscountPercent, updated.DiscountType)
	assert.False(t, updated.Active)
	assert.Equal(t, 3, updated.UsageCount)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "WELCOME"))
	assert.ErrorIs(t, svc.Delete(ctx, "WELCOME"), errs.ErrNotFound)

	_, err = svc.Update(ctx, "GONE", &VoucherInput{DiscountType: "fixed", DiscountValue: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestVoucherUpdate_LimitBelowUsage(t *testing.T) {
	svc, store := newVoucherFixture(&models.Voucher{
		Code:          "SAVE10",
		DiscountType:  models.DiscountPercent,
		DiscountValue: decimal.NewFromInt(10),
		UsageLimit:    limit(10),
		UsageCount:    5,
		Active:        true,
	})
	ctx := context.Background()

	_, err := svc.Update(ctx, "SAVE10", &VoucherInput{
		DiscountType:  "percent",
		DiscountValue: decimal.NewFromInt(10),
		UsageLimit:    limit(2),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValidation)

	stored, err := store.GetByCode(ctx, "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, stored.UsageLimit)
	assert.Equal(t, 10, *stored.UsageLimit)
	assert.Equal(t, 5, stored.UsageCount)

	updated, err := svc.Update(ctx, "SAVE10", &VoucherInput{
		DiscountType:  "percent",
		DiscountValue: decimal.NewFromInt(10),
		UsageLimit:    limit(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, *updated.UsageLimit)
	assert.True(t, updated.Exhausted())
}

func TestVoucherInputValidation(t *testing.T) {
	svc, _ := newVoucherFixture()
	ctx := context.Background()
	start := fixedNow
	end := fixedNow.Add(-time.Hour)

	cases := map[string]*VoucherInput{
		"unknown type":     {Code: "X", DiscountType: "bogo", DiscountValue: decimal.NewFromInt(1)},
		"zero value":       {Code: "X", DiscountType: "fixed", DiscountValue: decimal.Zero},
		"percent over 100": {Code: "X", DiscountType: "percent", DiscountValue: decimal.NewFromInt(120)},
		"window reversed":  {Code: "X", DiscountType: "fixed", DiscountValue: decimal.NewFromInt(1), StartDate: &start, EndDate: &end},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, input)
			assert.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}
