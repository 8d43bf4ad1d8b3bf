package voucher_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/voucher"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockVoucherStore struct {
	vouchers map[string]*models.Voucher
	err      error
}

func (m *mockVoucherStore) GetByCode(ctx context.Context, code string) (*models.Voucher, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.vouchers[code]
	if !ok {
		return nil, errs.NotFound("voucher not found")
	}
	return v, nil
}

type mockHistory struct {
	orders map[string]int64 // email -> prior orders
	uses   map[string]int64 // email|code -> prior uses
	err    error
}

func (m *mockHistory) CountPriorOrders(ctx context.Context, email, excludeRef string) (int64, error) {
	return m.orders[strings.ToLower(email)], m.err
}

func (m *mockHistory) CountPriorVoucherUses(ctx context.Context, email, code, excludeRef string) (int64, error) {
	return m.uses[strings.ToLower(email)+"|"+code], m.err
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func intPtr(v int) *int { return &v }

func newEvaluator(vs ...*models.Voucher) (*voucher.Evaluator, *mockHistory) {
	store := &mockVoucherStore{vouchers: map[string]*models.Voucher{}}
	for _, v := range vs {
		store.vouchers[v.Code] = v
	}
	history := &mockHistory{orders: map[string]int64{}, uses: map[string]int64{}}
	return voucher.NewEvaluator(store, history), history
}

func activeVoucher(code string) *models.Voucher {
	return &models.Voucher{
		Code:          code,
		DiscountType:  models.DiscountFixed,
		DiscountValue: dec(1000),
		Active:        true,
	}
}

func TestEvaluate_PercentClampedToCartTotal(t *testing.T) {
	v := activeVoucher("HALFPLUS")
	v.DiscountType = models.DiscountPercent
	v.DiscountValue = dec(150)
	e, _ := newEvaluator(v)

	res, err := e.Evaluate(context.Background(), voucher.Request{Code: "HALFPLUS", CartTotal: dec(10000)})

	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.True(t, res.DiscountAmount.Equal(dec(10000)), "got %s", res.DiscountAmount)
}

func TestEvaluate_FixedCappedByMaxDiscount(t *testing.T) {
	v := activeVoucher("BIGFIXED")
	v.DiscountValue = dec(5000)
	v.MaxDiscount = decPtr(2000)
	e, _ := newEvaluator(v)

	res, err := e.Evaluate(context.Background(), voucher.Request{Code: "BIGFIXED", CartTotal: dec(30000)})

	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.True(t, res.DiscountAmount.Equal(dec(2000)), "got %s", res.DiscountAmount)
}

func TestEvaluate_PercentRoundsToTwoPlaces(t *testing.T) {
	v := activeVoucher("THIRD")
	v.DiscountType = models.DiscountPercent
	v.DiscountValue = dec(10)
	e, _ := newEvaluator(v)

	res, err := e.Evaluate(context.Background(), voucher.Request{Code: "THIRD", CartTotal: decimal.RequireFromString("333.33")})

	require.NoError(t, err)
	assert.Equal(t, "33.33", res.DiscountAmount.StringFixed(2))
}

func TestEvaluate_FirstTimeOnly(t *testing.T) {
	v := activeVoucher("WELCOME")
	v.FirstTimeOnly = true
	e, history := newEvaluator(v)
	history.orders["ada@example.com"] = 1

	res, err := e.Evaluate(context.Background(), voucher.Request{Code: "WELCOME", CartTotal: dec(5000), Email: "Ada@Example.com"})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, voucher.ReasonFirstTimeOnly, res.Reason)

	res, err = e.Evaluate(context.Background(), voucher.Request{Code: "WELCOME", CartTotal: dec(5000), Email: "new@example.com"})
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestEvaluate_SingleUsePerCustomer(t *testing.T) {
	v := activeVoucher("ONCE")
	v.SingleUsePerCustomer = true
	e, history := newEvaluator(v)
	history.uses["ada@example.com|ONCE"] = 1

	res, err := e.Evaluate(context.Background(), voucher.Request{Code: "ONCE", CartTotal: dec(5000), Email: "ada@example.com"})

	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, voucher.ReasonSingleUse, res.Reason)
}

func TestEvaluate_UsageLimitBoundary(t *testing.T) {
	v := activeVoucher("LIMITED")
	v.UsageLimit = intPtr(1)
	v.UsageCount = 1
	// would otherwise fail on minimum and first-time checks
	v.MinOrderAmount = decPtr(1000000)
	v.FirstTimeOnly = true
	e, history := newEvaluator(v)
	history.orders["ada@example.com"] = 3

	res, err := e.Evaluate(context.Background(), voucher.Request{Code: "LIMITED", CartTotal: dec(100), Email: "ada@example.com"})

	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, voucher.ReasonUsageLimit, res.Reason)
}

func TestEvaluate_RejectionOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name   string
		mutate func(v *models.Voucher)
		req    voucher.Request
		reason voucher.Reason
	}{
		{
			name:   "unknown code",
			req:    voucher.Request{Code: "NOPE"},
			reason: voucher.ReasonInvalidCode,
		},
		{
			name:   "inactive beats expired",
			mutate: func(v *models.Voucher) { v.Active = false; v.EndDate = &past },
			reason: voucher.ReasonInactive,
		},
		{
			name:   "not yet valid",
			mutate: func(v *models.Voucher) { v.StartDate = &future },
			reason: voucher.ReasonNotYetValid,
		},
		{
			name:   "expired",
			mutate: func(v *models.Voucher) { v.EndDate = &past },
			reason: voucher.ReasonExpired,
		},
		{
			name:   "below minimum",
			mutate: func(v *models.Voucher) { v.MinOrderAmount = decPtr(20000) },
			reason: voucher.ReasonBelowMinimum,
		},
		{
			name:   "category mismatch",
			mutate: func(v *models.Voucher) { v.ApplicableCategories = []string{"Jewelry"} },
			reason: voucher.ReasonCategoryMismatch,
		},
		{
			name:   "zero value",
			mutate: func(v *models.Voucher) { v.DiscountValue = decimal.Zero },
			reason: voucher.ReasonNoDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := activeVoucher("CODE")
			if tt.mutate != nil {
				tt.mutate(v)
			}
			e, _ := newEvaluator(v)

			req := tt.req
			if req.Code == "" {
				req.Code = "CODE"
			}
			req.CartTotal = dec(10000)
			req.Now = now
			req.Items = []models.OrderItem{
				{Name: "Beaded bag", Price: dec(6000), Quantity: 1, Category: "Bags"},
				{Name: "Woven basket", Price: dec(4000), Quantity: 1, Category: "Home"},
			}

			res, err := e.Evaluate(context.Background(), req)

			require.NoError(t, err)
			assert.False(t, res.OK)
			assert.Equal(t, tt.reason, res.Reason)
			assert.True(t, res.DiscountAmount.IsZero())
		})
	}
}

func TestEvaluate_WindowBoundsInclusive(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	v := activeVoucher("MARCH")
	v.StartDate = &start
	v.EndDate = &end
	e, _ := newEvaluator(v)

	for _, now := range []time.Time{start, end} {
		res, err := e.Evaluate(context.Background(), voucher.Request{Code: "MARCH", CartTotal: dec(5000), Now: now})
		require.NoError(t, err)
		assert.True(t, res.OK, "at %s", now)
	}
}

func TestEvaluate_CategoriesMatchCaseInsensitively(t *testing.T) {
	v := activeVoucher("BAGS")
	v.ApplicableCategories = []string{"Bags", "Home"}
	e, _ := newEvaluator(v)

	res, err := e.Evaluate(context.Background(), voucher.Request{
		Code:      "BAGS",
		CartTotal: dec(5000),
		Items:     []models.OrderItem{{Name: "Tote", Price: dec(5000), Quantity: 1, Category: "bags"}},
	})

	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestEvaluate_CodeIsCaseSensitive(t *testing.T) {
	e, _ := newEvaluator(activeVoucher("SAVE10"))

	res, err := e.Evaluate(context.Background(), voucher.Request{Code: "save10", CartTotal: dec(5000)})

	require.NoError(t, err)
	assert.Equal(t, voucher.ReasonInvalidCode, res.Reason)
}

func TestEvaluate_StoreFailure(t *testing.T) {
	store := &mockVoucherStore{err: errors.New("connection refused")}
	e := voucher.NewEvaluator(store, &mockHistory{})

	_, err := e.Evaluate(context.Background(), voucher.Request{Code: "ANY", CartTotal: dec(100)})

	assert.Error(t, err)
}

func TestEvaluate_HistoryFailure(t *testing.T) {
	v := activeVoucher("WELCOME")
	v.FirstTimeOnly = true
	e, history := newEvaluator(v)
	history.err = errors.New("timeout")

	_, err := e.Evaluate(context.Background(), voucher.Request{Code: "WELCOME", CartTotal: dec(100), Email: "ada@example.com"})

	assert.Error(t, err)
}
