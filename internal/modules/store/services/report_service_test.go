package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSales struct {
	period string
	rng    analytics.DateRange
	err    error
}

func (s *stubSales) Report(ctx context.Context, period string, r analytics.DateRange) (*analytics.SalesReport, error) {
	s.period, s.rng = period, r
	if s.err != nil {
		return nil, s.err
	}
	return &analytics.SalesReport{Period: period, Range: r}, nil
}

func newReportFixture() (*ReportService, *testutil.OrderStore, *stubSales) {
	orders := testutil.NewOrderStore()
	sales := &stubSales{}
	svc := NewReportService(sales, orders, export.NewService("Orders"))
	svc.now = func() time.Time { return fixedNow }
	return svc, orders, sales
}

func exportOrder(orders *testutil.OrderStore, code string, createdAt time.Time, status models.Status) {
	voucher := "SAVE10"
	order := &models.Order{
		TrackingCode:   code,
		CustomerName:   "Ada",
		Email:          "ada@example.com",
		City:           "Lagos",
		State:          "Lagos",
		Items:          []models.OrderItem{{Name: "Woven basket", Price: decimal.NewFromInt(5000), Quantity: 2}},
		Total:          decimal.NewFromInt(9000),
		DiscountAmount: decimal.NewFromInt(1000),
		VoucherCode:    &voucher,
		CreatedAt:      createdAt,
	}
	order.AppendStatus(status, createdAt, "")
	orders.Put(order)
}

func TestSalesReport(t *testing.T) {
	svc, _, sales := newReportFixture()

	report, err := svc.Sales(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultPeriod, report.Period)
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), sales.rng.Start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), sales.rng.End)

	_, err = svc.Sales(context.Background(), "fortnight")
	assert.True(t, errors.Is(err, errs.ErrValidation))

	sales.err = errors.New("connection refused")
	_, err = svc.Sales(context.Background(), "today")
	assert.True(t, errors.Is(err, errs.ErrPersistence))
}

func TestExportOrders_CSV(t *testing.T) {
	svc, orders, _ := newReportFixture()
	exportOrder(orders, "AbCdEfGhIjKlMnO", fixedNow.Add(-time.Hour), models.StatusConfirmed)
	exportOrder(orders, "PeNdInGpEnDiNgX", fixedNow.Add(-2*time.Hour), models.StatusPending)
	exportOrder(orders, "OlDoRdErOlDoRdE", fixedNow.AddDate(0, 0, -40), models.StatusConfirmed)

	file, err := svc.ExportOrders(context.Background(), ExportRequest{Format: "csv", Status: "confirmed", Period: "last_7_days"})
	require.NoError(t, err)

	assert.Equal(t, "orders-last_7_days-20260310.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(orderExportHeaders, ","), lines[0])
	assert.Equal(t, "AbCdEfGhIjKlMnO,2026-03-10 11:00,Confirmed,Ada,ada@example.com,,Lagos,Lagos,2,10000.00,1000.00,9000.00,SAVE10", lines[1])
}

func TestExportOrders_DefaultsToSpreadsheet(t *testing.T) {
	svc, orders, _ := newReportFixture()
	exportOrder(orders, "AbCdEfGhIjKlMnO", fixedNow.Add(-time.Hour), models.StatusShipped)

	file, err := svc.ExportOrders(context.Background(), ExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "orders-last_30_days-20260310.xlsx", file.Filename)
	assert.True(t, strings.HasPrefix(file.ContentType, "application/vnd.openxmlformats"))
	assert.NotEmpty(t, file.Data)
}

func TestExportOrders_Validation(t *testing.T) {
	svc, _, _ := newReportFixture()

	_, err := svc.ExportOrders(context.Background(), ExportRequest{Format: "docx"})
	assert.True(t, errors.Is(err, errs.ErrValidation))

	_, err = svc.ExportOrders(context.Background(), ExportRequest{Status: "lost"})
	assert.True(t, errors.Is(err, errs.ErrValidation))

	_, err = svc.ExportOrders(context.Background(), ExportRequest{Period: "forever"})
	assert.True(t, errors.Is(err, errs.ErrValidation))
}
