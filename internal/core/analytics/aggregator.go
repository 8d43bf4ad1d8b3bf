package analytics

import (
	"context"
	"fmt"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const topVouchers = 10

// Aggregator runs the sales report queries against the orders table
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

type summaryRow struct {
	Orders    int64
	Revenue   decimal.Decimal
	Discounts decimal.Decimal
}

// Report assembles the full sales report for r
func (a *Aggregator) Report(ctx context.Context, period string, r DateRange) (*SalesReport, error) {
	current, err := a.Summary(ctx, r)
	if err != nil {
		return nil, err
	}
	previous, err := a.Summary(ctx, r.Previous())
	if err != nil {
		return nil, err
	}
	byStatus, err := a.ByStatus(ctx, r)
	if err != nil {
		return nil, err
	}
	daily, err := a.Daily(ctx, r)
	if err != nil {
		return nil, err
	}
	vouchers, err := a.Vouchers(ctx, r)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		Period:   period,
		Range:    r,
		Summary:  current,
		Cards:    StatCards(current, previous),
		ByStatus: byStatus,
		Daily:    daily,
		Vouchers: vouchers,
		Chart:    DailyChart(daily),
	}, nil
}

func (a *Aggregator) paidIn(ctx context.Context, r DateRange) *gorm.DB {
	return a.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status <> ?", models.StatusPending).
		Where("created_at >= ?", r.Start).
		Where("created_at < ?", r.End)
}

// Summary totals paid orders created in r
func (a *Aggregator) Summary(ctx context.Context, r DateRange) (Summary, error) {
	var row summaryRow
	err := a.paidIn(ctx, r).
		Select("COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue, COALESCE(SUM(discount_amount), 0) AS discounts").
		Scan(&row).Error
	if err != nil {
		return Summary{}, fmt.Errorf("summary query failed: %w", err)
	}

	s := Summary{Orders: row.Orders, Revenue: row.Revenue, Discounts: row.Discounts}
	if row.Orders > 0 {
		s.AverageOrder = row.Revenue.Div(decimal.NewFromInt(row.Orders)).Round(2)
	}
	return s, nil
}

// ByStatus counts orders created in r at every status, in pipeline order
func (a *Aggregator) ByStatus(ctx context.Context, r DateRange) ([]StatusCount, error) {
	var rows []StatusCount
	err := a.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS orders").
		Where("created_at >= ?", r.Start).
		Where("created_at < ?", r.End).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("status query failed: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Orders
	}

	out := make([]StatusCount, 0, len(models.Stages))
	for _, status := range models.Stages {
		out = append(out, StatusCount{Status: string(status), Orders: counts[string(status)]})
	}
	return out, nil
}

// Daily buckets paid orders by UTC day, filling days without sales with zero
func (a *Aggregator) Daily(ctx context.Context, r DateRange) ([]DailySales, error) {
	var rows []DailySales
	err := a.paidIn(ctx, r).
		Select("TO_CHAR(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Group("day").
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("daily query failed: %w", err)
	}

	byDay := make(map[string]DailySales, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}

	days := Days(r)
	out := make([]DailySales, len(days))
	for i, day := range days {
		d, ok := byDay[day]
		if !ok {
			d = DailySales{Day: day, Revenue: decimal.Zero}
		}
		out[i] = d
	}
	return out, nil
}

// Vouchers ranks voucher codes redeemed on paid orders in r
func (a *Aggregator) Vouchers(ctx context.Context, r DateRange) ([]VoucherUsage, error) {
	rows := []VoucherUsage{}
	err := a.paidIn(ctx, r).
		Select("voucher_code AS code, COUNT(*) AS orders, COALESCE(SUM(discount_amount), 0) AS discount").
		Where("voucher_code IS NOT NULL").
		Group("voucher_code").
		Order("orders DESC").
		Limit(topVouchers).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("voucher query failed: %w", err)
	}
	return rows, nil
}
