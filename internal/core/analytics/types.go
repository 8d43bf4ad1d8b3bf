package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is the half-open interval [Start, End)
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Previous returns the range of equal length that ends where r starts
func (r DateRange) Previous() DateRange {
	return DateRange{Start: r.Start.Add(-r.End.Sub(r.Start)), End: r.Start}
}

// Summary totals paid orders. Pending checkouts are excluded.
type Summary struct {
	Orders       int64           `json:"orders"`
	Revenue      decimal.Decimal `json:"revenue"`
	Discounts    decimal.Decimal `json:"discounts"`
	AverageOrder decimal.Decimal `json:"average_order"`
}

// StatusCount counts orders currently at a status, pending included
type StatusCount struct {
	Status string `json:"status"`
	Orders int64  `json:"orders"`
}

type DailySales struct {
	Day     string          `json:"day"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type VoucherUsage struct {
	Code     string          `json:"code"`
	Orders   int64           `json:"orders"`
	Discount decimal.Decimal `json:"discount"`
}

// SalesReport is the admin dashboard view of a period
type SalesReport struct {
	Period   string         `json:"period"`
	Range    DateRange      `json:"range"`
	Summary  Summary        `json:"summary"`
	Cards    []StatCard     `json:"cards"`
	ByStatus []StatusCount  `json:"by_status"`
	Daily    []DailySales   `json:"daily"`
	Vouchers []VoucherUsage `json:"vouchers"`
	Chart    ChartData      `json:"chart"`
}

// ChartData is a chart-library agnostic series set
type ChartData struct {
	Type   string        `json:"type"` // "line", "bar"
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// StatCard is a headline number compared with the previous period
type StatCard struct {
	Title       string  `json:"title"`
	Value       string  `json:"value"`
	Change      float64 `json:"change"` // percent
	ChangeLabel string  `json:"change_label"`
	Trend       string  `json:"trend"` // "up", "down", "neutral"
}
