package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/rs/zerolog/log"
)

// MaxExportRows caps a single order export
const MaxExportRows = 5000

// SalesAggregator builds the sales report for a resolved period
type SalesAggregator interface {
	Report(ctx context.Context, period string, r analytics.DateRange) (*analytics.SalesReport, error)
}

// ExportRequest selects the orders to export
type ExportRequest struct {
	Format string
	Status string
	Period string
}

var orderExportHeaders = []string{
	"Tracking code", "Created", "Status", "Customer", "Email", "Phone",
	"City", "State", "Items", "Subtotal", "Discount", "Total", "Voucher",
}

type ReportService struct {
	sales   SalesAggregator
	orders  repositories.OrderRepo
	exports *export.Service
	now     func() time.Time
}

func NewReportService(sales SalesAggregator, orders repositories.OrderRepo, exports *export.Service) *ReportService {
	return &ReportService{
		sales:   sales,
		orders:  orders,
		exports: exports,
		now:     time.Now,
	}
}

// Sales returns the dashboard report for a named period
func (s *ReportService) Sales(ctx context.Context, period string) (*analytics.SalesReport, error) {
	if period == "" {
		period = analytics.DefaultPeriod
	}
	r, err := analytics.ParsePeriod(period, s.now())
	if err != nil {
		return nil, errs.Validation(err.Error())
	}

	report, err := s.sales.Report(ctx, period, r)
	if err != nil {
		return nil, errs.Persistence("failed to build sales report", err)
	}
	return report, nil
}

// ExportOrders renders the orders created in the requested period as a downloadable file
func (s *ReportService) ExportOrders(ctx context.Context, req ExportRequest) (*export.File, error) {
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, errs.Validation(err.Error())
	}

	status := models.Status(req.Status)
	if status != "" && !status.Valid() {
		return nil, errs.Validation(fmt.Sprintf("invalid status %q", req.Status))
	}

	period := req.Period
	if period == "" {
		period = analytics.DefaultPeriod
	}
	now := s.now()
	r, err := analytics.ParsePeriod(period, now)
	if err != nil {
		return nil, errs.Validation(err.Error())
	}

	orders, err := s.orders.ListCreatedBetween(ctx, status, r.Start, r.End, MaxExportRows)
	if err != nil {
		return nil, errs.Persistence("failed to list orders", err)
	}
	if len(orders) == MaxExportRows {
		log.Warn().Int("limit", MaxExportRows).Str("period", period).Msg("order export truncated")
	}

	table := &export.Table{
		Title:       "Orders",
		Description: orderExportDescription(period, status, r),
		GeneratedAt: now.UTC(),
		Headers:     orderExportHeaders,
		Rows:        make([][]interface{}, 0, len(orders)),
		Style:       export.DefaultStyle(),
	}
	table.Style.Landscape = true
	table.Style.ColumnWidths[0] = 20
	table.Style.ColumnWidths[3] = 24
	table.Style.ColumnWidths[4] = 28

	for i := range orders {
		table.Rows = append(table.Rows, orderExportRow(&orders[i]))
	}

	basename := fmt.Sprintf("orders-%s-%s", period, now.UTC().Format("20060102"))
	file, err := s.exports.Render(table, format, basename)
	if err != nil {
		return nil, &errs.Error{Kind: errs.KindInternal, Message: "failed to render export", Err: err}
	}

	log.Info().Str("format", string(format)).Int("orders", len(orders)).Msg("orders exported")
	return file, nil
}

func orderExportDescription(period string, status models.Status, r analytics.DateRange) string {
	desc := fmt.Sprintf("Created %s to %s (%s)", r.Start.Format("2006-01-02"), r.End.AddDate(0, 0, -1).Format("2006-01-02"), period)
	if status != "" {
		desc += ", status " + status.Label()
	}
	return desc
}

func orderExportRow(o *models.Order) []interface{} {
	items := 0
	for _, item := range o.Items {
		items += item.Quantity
	}
	voucher := ""
	if o.VoucherCode != nil {
		voucher = *o.VoucherCode
	}

	return []interface{}{
		o.TrackingCode,
		o.CreatedAt.UTC(),
		o.Status.Label(),
		o.CustomerName,
		o.Email,
		o.Phone,
		o.City,
		o.State,
		items,
		o.Subtotal().InexactFloat64(),
		o.DiscountAmount.InexactFloat64(),
		o.Total.InexactFloat64(),
		voucher,
	}
}
