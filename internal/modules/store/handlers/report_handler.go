package handlers

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Sales godoc
// @Summary Sales report
// @Description Revenue, order counts, daily chart and voucher usage for a period
// @Tags Admin
// @Produce json
// @Security AdminKey
// @Param period query string false "today, yesterday, this_week, last_week, this_month, last_month, last_7_days, last_30_days, last_90_days, this_year"
// @Success 200 {object} analytics.SalesReport
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	report, err := h.reportService.Sales(c.UserContext(), c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// ExportOrders godoc
// @Summary Export orders
// @Description Download the orders created in a period as xlsx, csv or pdf
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Produce application/pdf
// @Security AdminKey
// @Param format query string false "xlsx (default), csv or pdf"
// @Param status query string false "Filter by status"
// @Param period query string false "Named period, default last_30_days"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/orders/export [get]
func (h *ReportHandler) ExportOrders(c *fiber.Ctx) error {
	file, err := h.reportService.ExportOrders(c.UserContext(), services.ExportRequest{
		Format: c.Query("format"),
		Status: c.Query("status"),
		Period: c.Query("period"),
	})
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Data)
}
