package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders the table on A4 pages, repeating the header after each break
type PDFExporter struct {
	pageSize string
}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{pageSize: "A4"}
}

func (p *PDFExporter) Export(table *Table, w io.Writer) error {
	if len(table.Headers) == 0 {
		return fmt.Errorf("no headers provided")
	}

	orientation := "P"
	if table.Style.Landscape {
		orientation = "L"
	}
	fontSize := table.Style.FontSize
	if fontSize == 0 {
		fontSize = 9
	}

	pdf := gofpdf.New(orientation, "mm", p.pageSize, "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if table.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, tr(table.Title))
		pdf.Ln(12)
	}
	if table.Description != "" {
		pdf.SetFont("Arial", "", fontSize)
		pdf.MultiCell(0, 5, tr(table.Description), "", "", false)
		pdf.Ln(4)
	}
	if !table.GeneratedAt.IsZero() {
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(0, 5, "Generated: "+table.GeneratedAt.Format("2006-01-02 15:04:05"))
		pdf.Ln(8)
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(table.Headers))
	if bottom == 0 {
		bottom = 10
	}

	header := func() {
		pdf.SetFont("Arial", "B", fontSize)
		r, g, b := hexToRGB(table.Style.HeaderBgColor)
		pdf.SetFillColor(r, g, b)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range table.Headers {
			pdf.CellFormat(colWidth, 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", fontSize)
	}
	header()

	sr, sg, sb := hexToRGB(table.Style.StripeColor)
	for i, values := range table.Rows {
		if pdf.GetY()+6 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}

		striped := i%2 == 1 && table.Style.StripeColor != ""
		if striped {
			pdf.SetFillColor(sr, sg, sb)
		}
		for _, value := range values {
			align := "L"
			if _, ok := value.(float64); ok {
				align = "R"
			}
			pdf.CellFormat(colWidth, 6, tr(cellText(value)), "1", 0, align, striped, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (p *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (p *PDFExporter) Extension() string {
	return ".pdf"
}

// hexToRGB converts #RRGGBB to components, falling back to white
func hexToRGB(hex string) (int, int, int) {
	hex = stripHash(hex)
	if len(hex) != 6 {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
