package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format is an export file format
type Format string

const (
	FormatExcel Format = "xlsx"
	FormatCSV   Format = "csv"
	FormatPDF   Format = "pdf"
)

// ParseFormat accepts xlsx (default), excel, csv and pdf
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "xlsx", "excel":
		return FormatExcel, nil
	case "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", raw)
}

// Exporter renders a table in one file format
type Exporter interface {
	Export(table *Table, w io.Writer) error
	ContentType() string
	Extension() string
}

// Table is a titled grid of rows ready for export
type Table struct {
	Title       string
	Description string
	GeneratedAt time.Time

	Headers []string
	Rows    [][]interface{}

	Style Style
}

// Style carries the presentation options the exporters understand
type Style struct {
	Landscape     bool
	HeaderBgColor string // hex
	StripeColor   string // hex, every other data row
	FontFamily    string
	FontSize      float64
	ColumnWidths  map[int]float64 // spreadsheet column index -> width
}

func DefaultStyle() Style {
	return Style{
		HeaderBgColor: "#6B4F3A",
		StripeColor:   "#F5EFE6",
		FontFamily:    "Arial",
		FontSize:      10,
		ColumnWidths:  make(map[int]float64),
	}
}

// cellText renders a value the same way in every text based format
func cellText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.2f", v)
	case time.Time:
		return v.Format("2006-01-02 15:04")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stripHash(color string) string {
	return strings.TrimPrefix(color, "#")
}
