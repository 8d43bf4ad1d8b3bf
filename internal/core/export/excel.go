package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes a single sheet workbook with a frozen, filterable header
type ExcelExporter struct {
	sheetName string
}

func NewExcelExporter(sheetName string) *ExcelExporter {
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &ExcelExporter{sheetName: sheetName}
}

func (e *ExcelExporter) Export(table *Table, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	row := 1
	if table.Title != "" {
		titleStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14, Family: table.Style.FontFamily},
		})
		if err != nil {
			return fmt.Errorf("failed to create title style: %w", err)
		}
		f.SetCellValue(e.sheetName, cell(1, row), table.Title)
		f.SetCellStyle(e.sheetName, cell(1, row), cell(1, row), titleStyle)
		row++

		if table.Description != "" {
			f.SetCellValue(e.sheetName, cell(1, row), table.Description)
			row++
		}
		row++
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: table.Style.FontSize, Family: table.Style.FontFamily, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(table.Style.HeaderBgColor)}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := row
	for col, header := range table.Headers {
		ref := cell(col+1, row)
		f.SetCellValue(e.sheetName, ref, header)
		f.SetCellStyle(e.sheetName, ref, ref, headerStyle)

		if width, ok := table.Style.ColumnWidths[col]; ok {
			name, _ := excelize.ColumnNumberToName(col + 1)
			f.SetColWidth(e.sheetName, name, name, width)
		}
	}
	row++

	stripe := excelize.Style{Font: &excelize.Font{Size: table.Style.FontSize, Family: table.Style.FontFamily}}
	if table.Style.StripeColor != "" {
		stripe.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(table.Style.StripeColor)}}
	}
	stripeStyle, err := f.NewStyle(&stripe)
	if err != nil {
		return fmt.Errorf("failed to create row style: %w", err)
	}

	for i, values := range table.Rows {
		for col, value := range values {
			ref := cell(col+1, row)
			f.SetCellValue(e.sheetName, ref, value)
			if i%2 == 1 {
				f.SetCellStyle(e.sheetName, ref, ref, stripeStyle)
			}
		}
		row++
	}

	if len(table.Headers) > 0 {
		f.SetPanes(e.sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: cell(1, headerRow+1),
			ActivePane:  "bottomLeft",
		})
		lastRow := headerRow + len(table.Rows)
		f.AutoFilter(e.sheetName, cell(1, headerRow)+":"+cell(len(table.Headers), lastRow), nil)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) Extension() string {
	return ".xlsx"
}

// cell converts 1-based column and row numbers to an A1 reference
func cell(col, row int) string {
	ref, _ := excelize.CoordinatesToCellName(col, row)
	return ref
}
