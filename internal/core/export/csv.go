package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVExporter writes the header and rows only; title and styling are dropped
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(table *Table, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(table.Headers))
	for _, values := range table.Rows {
		record = record[:0]
		for _, value := range values {
			record = append(record, cellText(value))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (e *CSVExporter) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (e *CSVExporter) Extension() string {
	return ".csv"
}
