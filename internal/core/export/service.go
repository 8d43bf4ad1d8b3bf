package export

import (
	"bytes"
	"fmt"
)

// File is a rendered export ready to be sent as an attachment
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service picks the exporter for a format and renders tables to memory
type Service struct {
	exporters map[Format]Exporter
}

func NewService(sheetName string) *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatExcel: NewExcelExporter(sheetName),
			FormatCSV:   NewCSVExporter(),
			FormatPDF:   NewPDFExporter(),
		},
	}
}

// Render exports table in format. basename gets the format's extension appended.
func (s *Service) Render(table *Table, format Format, basename string) (*File, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}

	var buf bytes.Buffer
	if err := exporter.Export(table, &buf); err != nil {
		return nil, fmt.Errorf("%s export failed: %w", format, err)
	}

	return &File{
		Filename:    basename + exporter.Extension(),
		ContentType: exporter.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
