package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shirakawa-dev/denpyo/internal/repository"
)

// Service is a tiny façade over the document repository that produces XLSX
// bytes for exports.
type Service struct {
	docsRepo  repository.DocumentRepository
	sheetName string
	logger    *slog.Logger
}

func NewService(docs repository.DocumentRepository, sheetName string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheetName == "" {
		sheetName = "Documents"
	}
	return &Service{docsRepo: docs, sheetName: sheetName, logger: logger}
}

// ExportDocumentsXLSX returns an XLSX workbook (as bytes) for the given date
// window, one row per line item. If only from is provided -> from..today
// (inclusive). If neither is provided -> all documents.
func (s *Service) ExportDocumentsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}

	docs, err := s.docsRepo.List(ctx, fromDate, toDate, 10_000, 0)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}

	f := excelize.NewFile()
	sheet := s.sheetName
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Created", "Type", "Subject", "Vendor", "Customer",
		"Item", "Qty", "Unit Price", "Amount", "Tax", "Document Total", "Status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, d := range docs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		writeHeader := func() {
			if !d.CreatedAt.IsZero() {
				write(1, d.CreatedAt.Format("2006-01-02"))
			}
			write(2, string(d.DocType))
			write(3, d.Subject)
			write(4, d.Vendor.Name)
			write(5, d.Customer.Name)
			write(11, d.TotalAmount)
			write(12, string(d.Status))
		}
		if len(d.Items) == 0 {
			writeHeader()
			row++
			continue
		}
		for _, item := range d.Items {
			writeHeader()
			write(6, item.ItemName)
			write(7, item.Quantity)
			write(8, item.UnitPrice)
			write(9, item.Amount)
			write(10, item.TaxAmount)
			row++
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 10)
	_ = f.SetColWidth(sheet, "C", "C", 32)
	_ = f.SetColWidth(sheet, "D", "E", 26)
	_ = f.SetColWidth(sheet, "F", "F", 32)
	_ = f.SetColWidth(sheet, "G", "J", 12)
	_ = f.SetColWidth(sheet, "K", "K", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"documents", len(docs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
