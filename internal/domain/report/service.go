package report

import "context"

// ReportService renders attendance data to downloadable documents.
type ReportService interface {
	// GeneratePDF renders the filtered attendance history as a PDF document
	GeneratePDF(ctx context.Context, filter Filter) ([]byte, error)

	// GenerateExcel renders the filtered attendance history as an XLSX workbook
	GenerateExcel(ctx context.Context, filter Filter) ([]byte, error)
}
