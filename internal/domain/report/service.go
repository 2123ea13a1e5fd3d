package report

import "context"

// ReportService renders attendance sheets into downloadable documents.
type ReportService interface {
	// ExportSheetPDF renders one sheet with its lines and totals as a
	// PDF document. It returns the document bytes and a suggested file
	// name.
	ExportSheetPDF(ctx context.Context, sheetID string) ([]byte, string, error)
}
