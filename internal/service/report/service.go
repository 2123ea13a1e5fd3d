package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
	"github.com/worklens/attendance-backend-go/internal/domain/report"
	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
)

type ReportServiceImpl struct {
	sheetRepo timesheet.SheetRepository
}

func NewReportService(sheetRepo timesheet.SheetRepository) report.ReportService {
	return &ReportServiceImpl{sheetRepo: sheetRepo}
}

// ExportSheetPDF implements report.ReportService.
func (s *ReportServiceImpl) ExportSheetPDF(ctx context.Context, sheetID string) ([]byte, string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return nil, "", fmt.Errorf("company_id claim is missing or invalid")
	}

	sheet, err := s.sheetRepo.GetByID(ctx, sheetID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", timesheet.ErrSheetNotFound
		}
		return nil, "", fmt.Errorf("failed to get sheet: %w", err)
	}
	lines, err := s.sheetRepo.ListLines(ctx, sheetID, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list sheet lines: %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Attendance Sheet")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if sheet.EmployeeName != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", *sheet.EmployeeName))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", sheet.DateFrom.Format("2006-01-02"), sheet.DateTo.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("State: %s", sheet.State))
	pdf.Ln(10)

	headers := []string{"Date", "Day", "Plan In", "Plan Out", "Sign In", "Sign Out", "Worked", "Overtime", "Late In", "Diff", "Status", "Note"}
	widths := []float64{22, 14, 17, 17, 17, 17, 17, 18, 17, 17, 24, 80}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, line := range lines {
		cells := []string{
			line.Date.Format("2006-01-02"),
			line.Weekday.String()[:3],
			hourCell(line.PlSignIn.InexactFloat64()),
			hourCell(line.PlSignOut.InexactFloat64()),
			hourCell(line.AcSignIn.InexactFloat64()),
			hourCell(line.AcSignOut.InexactFloat64()),
			fmt.Sprintf("%.2f", line.WorkedHours.InexactFloat64()),
			fmt.Sprintf("%.2f", line.Overtime.InexactFloat64()),
			fmt.Sprintf("%.2f", line.LateIn.InexactFloat64()),
			fmt.Sprintf("%.2f", line.DiffTime.InexactFloat64()),
			string(line.Status),
			line.Note,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 7, fmt.Sprintf(
		"Totals: overtime %.2f h (%d days), late %.2f h (%d days), difference %.2f h (%d days), absence %.2f h (%d days), worked %.2f h (%d days)",
		sheet.Totals.TotOvertime.InexactFloat64(), sheet.Totals.NoOvertime,
		sheet.Totals.TotLate.InexactFloat64(), sheet.Totals.NoLate,
		sheet.Totals.TotDiff.InexactFloat64(), sheet.Totals.NoDiff,
		sheet.Totals.TotAbsence.InexactFloat64(), sheet.Totals.NoAbsence,
		sheet.Totals.TotWorked.InexactFloat64(), sheet.Totals.WorkedDays,
	))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render sheet pdf: %w", err)
	}

	fileName := fmt.Sprintf("attendance-sheet-%s-%s.pdf", sheet.EmployeeID, sheet.DateFrom.Format("2006-01"))
	return buf.Bytes(), fileName, nil
}

// hourCell formats a fractional clock hour as HH:MM.
func hourCell(h float64) string {
	if h <= 0 {
		return "-"
	}
	totalMinutes := int(h*60 + 0.5)
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}
