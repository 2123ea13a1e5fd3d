package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayslipStatus enum
type PayslipStatus string

const (
	PayslipStatusDraft PayslipStatus = "draft"
	PayslipStatusPaid  PayslipStatus = "paid"
)

// Worked-day line codes projected from sheet totals.
const (
	CodeOvertime = "OVT"
	CodeAbsence  = "ABS"
	CodeLate     = "LATE"
	CodeDiff     = "DIFFT"
)

// Payslip is the payroll projection built from an approved attendance
// sheet's totals. Monetary computation happens downstream; this record
// only carries the worked-day quantities.
type Payslip struct {
	ID         string
	CompanyID  string
	EmployeeID string
	SheetID    string
	Name       string
	DateFrom   time.Time
	DateTo     time.Time
	Status     PayslipStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	WorkedDayLines []WorkedDayLine
}

// WorkedDayLine is one category row on a payslip: how many days the
// category occurred and the summed hours.
type WorkedDayLine struct {
	ID            string
	PayslipID     string
	Name          string
	Code          string
	Sequence      int
	NumberOfDays  int
	NumberOfHours decimal.Decimal
}

// ========================================
// RESPONSES
// ========================================

type PayslipResponse struct {
	ID         string                  `json:"id"`
	EmployeeID string                  `json:"employee_id"`
	SheetID    string                  `json:"sheet_id"`
	Name       string                  `json:"name"`
	DateFrom   string                  `json:"date_from"`
	DateTo     string                  `json:"date_to"`
	Status     string                  `json:"status"`
	Lines      []WorkedDayLineResponse `json:"worked_day_lines"`
}

type WorkedDayLineResponse struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Sequence      int     `json:"sequence"`
	NumberOfDays  int     `json:"number_of_days"`
	NumberOfHours float64 `json:"number_of_hours"`
}

func MapPayslipToResponse(p Payslip) PayslipResponse {
	lines := make([]WorkedDayLineResponse, 0, len(p.WorkedDayLines))
	for _, l := range p.WorkedDayLines {
		lines = append(lines, WorkedDayLineResponse{
			Name:          l.Name,
			Code:          l.Code,
			Sequence:      l.Sequence,
			NumberOfDays:  l.NumberOfDays,
			NumberOfHours: l.NumberOfHours.InexactFloat64(),
		})
	}
	return PayslipResponse{
		ID:         p.ID,
		EmployeeID: p.EmployeeID,
		SheetID:    p.SheetID,
		Name:       p.Name,
		DateFrom:   p.DateFrom.Format("2006-01-02"),
		DateTo:     p.DateTo.Format("2006-01-02"),
		Status:     string(p.Status),
		Lines:      lines,
	}
}
