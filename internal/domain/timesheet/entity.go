package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// SheetState enum: draft -> confirmed -> approved.
type SheetState string

const (
	SheetStateDraft     SheetState = "draft"
	SheetStateConfirmed SheetState = "confirmed"
	SheetStateApproved  SheetState = "approved"
)

// LineStatus tags how a day (or a slice of it) was classified.
type LineStatus string

const (
	StatusNone          LineStatus = ""
	StatusAbsence       LineStatus = "absence"
	StatusWeekend       LineStatus = "weekend"
	StatusPublicHoliday LineStatus = "public_holiday"
	StatusLeave         LineStatus = "leave"
)

// Sheet reconciles one employee's schedule against recorded attendance
// over a date range. Its lines are owned exclusively by the sheet and are
// deleted and regenerated wholesale on every recomputation.
type Sheet struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Name       string
	DateFrom   time.Time
	DateTo     time.Time
	PolicyID   string
	State      SheetState
	PayslipID  *string

	Totals Totals

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	Lines        []SheetLine
}

// Totals is the per-category rollup over a sheet's lines: a count of
// lines where the category's value is positive, and the hour sum.
type Totals struct {
	NoOvertime  int
	TotOvertime decimal.Decimal
	NoLate      int
	TotLate     decimal.Decimal
	NoDiff      int
	TotDiff     decimal.Decimal
	NoAbsence   int
	TotAbsence  decimal.Decimal
	WorkedDays  int
	TotWorked   decimal.Decimal
}

// SheetLine is one classified day record. Planned/actual sign-in and
// sign-out are fractional local wall-clock hours; the remaining figures
// are hour amounts. "Act" fields keep the raw, pre-policy value next to
// the policy-adjusted one.
type SheetLine struct {
	ID      string
	SheetID string
	Date    time.Time
	Weekday time.Weekday

	PlSignIn  decimal.Decimal
	PlSignOut decimal.Decimal
	AcSignIn  decimal.Decimal
	AcSignOut decimal.Decimal

	WorkedHours decimal.Decimal
	Overtime    decimal.Decimal
	ActOvertime decimal.Decimal
	LateIn      decimal.Decimal
	ActLateIn   decimal.Decimal
	DiffTime    decimal.Decimal
	ActDiffTime decimal.Decimal

	Status LineStatus
	Note   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeTotals reduces sheet lines into Totals. Absence splits from diff
// by line status: an absence line's gap counts toward absence, any other
// positive gap counts toward diff-time.
func ComputeTotals(lines []SheetLine) Totals {
	var t Totals
	t.TotOvertime = decimal.Zero
	t.TotLate = decimal.Zero
	t.TotDiff = decimal.Zero
	t.TotAbsence = decimal.Zero
	t.TotWorked = decimal.Zero

	for _, line := range lines {
		if line.Overtime.GreaterThan(decimal.Zero) {
			t.NoOvertime++
			t.TotOvertime = t.TotOvertime.Add(line.Overtime)
		}
		if line.DiffTime.GreaterThan(decimal.Zero) {
			if line.Status == StatusAbsence {
				t.NoAbsence++
				t.TotAbsence = t.TotAbsence.Add(line.DiffTime)
			} else {
				t.NoDiff++
				t.TotDiff = t.TotDiff.Add(line.DiffTime)
			}
		}
		if line.LateIn.GreaterThan(decimal.Zero) {
			t.NoLate++
			t.TotLate = t.TotLate.Add(line.LateIn)
		}
		if line.WorkedHours.GreaterThan(decimal.Zero) {
			t.WorkedDays++
			t.TotWorked = t.TotWorked.Add(line.WorkedHours)
		}
	}
	return t
}

// CanTransition reports whether the sheet may move to the target state.
func (s Sheet) CanTransition(target SheetState) bool {
	switch target {
	case SheetStateDraft:
		return s.State == SheetStateConfirmed
	case SheetStateConfirmed:
		return s.State == SheetStateDraft
	case SheetStateApproved:
		return s.State == SheetStateConfirmed
	}
	return false
}

// Deletable reports whether the sheet may still be removed. Approved
// sheets are frozen because a payslip was projected from them.
func (s Sheet) Deletable() bool {
	return s.State == SheetStateDraft || s.State == SheetStateConfirmed
}

// Overlaps reports whether two sheets' date ranges share at least one day.
func (s Sheet) Overlaps(other Sheet) bool {
	from := s.DateFrom
	if other.DateFrom.After(from) {
		from = other.DateFrom
	}
	to := s.DateTo
	if other.DateTo.Before(to) {
		to = other.DateTo
	}
	return !from.After(to)
}
