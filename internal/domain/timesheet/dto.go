package timesheet

import (
	"time"

	"github.com/worklens/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

type CreateSheetRequest struct {
	EmployeeID string  `json:"employee_id"`
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	PolicyID   *string `json:"policy_id,omitempty"`
	Name       *string `json:"name,omitempty"`
}

func (r *CreateSheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be a valid date (YYYY-MM-DD)",
		})
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be a valid date (YYYY-MM-DD)",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	if from.After(to) {
		return ErrInvalidPeriod
	}
	return nil
}

type BatchComputeRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	DateFrom    string   `json:"date_from"`
	DateTo      string   `json:"date_to"`
	PolicyID    *string  `json:"policy_id,omitempty"`
}

func (r *BatchComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "at least one employee_id is required",
		})
	}
	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be a valid date (YYYY-MM-DD)",
		})
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	if from.After(to) {
		return ErrInvalidPeriod
	}
	return nil
}

// AdjustLineRequest manually overrides a line's computed figures. The note
// is mandatory so the correction is always explained.
type AdjustLineRequest struct {
	LineID   string   `json:"-"`
	Overtime *float64 `json:"overtime,omitempty"`
	LateIn   *float64 `json:"late_in,omitempty"`
	DiffTime *float64 `json:"diff_time,omitempty"`
	Note     string   `json:"note"`
}

func (r *AdjustLineRequest) Validate() error {
	if validator.IsEmpty(r.Note) {
		return ErrAdjustmentNote
	}

	var errs validator.ValidationErrors
	if r.Overtime == nil && r.LateIn == nil && r.DiffTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime",
			Message: "at least one of overtime, late_in, diff_time must be provided",
		})
	}
	for field, v := range map[string]*float64{
		"overtime": r.Overtime, "late_in": r.LateIn, "diff_time": r.DiffTime,
	} {
		if v != nil && *v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SheetFilter struct {
	EmployeeID *string
	State      *SheetState
	Page       int
	Limit      int
}

func (f *SheetFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type SheetResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Name         string  `json:"name"`
	DateFrom     string  `json:"date_from"`
	DateTo       string  `json:"date_to"`
	PolicyID     string  `json:"policy_id"`
	State        string  `json:"state"`
	PayslipID    *string `json:"payslip_id,omitempty"`

	NoOvertime  int     `json:"no_overtime"`
	TotOvertime float64 `json:"tot_overtime"`
	NoLate      int     `json:"no_late"`
	TotLate     float64 `json:"tot_late"`
	NoDiff      int     `json:"no_difftime"`
	TotDiff     float64 `json:"tot_difftime"`
	NoAbsence   int     `json:"no_absence"`
	TotAbsence  float64 `json:"tot_absence"`
	WorkedDays  int     `json:"worked_days"`
	TotWorked   float64 `json:"tot_worked_hours"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SheetLineResponse struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Weekday string `json:"weekday"`

	PlSignIn  float64 `json:"pl_sign_in"`
	PlSignOut float64 `json:"pl_sign_out"`
	AcSignIn  float64 `json:"ac_sign_in"`
	AcSignOut float64 `json:"ac_sign_out"`

	WorkedHours float64 `json:"worked_hours"`
	Overtime    float64 `json:"overtime"`
	ActOvertime float64 `json:"act_overtime"`
	LateIn      float64 `json:"late_in"`
	ActLateIn   float64 `json:"act_late_in"`
	DiffTime    float64 `json:"diff_time"`
	ActDiffTime float64 `json:"act_diff_time"`

	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type ListSheetResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Sheets     []SheetResponse `json:"sheets"`
}

type BatchComputeResponse struct {
	Computed []SheetResponse   `json:"computed"`
	Skipped  map[string]string `json:"skipped,omitempty"` // employee_id -> reason
}

// MapSheetToResponse converts a Sheet entity to its response shape;
// decimal figures become floats only here, at the boundary.
func MapSheetToResponse(s Sheet) SheetResponse {
	var employeeName string
	if s.EmployeeName != nil {
		employeeName = *s.EmployeeName
	}
	return SheetResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: employeeName,
		Name:         s.Name,
		DateFrom:     s.DateFrom.Format("2006-01-02"),
		DateTo:       s.DateTo.Format("2006-01-02"),
		PolicyID:     s.PolicyID,
		State:        string(s.State),
		PayslipID:    s.PayslipID,
		NoOvertime:   s.Totals.NoOvertime,
		TotOvertime:  s.Totals.TotOvertime.InexactFloat64(),
		NoLate:       s.Totals.NoLate,
		TotLate:      s.Totals.TotLate.InexactFloat64(),
		NoDiff:       s.Totals.NoDiff,
		TotDiff:      s.Totals.TotDiff.InexactFloat64(),
		NoAbsence:    s.Totals.NoAbsence,
		TotAbsence:   s.Totals.TotAbsence.InexactFloat64(),
		WorkedDays:   s.Totals.WorkedDays,
		TotWorked:    s.Totals.TotWorked.InexactFloat64(),
		CreatedAt:    s.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func MapLineToResponse(l SheetLine) SheetLineResponse {
	return SheetLineResponse{
		ID:          l.ID,
		Date:        l.Date.Format("2006-01-02"),
		Weekday:     l.Weekday.String(),
		PlSignIn:    l.PlSignIn.InexactFloat64(),
		PlSignOut:   l.PlSignOut.InexactFloat64(),
		AcSignIn:    l.AcSignIn.InexactFloat64(),
		AcSignOut:   l.AcSignOut.InexactFloat64(),
		WorkedHours: l.WorkedHours.InexactFloat64(),
		Overtime:    l.Overtime.InexactFloat64(),
		ActOvertime: l.ActOvertime.InexactFloat64(),
		LateIn:      l.LateIn.InexactFloat64(),
		ActLateIn:   l.ActLateIn.InexactFloat64(),
		DiffTime:    l.DiffTime.InexactFloat64(),
		ActDiffTime: l.ActDiffTime.InexactFloat64(),
		Status:      string(l.Status),
		Note:        l.Note,
	}
}

// PeriodDays expands [from, to] into the individual calendar days.
func PeriodDays(from, to time.Time) []time.Time {
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
