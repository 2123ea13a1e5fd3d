package response

import (
	"errors"
	"net/http"

	"github.com/worklens/attendance-backend-go/internal/domain/employee"
	"github.com/worklens/attendance-backend-go/internal/domain/payroll"
	"github.com/worklens/attendance-backend-go/internal/domain/policy"
	"github.com/worklens/attendance-backend-go/internal/domain/schedule"
	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
	"github.com/worklens/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrSheetNotFound):
		NotFound(w, "Sheet not found")
	case errors.Is(err, timesheet.ErrLineNotFound):
		NotFound(w, "Sheet line not found")
	case errors.Is(err, timesheet.ErrOverlappingSheet):
		Conflict(w, "Employee already has a sheet covering this period")
	case errors.Is(err, timesheet.ErrInvalidPeriod):
		BadRequest(w, "date_from must not be after date_to", nil)
	case errors.Is(err, timesheet.ErrMissingCalendar):
		BadRequest(w, "Employee has no work calendar assigned", nil)
	case errors.Is(err, timesheet.ErrMissingPolicy):
		BadRequest(w, "No attendance policy could be resolved for the employee", nil)
	case errors.Is(err, timesheet.ErrInvalidTransition):
		Conflict(w, "Sheet state does not allow this transition")
	case errors.Is(err, timesheet.ErrSheetNotDeletable):
		Conflict(w, "Approved sheets cannot be deleted")
	case errors.Is(err, timesheet.ErrAdjustmentNote):
		BadRequest(w, "A note is required when adjusting a sheet line", nil)

	// Supporting domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, schedule.ErrCalendarNotFound):
		NotFound(w, "Work calendar not found")
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Attendance policy not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
