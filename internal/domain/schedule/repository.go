package schedule

import "context"

// CalendarRepository defines data access for work calendars and their
// attendance templates.
type CalendarRepository interface {
	// GetByID retrieves a calendar with its attendance templates.
	GetByID(ctx context.Context, id string, companyID string) (WorkCalendar, error)

	// GetByEmployeeID retrieves the calendar assigned to an employee's
	// contract, with its attendance templates.
	GetByEmployeeID(ctx context.Context, employeeID string, companyID string) (WorkCalendar, error)
}
