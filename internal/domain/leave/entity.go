package leave

import "time"

// LeaveState enum
type LeaveState string

const (
	LeaveStateDraft     LeaveState = "draft"
	LeaveStateValidated LeaveState = "validated"
	LeaveStateRefused   LeaveState = "refused"
)

// Leave is an approved absence span. Only validated leaves take part in
// sheet reconciliation, and only ever to subtract from gap intervals.
type Leave struct {
	ID         string
	EmployeeID string
	CompanyID  string
	DateFrom   time.Time
	DateTo     time.Time
	State      LeaveState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
