package employee

import "time"

// Employee carries the subset of employee data the sheet computation
// needs: timezone, calendar assignment and policy references. Full
// employee administration lives in the host HR suite.
type Employee struct {
	ID           string
	CompanyID    string
	Name         string
	DepartmentID *string
	Timezone     string
	CalendarID   *string
	PolicyID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
