package holiday

import "time"

// PublicHoliday is a company-wide or employee-scoped holiday span. An empty
// EmployeeIDs list means the holiday applies to everyone.
type PublicHoliday struct {
	ID          string
	CompanyID   string
	Name        string
	DateFrom    time.Time
	DateTo      time.Time
	Active      bool
	EmployeeIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Covers reports whether the holiday applies to the given employee on the
// given calendar day.
func (h PublicHoliday) Covers(day time.Time, employeeID string) bool {
	if !h.Active {
		return false
	}
	if day.Before(h.DateFrom) || day.After(h.DateTo) {
		return false
	}
	if len(h.EmployeeIDs) == 0 {
		return true
	}
	for _, id := range h.EmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}
