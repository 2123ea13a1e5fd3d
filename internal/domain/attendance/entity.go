package attendance

import "time"

// Event is one raw check-in/check-out pair recorded by a terminal or the
// mobile app. CheckOut is nil while the session is still open; open events
// are never reconciled into a sheet.
type Event struct {
	ID         string
	EmployeeID string
	CompanyID  string
	CheckIn    time.Time
	CheckOut   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Closed reports whether the event has a matching check-out.
func (e Event) Closed() bool {
	return e.CheckOut != nil
}
