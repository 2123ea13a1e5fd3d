package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for raw attendance events.
type EventRepository interface {
	// ListByEmployeeBetween retrieves events whose check-in falls in
	// [fromUTC, toUTC), ordered by check-in ascending. Events without a
	// check-out are included; the caller decides how to treat them.
	ListByEmployeeBetween(ctx context.Context, employeeID string, fromUTC, toUTC time.Time, companyID string) ([]Event, error)
}
