package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access for validated leaves.
type LeaveRepository interface {
	// ListValidatedBetween retrieves validated leaves intersecting
	// [fromUTC, toUTC), ordered by start ascending.
	ListValidatedBetween(ctx context.Context, employeeID string, fromUTC, toUTC time.Time, companyID string) ([]Leave, error)
}
