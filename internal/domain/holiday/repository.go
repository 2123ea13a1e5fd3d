package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access for public holidays.
type HolidayRepository interface {
	// ListActiveBetween retrieves active holidays intersecting the date
	// range [from, to], unscoped and employee-scoped alike.
	ListActiveBetween(ctx context.Context, from, to time.Time, companyID string) ([]PublicHoliday, error)
}

// IsPublicHoliday checks a day against a pre-fetched holiday list.
func IsPublicHoliday(holidays []PublicHoliday, day time.Time, employeeID string) bool {
	for _, h := range holidays {
		if h.Covers(day, employeeID) {
			return true
		}
	}
	return false
}
