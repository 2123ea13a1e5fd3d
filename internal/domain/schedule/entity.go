package schedule

import "time"

// WorkCalendar is an employee's resource calendar: the set of weekly
// attendance templates that define planned working hours.
type WorkCalendar struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	Attendances []CalendarAttendance
}

// CalendarAttendance is one weekly template row. HourFrom/HourTo are
// wall-clock fractional hours in the employee's timezone (8.5 == 08:30).
// The optional DateFrom/DateTo window limits which days the row applies to.
type CalendarAttendance struct {
	ID         string
	CalendarID string
	Name       string
	DayOfWeek  time.Weekday
	HourFrom   float64
	HourTo     float64
	DateFrom   *time.Time
	DateTo     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AppliesTo reports whether the template row is in effect on the given
// calendar day (weekday match plus validity window).
func (a CalendarAttendance) AppliesTo(day time.Time) bool {
	if a.DayOfWeek != day.Weekday() {
		return false
	}
	if a.DateFrom != nil && day.Before(*a.DateFrom) {
		return false
	}
	if a.DateTo != nil && day.After(*a.DateTo) {
		return false
	}
	return true
}
