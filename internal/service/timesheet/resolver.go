package timesheet

import (
	"math"
	"time"

	"github.com/worklens/attendance-backend-go/internal/domain/attendance"
	"github.com/worklens/attendance-backend-go/internal/domain/leave"
	"github.com/worklens/attendance-backend-go/internal/domain/schedule"
	"github.com/worklens/attendance-backend-go/internal/pkg/interval"
)

// PlannedIntervals resolves one day's planned work intervals from the
// calendar's attendance templates: weekday and validity-window match,
// wall-clock hours anchored to the day in the employee's timezone,
// clipped to the day boundary, converted to UTC and merged.
//
// Non-working days (no matching template) yield an empty result.
func PlannedIntervals(cal schedule.WorkCalendar, day time.Time, loc *time.Location) []interval.Interval {
	if loc == nil {
		loc = time.UTC
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	// Validity windows are plain dates; compare them in UTC regardless
	// of the employee's timezone.
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var raw []interval.Interval
	for _, att := range cal.Attendances {
		if !att.AppliesTo(date) {
			continue
		}
		from := dayStart.Add(hourToDuration(att.HourFrom))
		to := dayStart.Add(hourToDuration(att.HourTo))
		if from.Before(dayStart) {
			from = dayStart
		}
		if to.After(dayEnd) {
			to = dayEnd
		}
		raw = append(raw, interval.New(from.UTC(), to.UTC()))
	}
	return interval.Merge(raw)
}

// EventIntervals turns raw attendance events into actual intervals.
// Events without a check-out are open sessions: they are dropped, not
// errors, and the count of dropped events is returned for reporting.
func EventIntervals(events []attendance.Event) ([]interval.Interval, int) {
	var open int
	intervals := make([]interval.Interval, 0, len(events))
	for _, e := range events {
		if !e.Closed() {
			open++
			continue
		}
		intervals = append(intervals, interval.New(e.CheckIn.UTC(), e.CheckOut.UTC()))
	}
	return intervals, open
}

// LeaveIntervals reduces leave rows to plain UTC intervals.
func LeaveIntervals(leaves []leave.Leave) []interval.Interval {
	intervals := make([]interval.Interval, 0, len(leaves))
	for _, l := range leaves {
		intervals = append(intervals, interval.New(l.DateFrom.UTC(), l.DateTo.UTC()))
	}
	return intervals
}

// hourToDuration converts fractional wall-clock hours to a duration at
// minute granularity (8.5 -> 8h30m).
func hourToDuration(h float64) time.Duration {
	return time.Duration(math.Round(h*60)) * time.Minute
}
