package timesheet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/worklens/attendance-backend-go/internal/domain/policy"
	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
	"github.com/worklens/attendance-backend-go/internal/pkg/interval"
)

// DayInput bundles everything the classifier needs for one calendar day,
// with every provider lookup already reduced to plain UTC intervals.
type DayInput struct {
	// Date is midnight of the day in the employee's timezone.
	Date time.Time
	// Planned intervals come from the schedule resolver: merged,
	// pairwise disjoint, ordered by start.
	Planned []interval.Interval
	// Actual intervals come from closed check-in/check-out pairs,
	// ordered by check-in.
	Actual []interval.Interval
	// Leaves are validated leave spans; they only ever subtract from
	// gap intervals.
	Leaves        []interval.Interval
	PublicHoliday bool
	Policy        policy.AttendancePolicy
	Location      *time.Location
}

// DayResult carries the day's classified lines and the updated running
// absence-day counter.
type DayResult struct {
	Lines       []timesheet.SheetLine
	AbsenceDays int
}

// ClassifyDay partitions one day's planned and actual intervals into
// classified sheet lines. It is pure: no I/O, no clock reads, and the
// same input always yields the same lines.
//
// absenceDays is the running count of absence days earlier in the sheet;
// it increments at most once for this day, regardless of how many absence
// fragments the day contains, and the updated value feeds the policy's
// absence curve.
func ClassifyDay(in DayInput, absenceDays int) DayResult {
	// Clock anomalies (check-out at or before check-in) are absorbed
	// here rather than raised: the interval is dropped and the day's
	// first line carries a note about it.
	var dropped int
	actual := make([]interval.Interval, 0, len(in.Actual))
	for _, a := range in.Actual {
		if a.Valid() {
			actual = append(actual, a)
		} else {
			dropped++
		}
	}

	var lines []timesheet.SheetLine
	switch {
	case in.PublicHoliday:
		lines = classifyFreeDay(in, actual, timesheet.StatusPublicHoliday,
			policy.DayTypePublicHoliday, "working on Public Holiday")
	case len(in.Planned) == 0:
		lines = classifyFreeDay(in, actual, timesheet.StatusWeekend,
			policy.DayTypeWeekend, "working in weekend")
	default:
		lines, absenceDays = classifyWorkday(in, actual, absenceDays)
	}

	if dropped > 0 && len(lines) > 0 {
		note := fmt.Sprintf("ignored %d attendance interval(s) ending before they start", dropped)
		if lines[0].Note != "" {
			note = lines[0].Note + "; " + note
		}
		lines[0].Note = note
	}
	return DayResult{Lines: lines, AbsenceDays: absenceDays}
}

// classifyFreeDay handles public holidays and non-working days: there is
// no plan to reconcile against, so every actual interval is rated as
// overtime on its own line.
func classifyFreeDay(in DayInput, actual []interval.Interval, status timesheet.LineStatus, kind policy.DayType, note string) []timesheet.SheetLine {
	if len(actual) == 0 {
		return []timesheet.SheetLine{newLine(in, status)}
	}

	lines := make([]timesheet.SheetLine, 0, len(actual))
	for _, a := range actual {
		line := newLine(in, status)
		worked := interval.Hours(a.Duration())
		line.AcSignIn = clockHours(a.Start, in.Location)
		line.AcSignOut = line.AcSignIn.Add(worked)
		line.WorkedHours = worked
		line.Overtime, line.ActOvertime = in.Policy.RateOvertime(kind, worked)
		line.Note = note
		lines = append(lines, line)
	}
	return lines
}

// classifyWorkday reconciles each planned shift against the actual
// intervals, then reports any never-matched actual interval as work out
// of schedule.
func classifyWorkday(in DayInput, actual []interval.Interval, absenceDays int) ([]timesheet.SheetLine, int) {
	p := in.Policy
	lines := make([]timesheet.SheetLine, 0, len(in.Planned))
	absFlag := false

	// Worklist of actual intervals still unclaimed by a shift. Split
	// remainders go back on it instead of being spliced into a slice
	// mid-iteration.
	remaining := actual

	for i, planned := range in.Planned {
		var matched []interval.Interval
		var rest []interval.Interval
		for len(remaining) > 0 {
			a := remaining[0]
			remaining = remaining[1:]
			if !a.Overlaps(planned) {
				rest = append(rest, a)
				continue
			}
			// A single check-in/out straddling the next shift is cut
			// at that shift's start: the head belongs to this shift,
			// the tail is requeued for the next one.
			if i+1 < len(in.Planned) && a.Overlaps(in.Planned[i+1]) {
				head, tail := a.SplitAt(in.Planned[i+1].Start)
				matched = append(matched, head)
				if tail.Valid() {
					rest = append(rest, tail)
				}
				continue
			}
			matched = append(matched, a)
		}
		remaining = rest

		line := newLine(in, timesheet.StatusNone)
		line.PlSignIn = clockHours(planned.Start, in.Location)
		line.PlSignOut = clockHours(planned.End, in.Location)

		var lateIv interval.Interval
		var overtimeRaw time.Duration
		var worked time.Duration
		var diffGaps []interval.Interval

		if len(matched) == 0 {
			line.Status = timesheet.StatusAbsence
			diffGaps = []interval.Interval{planned}
		} else {
			first := matched[0]
			last := matched[len(matched)-1]
			if first.Start.After(planned.Start) {
				lateIv = interval.New(planned.Start, first.Start)
			}
			if last.End.After(planned.End) {
				overtimeRaw = last.End.Sub(planned.End)
			}
			for _, m := range matched {
				worked += m.Duration()
			}
			// Unworked remainder of the shift after the first
			// fragment: holes between fragments plus an early
			// departure tail, clipped to the shift end.
			diffGaps = interval.Subtract(interval.New(first.End, planned.End), matched[1:])

			line.AcSignIn = clockHours(first.Start, in.Location)
			line.AcSignOut = line.AcSignIn.Add(interval.Hours(last.End.Sub(first.Start)))
		}

		// Leave-covered parts of the gaps are not billable. The status
		// flips to leave only when a subtraction actually removed time.
		var diffDur time.Duration
		leaveTouched := false
		for _, gap := range diffGaps {
			kept := interval.TotalDuration(interval.Subtract(gap, in.Leaves))
			if kept < gap.Duration() {
				leaveTouched = true
			}
			diffDur += kept
		}
		var lateDur time.Duration
		if lateIv.Valid() {
			lateDur = interval.TotalDuration(interval.Subtract(lateIv, in.Leaves))
			if lateDur < lateIv.Duration() {
				leaveTouched = true
			}
		}
		if leaveTouched {
			line.Status = timesheet.StatusLeave
		}

		line.WorkedHours = interval.Hours(worked)
		line.Overtime, line.ActOvertime = p.RateOvertime(policy.DayTypeWorkday, interval.Hours(overtimeRaw))

		lateHours := interval.Hours(lateDur)
		line.ActLateIn = lateHours
		line.LateIn = p.Lateness(lateHours)

		diffHours := interval.Hours(diffDur)
		line.ActDiffTime = diffHours
		if line.Status == timesheet.StatusAbsence {
			if !absFlag {
				absenceDays++
				absFlag = true
			}
			line.DiffTime = p.Absence(diffHours, absenceDays)
		} else {
			line.DiffTime = p.Diff(diffHours)
		}

		lines = append(lines, line)
	}

	// Whatever was never claimed by a shift is worked time entirely out
	// of schedule, rated with the workday overtime pair.
	for _, a := range remaining {
		line := newLine(in, timesheet.StatusNone)
		worked := interval.Hours(a.Duration())
		line.AcSignIn = clockHours(a.Start, in.Location)
		line.AcSignOut = line.AcSignIn.Add(worked)
		line.WorkedHours = worked
		line.Overtime, line.ActOvertime = p.RateOvertime(policy.DayTypeWorkday, worked)
		line.Note = "overtime out of work intervals"
		lines = append(lines, line)
	}

	return lines, absenceDays
}

func newLine(in DayInput, status timesheet.LineStatus) timesheet.SheetLine {
	return timesheet.SheetLine{
		Date:    in.Date,
		Weekday: in.Date.Weekday(),
		Status:  status,
	}
}

// clockHours converts a timestamp to the fractional local wall-clock hour
// (08:30 -> 8.5), minute granularity.
func clockHours(t time.Time, loc *time.Location) decimal.Decimal {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return decimal.New(int64(local.Hour()*60+local.Minute()), 0).Div(decimal.New(60, 0))
}
