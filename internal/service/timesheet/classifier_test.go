package timesheet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklens/attendance-backend-go/internal/domain/policy"
	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
	"github.com/worklens/attendance-backend-go/internal/pkg/interval"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // a Monday

func at(hour, min int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func iv(fromHour, fromMin, toHour, toMin int) interval.Interval {
	return interval.New(at(fromHour, fromMin), at(toHour, toMin))
}

func flatPolicy() policy.AttendancePolicy {
	return policy.AttendancePolicy{
		WdAfter: decimal.Zero,
		WdRate:  decimal.NewFromInt(1),
		WeAfter: decimal.Zero,
		WeRate:  decimal.NewFromInt(1),
		PhAfter: decimal.Zero,
		PhRate:  decimal.NewFromInt(1),
	}
}

func workdayInput(planned, actual []interval.Interval) DayInput {
	return DayInput{
		Date:    testDay,
		Planned: planned,
		Actual:  actual,
		Policy:  flatPolicy(),
	}
}

func TestClassifyDayExactMatch(t *testing.T) {
	in := workdayInput(
		[]interval.Interval{iv(8, 0, 17, 0)},
		[]interval.Interval{iv(8, 0, 17, 0)},
	)

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Equal(t, timesheet.StatusNone, line.Status)
	assert.Equal(t, "9", line.WorkedHours.String())
	assert.True(t, line.Overtime.IsZero())
	assert.True(t, line.LateIn.IsZero())
	assert.True(t, line.DiffTime.IsZero())
	assert.Equal(t, "8", line.PlSignIn.String())
	assert.Equal(t, "17", line.PlSignOut.String())
	assert.Equal(t, "8", line.AcSignIn.String())
	assert.Equal(t, "17", line.AcSignOut.String())
	assert.Equal(t, 0, res.AbsenceDays)
}

func TestClassifyDayLateAndOvertime(t *testing.T) {
	in := workdayInput(
		[]interval.Interval{iv(8, 0, 17, 0)},
		[]interval.Interval{iv(8, 15, 17, 30)},
	)

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Equal(t, timesheet.StatusNone, line.Status)
	assert.Equal(t, "0.25", line.ActLateIn.String())
	assert.Equal(t, "0.25", line.LateIn.String())
	assert.Equal(t, "0.5", line.ActOvertime.String())
	assert.Equal(t, "0.5", line.Overtime.String())
	assert.True(t, line.DiffTime.IsZero())
}

func TestClassifyDayOvertimeThresholdAndRate(t *testing.T) {
	p := flatPolicy()
	p.WdAfter = decimal.NewFromFloat(0.5)
	p.WdRate = decimal.NewFromFloat(2)

	in := workdayInput(
		[]interval.Interval{iv(8, 0, 17, 0)},
		[]interval.Interval{iv(8, 0, 18, 30)},
	)
	in.Policy = p

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	// Raw overtime 1.5h, threshold eats 0.5h, the rest doubles.
	line := res.Lines[0]
	assert.Equal(t, "1", line.ActOvertime.String())
	assert.Equal(t, "2", line.Overtime.String())
}

func TestClassifyDayAbsence(t *testing.T) {
	p := flatPolicy()
	p.Rules.Absence = []policy.AbsenceTier{
		{FromDay: 1, Rate: decimal.NewFromInt(2)},
	}

	in := workdayInput(
		[]interval.Interval{iv(8, 0, 12, 0), iv(13, 0, 17, 0)},
		nil,
	)
	in.Policy = p

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 2)

	// One absence day even with two absent shifts.
	assert.Equal(t, 1, res.AbsenceDays)
	for _, line := range res.Lines {
		assert.Equal(t, timesheet.StatusAbsence, line.Status)
		assert.Equal(t, "4", line.ActDiffTime.String())
		assert.Equal(t, "8", line.DiffTime.String())
		assert.True(t, line.WorkedHours.IsZero())
	}
}

func TestClassifyDayAbsenceCounterThreadsAcrossDays(t *testing.T) {
	p := flatPolicy()
	p.Rules.Absence = []policy.AbsenceTier{
		{FromDay: 1, Rate: decimal.NewFromInt(1)},
		{FromDay: 2, Rate: decimal.NewFromInt(3)},
	}

	in := workdayInput([]interval.Interval{iv(8, 0, 16, 0)}, nil)
	in.Policy = p

	first := ClassifyDay(in, 0)
	require.Equal(t, 1, first.AbsenceDays)
	assert.Equal(t, "8", first.Lines[0].DiffTime.String())

	// The second absence day lands in the harsher tier.
	second := ClassifyDay(in, first.AbsenceDays)
	require.Equal(t, 2, second.AbsenceDays)
	assert.Equal(t, "24", second.Lines[0].DiffTime.String())
}

func TestClassifyDayPublicHoliday(t *testing.T) {
	p := flatPolicy()
	p.PhRate = decimal.NewFromFloat(1.5)

	in := workdayInput(
		[]interval.Interval{iv(8, 0, 17, 0)},
		[]interval.Interval{iv(9, 0, 13, 0)},
	)
	in.Policy = p
	in.PublicHoliday = true

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Equal(t, timesheet.StatusPublicHoliday, line.Status)
	assert.Equal(t, "4", line.WorkedHours.String())
	assert.Equal(t, "4", line.ActOvertime.String())
	assert.Equal(t, "6", line.Overtime.String())
	assert.Equal(t, "working on Public Holiday", line.Note)
	assert.Equal(t, 0, res.AbsenceDays)
}

func TestClassifyDayPublicHolidayWithoutWork(t *testing.T) {
	in := workdayInput([]interval.Interval{iv(8, 0, 17, 0)}, nil)
	in.PublicHoliday = true

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Equal(t, timesheet.StatusPublicHoliday, line.Status)
	assert.True(t, line.WorkedHours.IsZero())
	assert.True(t, line.DiffTime.IsZero())
	assert.Equal(t, 0, res.AbsenceDays)
}

func TestClassifyDayWeekendWork(t *testing.T) {
	p := flatPolicy()
	p.WeAfter = decimal.NewFromInt(1)
	p.WeRate = decimal.NewFromInt(2)

	in := workdayInput(nil, []interval.Interval{iv(10, 0, 14, 0)})
	in.Policy = p

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Equal(t, timesheet.StatusWeekend, line.Status)
	assert.Equal(t, "4", line.WorkedHours.String())
	assert.Equal(t, "3", line.ActOvertime.String())
	assert.Equal(t, "6", line.Overtime.String())
	assert.Equal(t, "working in weekend", line.Note)
}

func TestClassifyDayLeaveCoveredGap(t *testing.T) {
	in := workdayInput(
		[]interval.Interval{iv(8, 0, 16, 0)},
		[]interval.Interval{iv(8, 0, 12, 0)},
	)
	in.Leaves = []interval.Interval{iv(12, 0, 16, 0)}

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Equal(t, timesheet.StatusLeave, line.Status)
	assert.True(t, line.DiffTime.IsZero())
	assert.Equal(t, "4", line.WorkedHours.String())
	assert.Equal(t, 0, res.AbsenceDays)
}

func TestClassifyDayLeavePartialGap(t *testing.T) {
	in := workdayInput(
		[]interval.Interval{iv(8, 0, 16, 0)},
		[]interval.Interval{iv(8, 0, 12, 0)},
	)
	in.Leaves = []interval.Interval{iv(12, 0, 14, 0)}

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	// Two of the four missing hours are on leave; the rest still counts.
	line := res.Lines[0]
	assert.Equal(t, timesheet.StatusLeave, line.Status)
	assert.Equal(t, "2", line.ActDiffTime.String())
	assert.Equal(t, "2", line.DiffTime.String())
}

func TestClassifyDayStraddlingTwoShifts(t *testing.T) {
	in := workdayInput(
		[]interval.Interval{iv(8, 0, 12, 0), iv(13, 0, 17, 0)},
		[]interval.Interval{iv(7, 0, 17, 0)},
	)

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 2)

	// The single span is cut at the second shift's start: its head
	// carries one raw overtime hour past the morning shift, its tail
	// covers the afternoon shift exactly.
	morning := res.Lines[0]
	assert.Equal(t, "6", morning.WorkedHours.String())
	assert.Equal(t, "1", morning.ActOvertime.String())
	assert.True(t, morning.LateIn.IsZero())
	assert.True(t, morning.DiffTime.IsZero())
	assert.Equal(t, "7", morning.AcSignIn.String())
	assert.Equal(t, "13", morning.AcSignOut.String())

	afternoon := res.Lines[1]
	assert.Equal(t, "4", afternoon.WorkedHours.String())
	assert.True(t, afternoon.Overtime.IsZero())
	assert.True(t, afternoon.LateIn.IsZero())
	assert.True(t, afternoon.DiffTime.IsZero())
}

func TestClassifyDayMultipleFragments(t *testing.T) {
	in := workdayInput(
		[]interval.Interval{iv(8, 0, 17, 0)},
		[]interval.Interval{iv(8, 0, 10, 0), iv(11, 0, 13, 0), iv(15, 0, 17, 0)},
	)

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	// Holes 10-11 and 13-15 are unworked shift time.
	line := res.Lines[0]
	assert.Equal(t, timesheet.StatusNone, line.Status)
	assert.Equal(t, "6", line.WorkedHours.String())
	assert.Equal(t, "3", line.ActDiffTime.String())
	assert.Equal(t, "3", line.DiffTime.String())
	assert.Equal(t, "8", line.AcSignIn.String())
	assert.Equal(t, "17", line.AcSignOut.String())
}

func TestClassifyDayOutOfSchedule(t *testing.T) {
	in := workdayInput(
		[]interval.Interval{iv(8, 0, 12, 0)},
		[]interval.Interval{iv(8, 0, 12, 0), iv(20, 0, 22, 0)},
	)

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 2)

	extra := res.Lines[1]
	assert.Equal(t, timesheet.StatusNone, extra.Status)
	assert.Equal(t, "2", extra.WorkedHours.String())
	assert.Equal(t, "2", extra.Overtime.String())
	assert.Equal(t, "overtime out of work intervals", extra.Note)
	assert.Equal(t, "20", extra.AcSignIn.String())
}

func TestClassifyDayLatenessTiers(t *testing.T) {
	p := flatPolicy()
	p.Rules.Lateness = []policy.LatenessTier{
		{AfterHours: decimal.Zero, Rate: decimal.NewFromInt(1), FixedPenalty: decimal.Zero},
		{AfterHours: decimal.NewFromInt(1), Rate: decimal.NewFromInt(2), FixedPenalty: decimal.NewFromFloat(0.5)},
	}

	in := workdayInput(
		[]interval.Interval{iv(8, 0, 17, 0)},
		[]interval.Interval{iv(10, 0, 17, 0)},
	)
	in.Policy = p

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	// Two late hours land in the second tier: 0.5 fixed + 2h doubled.
	line := res.Lines[0]
	assert.Equal(t, "2", line.ActLateIn.String())
	assert.Equal(t, "4.5", line.LateIn.String())
}

func TestClassifyDayInvalidIntervalNote(t *testing.T) {
	in := workdayInput(
		[]interval.Interval{iv(8, 0, 17, 0)},
		[]interval.Interval{iv(8, 0, 17, 0), iv(18, 0, 17, 30)},
	)

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Contains(t, line.Note, "ignored 1 attendance interval(s)")
	assert.Equal(t, "9", line.WorkedHours.String())
}

func TestClassifyDayTimezoneClock(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 01:00 UTC is 08:00 in Jakarta.
	in := workdayInput(
		[]interval.Interval{interval.New(at(1, 0), at(10, 0))},
		[]interval.Interval{interval.New(at(1, 0), at(10, 0))},
	)
	in.Location = jakarta

	res := ClassifyDay(in, 0)
	require.Len(t, res.Lines, 1)

	line := res.Lines[0]
	assert.Equal(t, "8", line.PlSignIn.String())
	assert.Equal(t, "17", line.PlSignOut.String())
	assert.Equal(t, "8", line.AcSignIn.String())
}
