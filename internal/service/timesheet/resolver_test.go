package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklens/attendance-backend-go/internal/domain/attendance"
	"github.com/worklens/attendance-backend-go/internal/domain/leave"
	"github.com/worklens/attendance-backend-go/internal/domain/schedule"
)

func testCalendar(attendances ...schedule.CalendarAttendance) schedule.WorkCalendar {
	return schedule.WorkCalendar{
		ID:          "cal-1",
		Name:        "Standard 40h",
		Attendances: attendances,
	}
}

func TestPlannedIntervalsWeekdayMatch(t *testing.T) {
	cal := testCalendar(
		schedule.CalendarAttendance{DayOfWeek: time.Monday, HourFrom: 8, HourTo: 12},
		schedule.CalendarAttendance{DayOfWeek: time.Monday, HourFrom: 13, HourTo: 17},
		schedule.CalendarAttendance{DayOfWeek: time.Tuesday, HourFrom: 9, HourTo: 18},
	)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got := PlannedIntervals(cal, monday, time.UTC)
	require.Len(t, got, 2)
	assert.Equal(t, monday.Add(8*time.Hour), got[0].Start)
	assert.Equal(t, monday.Add(12*time.Hour), got[0].End)
	assert.Equal(t, monday.Add(13*time.Hour), got[1].Start)
	assert.Equal(t, monday.Add(17*time.Hour), got[1].End)

	sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, PlannedIntervals(cal, sunday, time.UTC))
}

func TestPlannedIntervalsValidityWindow(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	cal := testCalendar(
		schedule.CalendarAttendance{DayOfWeek: time.Monday, HourFrom: 8, HourTo: 16, DateFrom: &from, DateTo: &to},
	)

	inside := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Len(t, PlannedIntervals(cal, inside, time.UTC), 1)

	outside := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, PlannedIntervals(cal, outside, time.UTC))
}

func TestPlannedIntervalsTimezone(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	cal := testCalendar(
		schedule.CalendarAttendance{DayOfWeek: time.Monday, HourFrom: 8, HourTo: 17},
	)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, jakarta)
	got := PlannedIntervals(cal, monday, jakarta)
	require.Len(t, got, 1)

	// 08:00 Jakarta is 01:00 UTC.
	assert.Equal(t, time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), got[0].End)
	assert.Equal(t, time.UTC, got[0].Start.Location())
}

func TestPlannedIntervalsMergesTouchingTemplates(t *testing.T) {
	cal := testCalendar(
		schedule.CalendarAttendance{DayOfWeek: time.Monday, HourFrom: 8, HourTo: 12},
		schedule.CalendarAttendance{DayOfWeek: time.Monday, HourFrom: 12, HourTo: 17},
	)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got := PlannedIntervals(cal, monday, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, monday.Add(8*time.Hour), got[0].Start)
	assert.Equal(t, monday.Add(17*time.Hour), got[0].End)
}

func TestPlannedIntervalsClipsToDay(t *testing.T) {
	cal := testCalendar(
		schedule.CalendarAttendance{DayOfWeek: time.Monday, HourFrom: 22, HourTo: 26},
	)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got := PlannedIntervals(cal, monday, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, monday.Add(24*time.Hour), got[0].End)
}

func TestPlannedIntervalsFractionalHours(t *testing.T) {
	cal := testCalendar(
		schedule.CalendarAttendance{DayOfWeek: time.Monday, HourFrom: 8.5, HourTo: 17.25},
	)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got := PlannedIntervals(cal, monday, time.UTC)
	require.Len(t, got, 1)
	assert.Equal(t, monday.Add(8*time.Hour+30*time.Minute), got[0].Start)
	assert.Equal(t, monday.Add(17*time.Hour+15*time.Minute), got[0].End)
}

func TestEventIntervalsDropsOpenSessions(t *testing.T) {
	checkIn := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(9 * time.Hour)

	events := []attendance.Event{
		{CheckIn: checkIn, CheckOut: &checkOut},
		{CheckIn: checkIn.Add(10 * time.Hour)}, // still clocked in
	}

	got, open := EventIntervals(events)
	require.Len(t, got, 1)
	assert.Equal(t, 1, open)
	assert.Equal(t, checkIn, got[0].Start)
	assert.Equal(t, checkOut, got[0].End)
}

func TestLeaveIntervals(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	got := LeaveIntervals([]leave.Leave{{DateFrom: from, DateTo: to}})
	require.Len(t, got, 1)
	assert.Equal(t, from, got[0].Start)
	assert.Equal(t, to, got[0].End)
}
