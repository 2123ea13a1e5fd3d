package timesheet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestComputeTotals(t *testing.T) {
	lines := []SheetLine{
		{WorkedHours: d(9), Overtime: d(1), LateIn: d(0.25)},
		{WorkedHours: d(8), DiffTime: d(2)},
		{Status: StatusAbsence, DiffTime: d(8)},
		{Status: StatusWeekend},
	}

	totals := ComputeTotals(lines)

	assert.Equal(t, 1, totals.NoOvertime)
	assert.Equal(t, "1", totals.TotOvertime.String())
	assert.Equal(t, 1, totals.NoLate)
	assert.Equal(t, "0.25", totals.TotLate.String())

	// The absence line's gap lands in the absence bucket, not diff.
	assert.Equal(t, 1, totals.NoDiff)
	assert.Equal(t, "2", totals.TotDiff.String())
	assert.Equal(t, 1, totals.NoAbsence)
	assert.Equal(t, "8", totals.TotAbsence.String())

	assert.Equal(t, 2, totals.WorkedDays)
	assert.Equal(t, "17", totals.TotWorked.String())
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.Equal(t, 0, totals.NoOvertime)
	assert.True(t, totals.TotOvertime.IsZero())
	assert.True(t, totals.TotWorked.IsZero())
}

func TestSheetCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from SheetState
		to   SheetState
		want bool
	}{
		{"draft to confirmed", SheetStateDraft, SheetStateConfirmed, true},
		{"confirmed to approved", SheetStateConfirmed, SheetStateApproved, true},
		{"confirmed back to draft", SheetStateConfirmed, SheetStateDraft, true},
		{"draft to approved", SheetStateDraft, SheetStateApproved, false},
		{"approved to draft", SheetStateApproved, SheetStateDraft, false},
		{"approved to confirmed", SheetStateApproved, SheetStateConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := Sheet{State: tt.from}
			assert.Equal(t, tt.want, sheet.CanTransition(tt.to))
		})
	}
}

func TestSheetDeletable(t *testing.T) {
	assert.True(t, Sheet{State: SheetStateDraft}.Deletable())
	assert.True(t, Sheet{State: SheetStateConfirmed}.Deletable())
	assert.False(t, Sheet{State: SheetStateApproved}.Deletable())
}

func TestSheetOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
	}
	base := Sheet{DateFrom: day(10), DateTo: day(20)}

	tests := []struct {
		name  string
		other Sheet
		want  bool
	}{
		{"identical period", Sheet{DateFrom: day(10), DateTo: day(20)}, true},
		{"contained", Sheet{DateFrom: day(12), DateTo: day(15)}, true},
		{"partial overlap", Sheet{DateFrom: day(18), DateTo: day(25)}, true},
		{"shared boundary day", Sheet{DateFrom: day(20), DateTo: day(25)}, true},
		{"before", Sheet{DateFrom: day(1), DateTo: day(9)}, false},
		{"after", Sheet{DateFrom: day(21), DateTo: day(28)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestPeriodDays(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	days := PeriodDays(from, to)
	assert.Len(t, days, 4)
	assert.Equal(t, from, days[0])
	assert.Equal(t, to, days[3])

	assert.Len(t, PeriodDays(from, from), 1)
	assert.Empty(t, PeriodDays(to, from))
}
