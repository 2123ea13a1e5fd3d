package policy

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRateOvertime(t *testing.T) {
	p := AttendancePolicy{
		WdAfter: dec("1"), WdRate: dec("1.5"),
		WeAfter: dec("0"), WeRate: dec("2"),
		PhAfter: dec("0"), PhRate: dec("1.5"),
	}

	cases := []struct {
		name        string
		kind        DayType
		raw         string
		wantAdj     string
		wantActual  string
	}{
		{"workday below threshold", DayTypeWorkday, "0.5", "0", "0"},
		{"workday at threshold", DayTypeWorkday, "1", "0", "0"},
		{"workday above threshold", DayTypeWorkday, "3", "3", "2"},
		{"weekend", DayTypeWeekend, "4", "8", "4"},
		{"public holiday", DayTypePublicHoliday, "4", "6", "4"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			adj, act := p.RateOvertime(c.kind, dec(c.raw))
			if !adj.Equal(dec(c.wantAdj)) || !act.Equal(dec(c.wantActual)) {
				t.Errorf("RateOvertime(%s, %s) = (%s, %s), want (%s, %s)",
					c.kind, c.raw, adj, act, c.wantAdj, c.wantActual)
			}
		})
	}
}

func TestLatenessTiers(t *testing.T) {
	p := AttendancePolicy{Rules: AdjustmentRules{
		Lateness: []LatenessTier{
			{AfterHours: dec("0"), Rate: dec("1")},
			{AfterHours: dec("0.5"), Rate: dec("2")},
			{AfterHours: dec("2"), Rate: dec("2"), FixedPenalty: dec("1")},
		},
	}}

	cases := []struct {
		hours string
		want  string
	}{
		{"0", "0"},
		{"0.25", "0.25"},  // first tier, identity
		{"1", "2"},        // second tier, doubled
		{"3", "7"},        // third tier, 1 + 3*2
	}
	for _, c := range cases {
		if got := p.Lateness(dec(c.hours)); !got.Equal(dec(c.want)) {
			t.Errorf("Lateness(%s) = %s, want %s", c.hours, got, c.want)
		}
	}

	// no tiers: pass-through
	empty := AttendancePolicy{}
	if got := empty.Lateness(dec("0.75")); !got.Equal(dec("0.75")) {
		t.Errorf("Lateness without tiers = %s, want 0.75", got)
	}
}

func TestAbsenceTiers(t *testing.T) {
	p := AttendancePolicy{Rules: AdjustmentRules{
		Absence: []AbsenceTier{
			{FromDay: 1, Rate: dec("1")},
			{FromDay: 3, Rate: dec("2")},
		},
	}}

	cases := []struct {
		hours    string
		dayCount int
		want     string
	}{
		{"8", 1, "8"},
		{"8", 2, "8"},
		{"8", 3, "16"}, // third absence day doubles the penalty
		{"0", 5, "0"},
	}
	for _, c := range cases {
		if got := p.Absence(dec(c.hours), c.dayCount); !got.Equal(dec(c.want)) {
			t.Errorf("Absence(%s, %d) = %s, want %s", c.hours, c.dayCount, got, c.want)
		}
	}
}

func TestDiff(t *testing.T) {
	p := AttendancePolicy{Rules: AdjustmentRules{DiffRate: dec("1.25")}}
	if got := p.Diff(dec("2")); !got.Equal(dec("2.5")) {
		t.Errorf("Diff(2) = %s, want 2.5", got)
	}

	// zero rate means identity
	empty := AttendancePolicy{}
	if got := empty.Diff(dec("2")); !got.Equal(dec("2")) {
		t.Errorf("Diff(2) without rate = %s, want 2", got)
	}
}
