package interval

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Interval is a half-open UTC time range [Start, End). Zero or negative
// length intervals are invalid and ignored by every operation here.
type Interval struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

func (iv Interval) Duration() time.Duration {
	if !iv.Valid() {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether a and b share at least one instant. The test is
// strict, so intervals that merely touch do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	start := iv.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := iv.End
	if other.End.Before(end) {
		end = other.End
	}
	return start.Before(end)
}

// SplitAt cuts the interval at t. The second return is valid only when t
// falls strictly inside the interval.
func (iv Interval) SplitAt(t time.Time) (Interval, Interval) {
	if !t.After(iv.Start) || !t.Before(iv.End) {
		return iv, Interval{}
	}
	return Interval{Start: iv.Start, End: t}, Interval{Start: t, End: iv.End}
}

// Merge sorts the intervals by start and folds adjacent or overlapping ones
// into their union. The result is sorted and pairwise disjoint. Merge is
// idempotent: Merge(Merge(x)) == Merge(x).
func Merge(intervals []Interval) []Interval {
	valid := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Valid() {
			valid = append(valid, iv)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].Start.Before(valid[j].Start)
	})

	merged := []Interval{valid[0]}
	for _, next := range valid[1:] {
		last := &merged[len(merged)-1]
		if next.Start.After(last.End) {
			merged = append(merged, next)
			continue
		}
		if next.End.After(last.End) {
			last.End = next.End
		}
	}
	return merged
}

// Subtract removes the blackout intervals from base and returns the
// surviving fragments in order. A blackout covering all of base yields an
// empty result; blackouts outside base are no-ops.
func Subtract(base Interval, blackouts []Interval) []Interval {
	if !base.Valid() {
		return nil
	}

	var out []Interval
	cursor := base.Start
	for _, b := range Merge(blackouts) {
		if !b.End.After(cursor) {
			continue
		}
		if !b.Start.Before(base.End) {
			break
		}
		if b.Start.After(cursor) {
			out = append(out, Interval{Start: cursor, End: b.Start})
		}
		cursor = b.End
		if !cursor.Before(base.End) {
			return out
		}
	}
	if cursor.Before(base.End) {
		out = append(out, Interval{Start: cursor, End: base.End})
	}
	return out
}

// TotalDuration sums the lengths of the intervals.
func TotalDuration(intervals []Interval) time.Duration {
	var total time.Duration
	for _, iv := range intervals {
		total += iv.Duration()
	}
	return total
}

// Hours converts a duration to fractional hours as a decimal. Durations are
// kept as time.Duration through the whole computation and only become
// decimal hours at the record boundary, so a month of lines does not
// accumulate float drift.
func Hours(d time.Duration) decimal.Decimal {
	if d <= 0 {
		return decimal.Zero
	}
	return decimal.New(int64(d/time.Second), 0).Div(decimal.New(3600, 0))
}
