package policy

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DayType selects which overtime threshold/rate pair applies.
type DayType string

const (
	DayTypeWorkday       DayType = "workday"
	DayTypeWeekend       DayType = "weekend"
	DayTypePublicHoliday DayType = "public_holiday"
)

// AttendancePolicy is the rate/threshold table governing how raw
// reconciled hours become billable figures. It is loaded once per sheet
// computation and read-only from then on.
type AttendancePolicy struct {
	ID        string
	CompanyID string
	Name      string

	// Overtime thresholds (hours) and rate multipliers per day type.
	WdAfter decimal.Decimal
	WdRate  decimal.Decimal
	WeAfter decimal.Decimal
	WeRate  decimal.Decimal
	PhAfter decimal.Decimal
	PhRate  decimal.Decimal

	// Adjustment rule curves, stored as JSONB.
	Rules AdjustmentRules

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdjustmentRules holds the tiered curves for lateness and absence
// penalties plus the diff-time multiplier.
type AdjustmentRules struct {
	// Lateness tiers, matched by the largest AfterHours <= late hours.
	Lateness []LatenessTier `json:"lateness,omitempty"`
	// Absence tiers, matched by the largest FromDay <= absence day count.
	Absence []AbsenceTier `json:"absence,omitempty"`
	// DiffRate multiplies non-absence gap hours. Zero means 1.
	DiffRate decimal.Decimal `json:"diff_rate,omitempty"`
}

type LatenessTier struct {
	AfterHours   decimal.Decimal `json:"after_hours"`
	Rate         decimal.Decimal `json:"rate"`
	FixedPenalty decimal.Decimal `json:"fixed_penalty,omitempty"`
}

type AbsenceTier struct {
	FromDay int             `json:"from_day"`
	Rate    decimal.Decimal `json:"rate"`
}

// Value implements driver.Valuer for database storage
func (r AdjustmentRules) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for database retrieval
func (r *AdjustmentRules) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan AdjustmentRules: invalid type")
	}

	return json.Unmarshal(bytes, r)
}

// OvertimeFor returns the threshold/rate pair for a day type.
func (p AttendancePolicy) OvertimeFor(kind DayType) (after, rate decimal.Decimal) {
	switch kind {
	case DayTypeWeekend:
		return p.WeAfter, p.WeRate
	case DayTypePublicHoliday:
		return p.PhAfter, p.PhRate
	default:
		return p.WdAfter, p.WdRate
	}
}

// RateOvertime applies the day type's threshold and rate to raw overtime
// hours. Below or at the threshold both figures are zero; above it the
// actual figure is the hours beyond the threshold and the adjusted figure
// is that actual scaled by the rate.
func (p AttendancePolicy) RateOvertime(kind DayType, rawHours decimal.Decimal) (adjusted, actual decimal.Decimal) {
	after, rate := p.OvertimeFor(kind)
	if rawHours.LessThanOrEqual(after) {
		return decimal.Zero, decimal.Zero
	}
	actual = rawHours.Sub(after)
	return actual.Mul(rate), actual
}

// Lateness adjusts raw late-in hours through the lateness tiers. Without
// tiers the hours pass through unchanged.
func (p AttendancePolicy) Lateness(hours decimal.Decimal) decimal.Decimal {
	if hours.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	var matched *LatenessTier
	for i := range p.Rules.Lateness {
		tier := &p.Rules.Lateness[i]
		if hours.LessThan(tier.AfterHours) {
			continue
		}
		if matched == nil || tier.AfterHours.GreaterThan(matched.AfterHours) {
			matched = tier
		}
	}
	if matched == nil {
		return hours
	}
	return matched.FixedPenalty.Add(hours.Mul(matched.Rate))
}

// Absence adjusts raw absence hours. dayCount is the running number of
// absence days within the sheet, so repeated absences can be penalised on
// a steeper curve. Without tiers the hours pass through unchanged.
func (p AttendancePolicy) Absence(hours decimal.Decimal, dayCount int) decimal.Decimal {
	if hours.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	var matched *AbsenceTier
	for i := range p.Rules.Absence {
		tier := &p.Rules.Absence[i]
		if dayCount < tier.FromDay {
			continue
		}
		if matched == nil || tier.FromDay > matched.FromDay {
			matched = tier
		}
	}
	if matched == nil {
		return hours
	}
	return hours.Mul(matched.Rate)
}

// Diff adjusts raw diff-time hours by the configured multiplier.
func (p AttendancePolicy) Diff(hours decimal.Decimal) decimal.Decimal {
	if hours.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if p.Rules.DiffRate.IsZero() {
		return hours
	}
	return hours.Mul(p.Rules.DiffRate)
}
