// Package analytics implements the client-side derived-metrics engine
// shared by every listing screen: recurrence projection, summary
// aggregation, filtering/sorting, and category grouping. All functions
// are pure and never mutate their inputs.
package analytics

import (
	"fmt"
	"time"

	"github.com/mvallesteros/rumbo/internal/model"
)

// Due-soon thresholds in days. Recurring transactions flag a week out;
// travel documents and checklist items flag a month out. The two values
// are intentionally distinct.
const (
	DueSoonDays       = 7
	DueSoonTravelDays = 30
)

// monthlyMultipliers is the single source of truth for normalizing a
// recurring amount to a monthly rate. Every screen must project with
// this table; never recompute with different rounding.
var monthlyMultipliers = map[model.Interval]float64{
	model.IntervalDaily:      30,
	model.IntervalWeekly:     4.33,
	model.IntervalBiweekly:   2.17,
	model.IntervalMonthly:    1,
	model.IntervalQuarterly:  0.33,
	model.IntervalSemiannual: 0.167,
	model.IntervalAnnual:     0.083,
}

// UnknownIntervalError indicates a recurrence interval outside the fixed
// set. This is a programmer or wire-contract error; callers must not
// swallow it, or aggregate projections go silently wrong.
type UnknownIntervalError struct {
	Interval model.Interval
}

func (e *UnknownIntervalError) Error() string {
	return fmt.Sprintf("unknown recurrence interval %q", e.Interval)
}

// MonthlyEquivalent normalizes an amount recurring at the given interval
// to a monthly rate.
func MonthlyEquivalent(amount float64, interval model.Interval) (float64, error) {
	m, ok := monthlyMultipliers[interval]
	if !ok {
		return 0, &UnknownIntervalError{Interval: interval}
	}
	return amount * m, nil
}

// DaysUntil returns the signed whole-day distance from now to target at
// calendar-day granularity. The same date yields 0, tomorrow 1,
// yesterday -1, regardless of the time-of-day components.
func DaysUntil(target, now time.Time) int {
	t := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(n) / (24 * time.Hour))
}

// Urgency classifies a dated item by how close its reference date is.
type Urgency string

const (
	// UrgencyOverdue means the reference date has passed.
	UrgencyOverdue Urgency = "vencido"
	// UrgencyDueSoon means the date falls within the screen's threshold.
	UrgencyDueSoon Urgency = "por-vencer"
	// UrgencyNormal means the date is comfortably in the future.
	UrgencyNormal Urgency = "normal"
)

// Bucket maps a days-until value to an urgency bucket. The threshold is
// a parameter because screens disagree: 7 for recurring transactions,
// 30 for travel documents and checklist items.
func Bucket(daysUntil, dueSoonThresholdDays int) Urgency {
	switch {
	case daysUntil < 0:
		return UrgencyOverdue
	case daysUntil <= dueSoonThresholdDays:
		return UrgencyDueSoon
	default:
		return UrgencyNormal
	}
}
