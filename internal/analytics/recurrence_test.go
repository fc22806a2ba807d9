package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/mvallesteros/rumbo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name     string
		interval model.Interval
		amount   float64
		want     float64
	}{
		{name: "daily", interval: model.IntervalDaily, amount: 10, want: 300},
		{name: "weekly projects to roughly 4.33 months", interval: model.IntervalWeekly, amount: 1000, want: 4330},
		{name: "biweekly", interval: model.IntervalBiweekly, amount: 100, want: 217},
		{name: "monthly is identity", interval: model.IntervalMonthly, amount: 123.45, want: 123.45},
		{name: "quarterly", interval: model.IntervalQuarterly, amount: 300, want: 99},
		{name: "semiannual", interval: model.IntervalSemiannual, amount: 1000, want: 167},
		{name: "annual", interval: model.IntervalAnnual, amount: 1000, want: 83},
		{name: "zero amount", interval: model.IntervalWeekly, amount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthlyEquivalent(tt.amount, tt.interval)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestMonthlyEquivalentIsLinear(t *testing.T) {
	for _, interval := range []model.Interval{
		model.IntervalDaily, model.IntervalWeekly, model.IntervalBiweekly,
		model.IntervalMonthly, model.IntervalQuarterly, model.IntervalSemiannual,
		model.IntervalAnnual,
	} {
		a, err := MonthlyEquivalent(137.5, interval)
		require.NoError(t, err)
		b, err := MonthlyEquivalent(862.5, interval)
		require.NoError(t, err)
		sum, err := MonthlyEquivalent(137.5+862.5, interval)
		require.NoError(t, err)
		assert.InDelta(t, a+b, sum, 1e-9, "interval %s", interval)
	}
}

func TestMonthlyEquivalentUnknownInterval(t *testing.T) {
	_, err := MonthlyEquivalent(100, model.Interval("lunar"))
	require.Error(t, err)

	var unknownErr *UnknownIntervalError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, model.Interval("lunar"), unknownErr.Interval)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntil(now, now))
	assert.Equal(t, 1, DaysUntil(now.AddDate(0, 0, 1), now))
	assert.Equal(t, -1, DaysUntil(now.AddDate(0, 0, -1), now))

	// Calendar-day granularity: late tonight is still today, early
	// tomorrow is still tomorrow.
	lateTonight := time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC)
	earlyTomorrow := time.Date(2025, 3, 16, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysUntil(lateTonight, now))
	assert.Equal(t, 1, DaysUntil(earlyTomorrow, now))
}

func TestBucketBoundaries(t *testing.T) {
	tests := []struct {
		want      Urgency
		name      string
		daysUntil int
		threshold int
	}{
		{name: "one day overdue", daysUntil: -1, threshold: DueSoonDays, want: UrgencyOverdue},
		{name: "due today", daysUntil: 0, threshold: DueSoonDays, want: UrgencyDueSoon},
		{name: "exactly at weekly threshold", daysUntil: 7, threshold: DueSoonDays, want: UrgencyDueSoon},
		{name: "one past weekly threshold", daysUntil: 8, threshold: DueSoonDays, want: UrgencyNormal},
		{name: "exactly at travel threshold", daysUntil: 30, threshold: DueSoonTravelDays, want: UrgencyDueSoon},
		{name: "one past travel threshold", daysUntil: 31, threshold: DueSoonTravelDays, want: UrgencyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bucket(tt.daysUntil, tt.threshold))
		})
	}
}

func TestChecklistDueDateClassification(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	overdue := Bucket(DaysUntil(now.AddDate(0, 0, -1), now), DueSoonTravelDays)
	assert.Equal(t, UrgencyOverdue, overdue)

	dueSoon := Bucket(DaysUntil(now.AddDate(0, 0, 5), now), DueSoonTravelDays)
	assert.Equal(t, UrgencyDueSoon, dueSoon)

	normal := Bucket(DaysUntil(now.AddDate(0, 0, 40), now), DueSoonTravelDays)
	assert.Equal(t, UrgencyNormal, normal)
}
