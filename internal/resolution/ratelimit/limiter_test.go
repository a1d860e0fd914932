// internal/resolution/ratelimit/limiter_test.go
package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
)

func newTestLimiter(t *testing.T, cfg Config) (*Limiter, *time.Time) {
	t.Helper()
	current := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	l := New(cfg, logger.NewNoOpLogger())
	l.now = func() time.Time { return current }
	return l, &current
}

func TestTryAdmitWithinBudget(t *testing.T) {
	l, _ := newTestLimiter(t, Config{PerMinute: 3, PerDay: 10})

	for i := 0; i < 3; i++ {
		require.True(t, l.TryAdmit("courses"), "call %d should be admitted", i)
		l.Record("courses")
	}
	assert.False(t, l.TryAdmit("courses"), "fourth call in the same minute must be rejected")
}

func TestTryAdmitDoesNotConsume(t *testing.T) {
	l, _ := newTestLimiter(t, Config{PerMinute: 1, PerDay: 10})

	// Admission checks without Record must not consume budget.
	for i := 0; i < 5; i++ {
		assert.True(t, l.TryAdmit("jobs"))
	}
	l.Record("jobs")
	assert.False(t, l.TryAdmit("jobs"))
}

func TestMinuteWindowRollsOver(t *testing.T) {
	l, current := newTestLimiter(t, Config{PerMinute: 2, PerDay: 100})

	l.Record("courses")
	l.Record("courses")
	require.False(t, l.TryAdmit("courses"))

	*current = current.Add(time.Minute)
	assert.True(t, l.TryAdmit("courses"), "budget must reset when the minute bucket advances")

	stats := l.Stats()
	assert.Equal(t, 0, stats.Minute.Current)
	assert.Equal(t, 2, stats.Daily.Current, "day window keeps counting across minutes")
}

func TestDailyWindowRollsOver(t *testing.T) {
	l, current := newTestLimiter(t, Config{PerMinute: 100, PerDay: 2})

	l.Record("jobs")
	l.Record("jobs")
	require.False(t, l.TryAdmit("jobs"))

	*current = current.AddDate(0, 0, 1)
	assert.True(t, l.TryAdmit("jobs"))
	assert.Equal(t, 0, l.Stats().Daily.Current)
}

func TestBudgetSharedAcrossCategories(t *testing.T) {
	l, _ := newTestLimiter(t, Config{PerMinute: 2, PerDay: 100})

	l.Record("courses")
	l.Record("jobs")
	assert.False(t, l.TryAdmit("health"), "the budget is process-wide, not per category")
}

func TestStats(t *testing.T) {
	l, _ := newTestLimiter(t, Config{PerMinute: 10, PerDay: 200})

	l.Record("courses")
	l.Record("courses")
	l.Record("courses")

	stats := l.Stats()
	assert.Equal(t, 3, stats.Minute.Current)
	assert.Equal(t, 10, stats.Minute.Limit)
	assert.Equal(t, 7, stats.Minute.Remaining)
	assert.Equal(t, 3, stats.Daily.Current)
	assert.Equal(t, 200, stats.Daily.Limit)
	assert.Equal(t, 197, stats.Daily.Remaining)

	// 10:30:00 -> next minute at 10:31:00, next day at midnight UTC.
	assert.Equal(t, time.Minute, stats.UntilNextMinute)
	assert.Equal(t, 13*time.Hour+30*time.Minute, stats.UntilNextDay)
}

func TestStatsRemainingNeverNegative(t *testing.T) {
	l, _ := newTestLimiter(t, Config{PerMinute: 1, PerDay: 1})

	// Record is unconditional; over-recording must not drive Remaining below zero.
	l.Record("courses")
	l.Record("courses")

	stats := l.Stats()
	assert.Equal(t, 0, stats.Minute.Remaining)
	assert.Equal(t, 0, stats.Daily.Remaining)
}

func TestReset(t *testing.T) {
	l, _ := newTestLimiter(t, Config{PerMinute: 1, PerDay: 1})

	l.Record("courses")
	require.False(t, l.TryAdmit("courses"))

	l.Reset()
	assert.True(t, l.TryAdmit("courses"))
	assert.Equal(t, 0, l.Stats().Minute.Current)
}

func TestZeroBudgetRejectsEverything(t *testing.T) {
	l, _ := newTestLimiter(t, Config{PerMinute: 0, PerDay: 0})
	assert.False(t, l.TryAdmit("courses"))
}
