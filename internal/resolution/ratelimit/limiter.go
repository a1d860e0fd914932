// internal/resolution/ratelimit/limiter.go

// Package ratelimit implements a fixed-window admission gate for outbound
// provider calls. Two budgets apply to every category: requests per minute
// and requests per day. The limiter holds exactly one bucket per window;
// rollover happens lazily on access, so memory stays O(1) and no background
// timer is needed.
package ratelimit

import (
	"sync"
	"time"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/metrics"
)

// Config holds the shared request budgets.
type Config struct {
	PerMinute int
	PerDay    int
}

type window struct {
	bucket string
	count  int
}

// roll resets the counter once when the bucket key changes.
func (w *window) roll(bucket string) {
	if w.bucket != bucket {
		w.bucket = bucket
		w.count = 0
	}
}

// Limiter is a concurrency-safe admission gate. The budget is process-wide
// and shared across categories; the category only labels logs and metrics.
type Limiter struct {
	mu     sync.Mutex
	cfg    Config
	minute window
	day    window
	log    logger.Logger

	now func() time.Time
}

func New(cfg Config, log logger.Logger) *Limiter {
	return &Limiter{
		cfg: cfg,
		log: log.WithFields(map[string]interface{}{"component": "ratelimit"}),
		now: time.Now,
	}
}

func minuteBucket(t time.Time) string { return t.UTC().Format("2006-01-02T15:04") }
func dayBucket(t time.Time) string    { return t.UTC().Format("2006-01-02") }

// TryAdmit reports whether a call in the given category may proceed. It
// performs no mutation: callers must invoke Record after actually making the
// admitted call. A false return is a routing signal, not an error.
func (l *Limiter) TryAdmit(category string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.minute.roll(minuteBucket(now))
	l.day.roll(dayBucket(now))

	if l.minute.count >= l.cfg.PerMinute {
		metrics.RateLimitRejections.WithLabelValues("minute").Inc()
		l.log.Debug("per-minute budget exhausted", map[string]interface{}{
			"category": category,
			"current":  l.minute.count,
			"limit":    l.cfg.PerMinute,
		})
		return false
	}
	if l.day.count >= l.cfg.PerDay {
		metrics.RateLimitRejections.WithLabelValues("day").Inc()
		l.log.Debug("daily budget exhausted", map[string]interface{}{
			"category": category,
			"current":  l.day.count,
			"limit":    l.cfg.PerDay,
		})
		return false
	}
	return true
}

// Record counts one admitted-and-attempted call against both windows.
func (l *Limiter) Record(category string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.minute.roll(minuteBucket(now))
	l.day.roll(dayBucket(now))
	l.minute.count++
	l.day.count++

	l.log.Debug("request recorded", map[string]interface{}{
		"category": category,
		"minute":   l.minute.count,
		"day":      l.day.count,
	})
}

// WindowStats describes one budget window.
type WindowStats struct {
	Current   int `json:"current"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

// Stats is the administrative usage snapshot.
type Stats struct {
	Minute          WindowStats   `json:"minute"`
	Daily           WindowStats   `json:"daily"`
	UntilNextMinute time.Duration `json:"until_next_minute"`
	UntilNextDay    time.Duration `json:"until_next_day"`
}

// Stats returns current usage for both windows, including time until each
// bucket rolls over.
func (l *Limiter) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.minute.roll(minuteBucket(now))
	l.day.roll(dayBucket(now))

	utc := now.UTC()
	nextMinute := utc.Truncate(time.Minute).Add(time.Minute)
	nextDay := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	return Stats{
		Minute: WindowStats{
			Current:   l.minute.count,
			Limit:     l.cfg.PerMinute,
			Remaining: max(0, l.cfg.PerMinute-l.minute.count),
		},
		Daily: WindowStats{
			Current:   l.day.count,
			Limit:     l.cfg.PerDay,
			Remaining: max(0, l.cfg.PerDay-l.day.count),
		},
		UntilNextMinute: nextMinute.Sub(utc),
		UntilNextDay:    nextDay.Sub(utc),
	}
}

// Reset zeroes both windows. Administrative use only.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minute = window{}
	l.day = window{}
	l.log.Info("rate limit counters reset", nil)
}
