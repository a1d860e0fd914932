// internal/resolution/pipeline/stats.go
package pipeline

import (
	"context"
	"time"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/cache"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/ratelimit"
)

// UsageStats is the administrative snapshot across the resolution layer.
type UsageStats struct {
	RateLimit ratelimit.Stats `json:"rate_limit"`
	Cache     cache.Stats     `json:"cache"`
	Timestamp time.Time       `json:"timestamp"`
}

// UsageStats aggregates limiter and cache statistics for the administrative
// surface. No side effects.
func (r *Resolver) UsageStats(ctx context.Context) UsageStats {
	return UsageStats{
		RateLimit: r.limiter.Stats(),
		Cache:     r.store.Stats(ctx),
		Timestamp: time.Now().UTC(),
	}
}
