// internal/resolution/cache/cache.go

// Package cache provides TTL-keyed storage for resolved candidate lists. The
// store is TTL-agnostic: each resource kind's TTL is supplied by the caller
// on every Set. Two backends exist, an in-process map for single-instance
// deployments and Redis for shared ones.
package cache

import (
	"context"
	"time"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
)

// Store is the cache contract used by the resolution pipeline.
//
// Returned slices are not cloned; callers must treat them as read-only. This
// is a documented contract, not an enforced one.
type Store interface {
	// Get returns the entry for key, or ok=false when absent or expired.
	Get(ctx context.Context, key string) ([]models.Candidate, bool)
	// Set stores value under key until now+ttl. A zero ttl means no expiry.
	Set(ctx context.Context, key string, value []models.Candidate, ttl time.Duration)
	// Delete removes a single entry.
	Delete(ctx context.Context, key string)
	// Clear removes every entry whose key starts with prefix and returns the
	// number removed. An empty prefix clears everything.
	Clear(ctx context.Context, prefix string) int
	// Stats returns a usage snapshot.
	Stats(ctx context.Context) Stats
}

// Stats is the administrative cache snapshot.
type Stats struct {
	Backend string `json:"backend"`
	Keys    int    `json:"keys"`
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
}
