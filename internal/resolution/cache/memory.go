// internal/resolution/cache/memory.go
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/metrics"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
)

type entry struct {
	value    []models.Candidate
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) expired(now time.Time) bool {
	return e.ttl > 0 && !now.Before(e.storedAt.Add(e.ttl))
}

// MemoryStore is an in-process Store. Expired entries are evicted lazily on
// Get; an optional janitor sweeps the map periodically for memory hygiene.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	hits    int64
	misses  int64

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// NewMemory creates a MemoryStore. When checkPeriod is positive a background
// sweep removes expired entries at that interval; Close stops it.
func NewMemory(checkPeriod time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if checkPeriod > 0 {
		go s.janitor(checkPeriod)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]models.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.expired(s.now()) {
		if ok {
			delete(s.entries, key)
		}
		s.misses++
		metrics.CacheMisses.WithLabelValues("memory").Inc()
		return nil, false
	}
	s.hits++
	metrics.CacheHits.WithLabelValues("memory").Inc()
	return e.value, true
}

func (s *MemoryStore) Set(_ context.Context, key string, value []models.Candidate, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, storedAt: s.now(), ttl: ttl}
}

func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *MemoryStore) Clear(_ context.Context, prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k := range s.entries {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Stats(_ context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Backend: "memory",
		Keys:    len(s.entries),
		Hits:    s.hits,
		Misses:  s.misses,
	}
}

// Close stops the janitor goroutine, if any.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
		}
	}
}
