// internal/resolution/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/metrics"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
)

// RedisStore is a Store backed by Redis, for deployments where multiple
// instances should share one result cache. Values are stored as JSON; expiry
// is delegated to Redis TTLs so lazy eviction is native.
type RedisStore struct {
	client *redis.Client
	log    logger.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// RedisOptions holds connection settings for the cache backend.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

func NewRedis(opts RedisOptions, log logger.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Address,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	return &RedisStore{
		client: client,
		log:    log.WithFields(map[string]interface{}{"component": "cache", "backend": "redis"}),
	}
}

// NewRedisWithClient wraps an existing client, used by tests with miniredis.
func NewRedisWithClient(client *redis.Client, log logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		log:    log.WithFields(map[string]interface{}{"component": "cache", "backend": "redis"}),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]models.Candidate, bool) {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("redis get failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		s.misses.Add(1)
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return nil, false
	}

	var value []models.Candidate
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.log.Warn("redis entry undecodable, dropping", map[string]interface{}{"key": key, "error": err.Error()})
		s.client.Del(ctx, key)
		s.misses.Add(1)
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return nil, false
	}
	s.hits.Add(1)
	metrics.CacheHits.WithLabelValues("redis").Inc()
	return value, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []models.Candidate, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("redis set skipped, value not serializable", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.log.Warn("redis set failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.log.Warn("redis delete failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *RedisStore) Clear(ctx context.Context, prefix string) int {
	pattern := prefix + "*"
	if prefix == "" {
		pattern = "*"
	}

	removed := 0
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err == nil {
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		s.log.Warn("redis scan failed during clear", map[string]interface{}{"prefix": prefix, "error": err.Error()})
	}
	return removed
}

func (s *RedisStore) Stats(ctx context.Context) Stats {
	keys := 0
	if n, err := s.client.DBSize(ctx).Result(); err == nil {
		keys = int(n)
	}
	return Stats{
		Backend: "redis",
		Keys:    keys,
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
	}
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
