// internal/resolution/pipeline/pipeline.go

// Package pipeline composes the rate limiter, external client, result cache
// and offline corpus into the three-tier resolution flow: external provider
// (gated by the limiter, write-through to the cache) -> cache -> offline
// corpus. Exactly one tier's output is returned per call; an empty tier
// result falls through to the next tier, and resolution itself never fails.
package pipeline

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/Rafael-N-Moura/ImpulsAI/internal/common/errors"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/metrics"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/cache"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/offline"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/provider"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/ratelimit"
)

// TTLConfig holds the per-kind cache lifetimes.
type TTLConfig struct {
	Jobs          time.Duration
	JobDetails    time.Duration
	Courses       time.Duration
	CourseDetails time.Duration
	Health        time.Duration
}

// Client is the subset of the provider client the pipeline depends on.
// Satisfied by *provider.Client; tests substitute their own.
type Client interface {
	SearchCourses(ctx context.Context, q models.Query) ([]models.Candidate, error)
	SearchJobs(ctx context.Context, q models.Query) ([]models.Candidate, error)
	GetCourse(ctx context.Context, id string) (*models.Candidate, error)
	GetJob(ctx context.Context, id string) (*models.Candidate, error)
	Health(ctx context.Context) (*provider.HealthStatus, error)
}

// Resolver runs the three-tier lookup. All dependencies are injected; the
// resolver owns no lifecycle.
type Resolver struct {
	limiter *ratelimit.Limiter
	client  Client
	store   cache.Store
	corpus  *offline.Corpus
	ttls    TTLConfig
	log     logger.Logger

	healthMu sync.Mutex
	health   *provider.HealthStatus
	healthAt time.Time
}

func New(limiter *ratelimit.Limiter, client Client, store cache.Store, corpus *offline.Corpus, ttls TTLConfig, log logger.Logger) *Resolver {
	return &Resolver{
		limiter: limiter,
		client:  client,
		store:   store,
		corpus:  corpus,
		ttls:    ttls,
		log:     log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
}

// ResolveCourses resolves a course search query through the tiers. The
// returned slice may be empty but the call never fails.
func (r *Resolver) ResolveCourses(ctx context.Context, q models.Query) []models.Candidate {
	q.Kind = models.KindCourseSearch
	return r.resolve(ctx, q, r.ttls.Courses,
		func(ctx context.Context) ([]models.Candidate, error) {
			return r.client.SearchCourses(ctx, q)
		},
		func() []models.Candidate {
			return r.corpus.SearchCourses(q.Term, q.Limit)
		},
	)
}

// ResolveJobs resolves a job search query through the tiers.
func (r *Resolver) ResolveJobs(ctx context.Context, q models.Query) []models.Candidate {
	q.Kind = models.KindJobSearch
	return r.resolve(ctx, q, r.ttls.Jobs,
		func(ctx context.Context) ([]models.Candidate, error) {
			return r.client.SearchJobs(ctx, q)
		},
		func() []models.Candidate {
			return r.corpus.SearchJobs(q.Term, q.Limit)
		},
	)
}

// resolve is the shared tier walk. external and fallback close over the
// query so the walk itself stays kind-agnostic.
func (r *Resolver) resolve(
	ctx context.Context,
	q models.Query,
	ttl time.Duration,
	external func(ctx context.Context) ([]models.Candidate, error),
	fallback func() []models.Candidate,
) []models.Candidate {
	key := q.CacheKey()
	kind := string(q.Kind)

	// Tier 1: external provider, gated by the admission check.
	if r.limiter.TryAdmit(kind) {
		found, err := external(ctx)
		r.limiter.Record(kind)
		if err != nil {
			r.logProviderFailure(q, err)
		} else if len(found) > 0 {
			found = capAt(found, q.Limit)
			tagged := models.Retag(found, models.OriginExternal)
			r.store.Set(ctx, key, tagged, ttl)
			metrics.ResolutionTier.WithLabelValues(kind, "external").Inc()
			return tagged
		}
	} else {
		r.log.Debug("external tier skipped", map[string]interface{}{
			"kind": kind, "term": q.Term, "reason": "rate_limited",
		})
	}

	// Tier 2: cache.
	if cached, ok := r.store.Get(ctx, key); ok && len(cached) > 0 {
		metrics.ResolutionTier.WithLabelValues(kind, "cache").Inc()
		return models.Retag(cached, models.OriginCache)
	}
	r.log.Debug("cache tier missed", map[string]interface{}{
		"kind":  kind,
		"error": apperrors.NewCacheMiss(key).Error(),
	})

	// Tier 3: offline corpus. May legitimately be empty.
	found := capAt(fallback(), q.Limit)
	if len(found) > 0 {
		metrics.ResolutionTier.WithLabelValues(kind, "offline").Inc()
	} else {
		metrics.ResolutionTier.WithLabelValues(kind, "empty").Inc()
	}
	return found
}

// ResolveCourseDetail fetches a single course by ID through the same tiers.
// Returns nil when no tier can serve it.
func (r *Resolver) ResolveCourseDetail(ctx context.Context, id string) *models.Candidate {
	return r.resolveDetail(ctx, models.KindCourseDetail, id, r.ttls.CourseDetails,
		r.client.GetCourse, r.corpus.FindCourse)
}

// ResolveJobDetail fetches a single job posting by ID through the same tiers.
func (r *Resolver) ResolveJobDetail(ctx context.Context, id string) *models.Candidate {
	return r.resolveDetail(ctx, models.KindJobDetail, id, r.ttls.JobDetails,
		r.client.GetJob, r.corpus.FindJob)
}

func (r *Resolver) resolveDetail(
	ctx context.Context,
	kind models.ResourceKind,
	id string,
	ttl time.Duration,
	external func(ctx context.Context, id string) (*models.Candidate, error),
	fallback func(id string) *models.Candidate,
) *models.Candidate {
	key := models.DetailKey(kind, id)

	if r.limiter.TryAdmit(string(kind)) {
		found, err := external(ctx, id)
		r.limiter.Record(string(kind))
		if err != nil {
			r.logProviderFailure(models.Query{Kind: kind, Term: id}, err)
		} else if found != nil {
			found.Origin = models.OriginExternal
			r.store.Set(ctx, key, []models.Candidate{*found}, ttl)
			metrics.ResolutionTier.WithLabelValues(string(kind), "external").Inc()
			return found
		}
	}

	if cached, ok := r.store.Get(ctx, key); ok && len(cached) > 0 {
		metrics.ResolutionTier.WithLabelValues(string(kind), "cache").Inc()
		out := cached[0]
		out.Origin = models.OriginCache
		return &out
	}
	r.log.Debug("cache tier missed", map[string]interface{}{
		"kind":  string(kind),
		"error": apperrors.NewCacheMiss(key).Error(),
	})

	if found := fallback(id); found != nil {
		metrics.ResolutionTier.WithLabelValues(string(kind), "offline").Inc()
		return found
	}
	metrics.ResolutionTier.WithLabelValues(string(kind), "empty").Inc()
	return nil
}

// Health checks provider availability, caching the result for the health
// TTL. Unlike searches there is no offline fallback; the error is returned.
func (r *Resolver) Health(ctx context.Context) (*provider.HealthStatus, error) {
	r.healthMu.Lock()
	defer r.healthMu.Unlock()

	if r.health != nil && time.Since(r.healthAt) < r.ttls.Health {
		return r.health, nil
	}

	if !r.limiter.TryAdmit(string(models.KindHealth)) {
		return nil, apperrors.NewRateLimited(string(models.KindHealth))
	}
	status, err := r.client.Health(ctx)
	r.limiter.Record(string(models.KindHealth))
	if err != nil {
		return nil, err
	}

	r.health = status
	r.healthAt = time.Now()
	return status, nil
}

// ClearCache removes cached entries for one resource kind, or everything
// when kind is empty. Administrative surface.
func (r *Resolver) ClearCache(ctx context.Context, kind models.ResourceKind) int {
	prefix := ""
	if kind != "" {
		prefix = string(kind) + ":"
	}
	removed := r.store.Clear(ctx, prefix)
	r.log.Info("cache cleared", map[string]interface{}{"kind": string(kind), "removed": removed})
	return removed
}

// ResetRateLimit zeroes the admission counters. Administrative surface.
func (r *Resolver) ResetRateLimit() {
	r.limiter.Reset()
}

// logProviderFailure logs per the propagation policy: terminal failures as
// warnings, transient ones (already retried inside the client) as debug.
func (r *Resolver) logProviderFailure(q models.Query, err error) {
	fields := map[string]interface{}{
		"kind":  string(q.Kind),
		"term":  q.Term,
		"error": err.Error(),
	}
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeProviderRejected, apperrors.ErrCodeMalformedResponse:
		r.log.Warn("provider failure, falling through", fields)
	default:
		r.log.Debug("provider unavailable, falling through", fields)
	}
}

func capAt(candidates []models.Candidate, limit int) []models.Candidate {
	if limit > 0 && len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}
