// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolution_provider_requests_total",
			Help: "Total external provider requests by resource kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	ProviderRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolution_provider_retries_total",
			Help: "Total retry attempts against the external provider",
		},
		[]string{"kind"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolution_rate_limit_rejections_total",
			Help: "Admissions rejected by the rate limiter, by exhausted window",
		},
		[]string{"window"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolution_cache_hits_total",
			Help: "Cache lookups that returned a valid entry",
		},
		[]string{"backend"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolution_cache_misses_total",
			Help: "Cache lookups that found no valid entry",
		},
		[]string{"backend"},
	)

	ResolutionTier = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolution_tier_total",
			Help: "Resolutions served per tier (external, cache, offline, empty)",
		},
		[]string{"kind", "tier"},
	)

	EnrichmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "roadmap_enrichment_duration_seconds",
			Help: "Duration of whole-roadmap enrichment in seconds",
		},
	)

	EnrichedGaps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_enriched_gaps_total",
			Help: "Total skill gaps enriched",
		},
	)
)
