// cmd/roadmap-enricher/main.go

// roadmap-enricher wires the resolution layer together and enriches a list
// of skill gaps read from a JSON file:
//
//	roadmap-enricher gaps.json "Desenvolvedor Backend"
//
// The enriched roadmap is written to stdout as JSON, together with current
// job postings for the target role when one is given. Prometheus metrics are
// served on app.metrics_port for the duration of the run.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/config"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/cache"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/enricher"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/offline"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/pipeline"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/provider"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/ratelimit"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: roadmap-enricher <gaps.json> [target role]")
		os.Exit(2)
	}
	gapsPath := os.Args[1]
	targetRole := ""
	if len(os.Args) > 2 {
		targetRole = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Error("cache backend unavailable", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer closeStore()

	limiter := ratelimit.New(ratelimit.Config{
		PerMinute: cfg.RateLimit.PerMinute,
		PerDay:    cfg.RateLimit.PerDay,
	}, log)

	client := provider.New(provider.Config{
		BaseURL:       cfg.Provider.BaseURL,
		APIKey:        cfg.Provider.APIKey,
		Timeout:       cfg.Provider.TimeoutDuration(),
		RetryAttempts: cfg.Provider.RetryAttempts,
		RetryDelay:    cfg.Provider.RetryDelayDuration(),
	}, log)

	corpus := offline.Load(offline.Config{
		CoursesPath: cfg.Offline.CoursesPath,
		JobsPath:    cfg.Offline.JobsPath,
		Synonyms:    cfg.Offline.Synonyms,
	}, log)

	resolver := pipeline.New(limiter, client, store, corpus, pipeline.TTLConfig{
		Jobs:          cfg.Cache.JobsTTLDuration(),
		JobDetails:    cfg.Cache.JobDetailsTTLDuration(),
		Courses:       cfg.Cache.CoursesTTLDuration(),
		CourseDetails: cfg.Cache.CourseDetailsTTLDuration(),
		Health:        cfg.Cache.HealthTTLDuration(),
	}, log)

	enr := enricher.New(resolver, enricher.Config{Concurrency: cfg.Enricher.Concurrency}, log)

	go serveMetrics(cfg.App.MetricsPort, log)

	gaps, err := readGaps(gapsPath)
	if err != nil {
		log.Error("failed to read gaps file", map[string]interface{}{"path": gapsPath, "error": err.Error()})
		os.Exit(1)
	}

	out := output{Roadmap: enr.Enrich(ctx, gaps, targetRole)}
	if targetRole != "" {
		out.Jobs = resolver.ResolveJobs(ctx, models.Query{
			Term:  enricher.MapRole(targetRole),
			Limit: 5,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error("failed to encode result", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

type output struct {
	Roadmap *models.EnrichmentResult `json:"roadmap"`
	Jobs    []models.Candidate       `json:"jobs,omitempty"`
}

func buildStore(ctx context.Context, cfg *config.Config, log logger.Logger) (cache.Store, func(), error) {
	if cfg.Cache.Backend == "redis" {
		store := cache.NewRedis(cache.RedisOptions{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err := store.Ping(ctx); err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}

	store := cache.NewMemory(cfg.Cache.CheckPeriodDuration())
	return store, store.Close, nil
}

func readGaps(path string) ([]models.SkillGap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var gaps []models.SkillGap
	if err := json.Unmarshal(data, &gaps); err != nil {
		return nil, err
	}
	return gaps, nil
}

func serveMetrics(port int, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warn("metrics server stopped", map[string]interface{}{"error": err.Error()})
	}
}
