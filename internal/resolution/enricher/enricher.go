// internal/resolution/enricher/enricher.go

// Package enricher maps each skill gap from the gap analysis onto a ranked
// list of learning resources. Gaps are resolved independently through the
// resolution pipeline by a bounded worker pool; results are reassembled in
// input order, so the output is deterministic for a given cache and corpus
// state.
package enricher

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/metrics"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/resolution/scoring"
)

// Resolver is the slice of the pipeline the enricher needs.
type Resolver interface {
	ResolveCourses(ctx context.Context, q models.Query) []models.Candidate
}

// Config holds enrichment settings. Concurrency bounds the worker pool so a
// burst of gaps cannot spend the whole per-minute budget in one instant.
type Config struct {
	Concurrency int
}

// Enricher orchestrates pipeline resolution and scoring across a roadmap's
// skill gaps.
type Enricher struct {
	resolver Resolver
	cfg      Config
	log      logger.Logger
}

func New(resolver Resolver, cfg Config, log logger.Logger) *Enricher {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Enricher{
		resolver: resolver,
		cfg:      cfg,
		log:      log.WithFields(map[string]interface{}{"component": "enricher"}),
	}
}

// Enrich resolves and ranks resources for every gap. Output order matches
// input order regardless of resolution completion order, and a gap that
// resolves to nothing still yields an EnrichedGap with its base priority.
func (e *Enricher) Enrich(ctx context.Context, gaps []models.SkillGap, targetRole string) *models.EnrichmentResult {
	started := time.Now()
	e.log.Info("enriching roadmap", map[string]interface{}{
		"gaps":       len(gaps),
		"targetRole": targetRole,
	})

	enriched := make([]models.EnrichedGap, len(gaps))

	type task struct {
		index int
		gap   models.SkillGap
	}
	tasks := make(chan task)

	var wg sync.WaitGroup
	for w := 0; w < e.cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				enriched[t.index] = e.enrichGap(ctx, t.gap, targetRole)
			}
		}()
	}
	for i, gap := range gaps {
		tasks <- task{index: i, gap: gap}
	}
	close(tasks)
	wg.Wait()

	totalCandidates := 0
	source := models.RoadmapSourceFallback
	for _, g := range enriched {
		totalCandidates += g.Total
		if len(g.Candidates) > 0 && g.Candidates[0].Origin == models.OriginExternal {
			source = models.RoadmapSourceExternal
		}
	}

	metrics.EnrichmentDuration.Observe(time.Since(started).Seconds())
	e.log.Info("roadmap enriched", map[string]interface{}{
		"gaps":       len(gaps),
		"candidates": totalCandidates,
		"source":     string(source),
		"elapsed":    time.Since(started).String(),
	})

	return &models.EnrichmentResult{
		Gaps: enriched,
		Metadata: models.EnrichmentMetadata{
			TotalGaps:       len(gaps),
			TotalCandidates: totalCandidates,
			Source:          source,
			GeneratedAt:     time.Now().UTC(),
		},
	}
}

// enrichGap resolves, scores and ranks resources for a single gap.
func (e *Enricher) enrichGap(ctx context.Context, gap models.SkillGap, targetRole string) models.EnrichedGap {
	metrics.EnrichedGaps.Inc()

	q := models.Query{
		Kind:  models.KindCourseSearch,
		Term:  BuildSearchQuery(gap.Skill, targetRole),
		Limit: gap.Importance.ResultLimit(),
	}

	found := e.resolver.ResolveCourses(ctx, q)
	scored := scoring.ScoreAll(found, gap.Skill, gap.Importance)

	// Stable sort keeps provider order on ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	return models.EnrichedGap{
		SkillGap:   gap,
		Candidates: scored,
		Priority:   Priority(gap.Importance, len(scored)),
		Total:      len(scored),
	}
}

// Priority scores a gap from its importance and candidate availability:
// min(100, base + min(5*count, 30)).
func Priority(importance models.Importance, candidateCount int) int {
	bonus := candidateCount * 5
	if bonus > 30 {
		bonus = 30
	}
	score := importance.PriorityBase() + bonus
	if score > 100 {
		return 100
	}
	return score
}

// roleMapping translates Portuguese role titles to English job-search terms.
// Ordered so that matching is deterministic when a title contains more than
// one keyword.
var roleMapping = []struct{ pt, en string }{
	{"desenvolvedor", "software developer"},
	{"programador", "software developer"},
	{"analista", "business analyst"},
	{"gerente", "project manager"},
	{"designer", "ui designer"},
	{"engenheiro", "software engineer"},
	{"arquiteto", "software architect"},
	{"testador", "qa tester"},
	{"devops", "devops engineer"},
	{"dba", "database administrator"},
}

// MapRole maps a role title to the term used for job searches against the
// provider, falling back to the original title when no mapping applies.
func MapRole(role string) string {
	lower := strings.ToLower(role)
	for _, m := range roleMapping {
		if strings.Contains(lower, m.pt) {
			return m.en
		}
	}
	return role
}

// BuildSearchQuery appends a role-family context suffix to the skill term
// when the target role carries a known family keyword and the term does not
// already carry it. The raw title is matched, not its MapRole translation:
// "Desenvolvedor Frontend" keeps its frontend family even though the mapped
// role is "software developer".
func BuildSearchQuery(skill, targetRole string) string {
	if targetRole == "" {
		return skill
	}

	role := strings.ToLower(targetRole)
	skillLower := strings.ToLower(skill)

	switch {
	case strings.Contains(role, "frontend") || strings.Contains(role, "ui") || strings.Contains(role, "ux"):
		if !strings.Contains(skillLower, "frontend") && !strings.Contains(skillLower, "ui") {
			return skill + " frontend"
		}
	case strings.Contains(role, "backend") || strings.Contains(role, "api"):
		if !strings.Contains(skillLower, "backend") && !strings.Contains(skillLower, "api") {
			return skill + " backend"
		}
	case strings.Contains(role, "fullstack") || strings.Contains(role, "full stack"):
		return skill + " fullstack"
	case strings.Contains(role, "data") || strings.Contains(role, "analytics"):
		if !strings.Contains(skillLower, "data") {
			return skill + " data science"
		}
	}
	return skill
}
