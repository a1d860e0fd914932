// internal/resolution/enricher/enricher_test.go
package enricher

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
)

// fakeResolver returns candidates keyed by the query term.
type fakeResolver struct {
	mu     sync.Mutex
	byTerm map[string][]models.Candidate
}

func (f *fakeResolver) ResolveCourses(_ context.Context, q models.Query) []models.Candidate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byTerm[q.Term]
}

func newTestEnricher(t *testing.T, resolver Resolver, concurrency int) *Enricher {
	t.Helper()
	return New(resolver, Config{Concurrency: concurrency}, logger.NewNoOpLogger())
}

func TestPriority(t *testing.T) {
	tests := []struct {
		name       string
		importance models.Importance
		count      int
		expected   int
	}{
		{"high with candidates clamps at 100", models.ImportanceHigh, 4, 100},
		{"high with none stays at base", models.ImportanceHigh, 0, 100},
		{"medium with three candidates", models.ImportanceMedium, 3, 85},
		{"medium bonus capped at 30", models.ImportanceMedium, 10, 100},
		{"low with none", models.ImportanceLow, 0, 40},
		{"low with two candidates", models.ImportanceLow, 2, 50},
		{"unknown importance uses neutral base", models.Importance("weird"), 1, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Priority(tt.importance, tt.count))
		})
	}
}

func TestEnrichRanksCandidates(t *testing.T) {
	resolver := &fakeResolver{byTerm: map[string][]models.Candidate{
		"react": {
			{ID: "weak", Title: "Generic Web"},
			{ID: "strong", Title: "React Completo", Tags: []string{"react"}, Rating: 4.8},
		},
	}}
	enr := newTestEnricher(t, resolver, 2)

	result := enr.Enrich(context.Background(), []models.SkillGap{
		{Skill: "react", Importance: models.ImportanceHigh},
	}, "")

	require.Len(t, result.Gaps, 1)
	gap := result.Gaps[0]
	require.Len(t, gap.Candidates, 2)
	assert.Equal(t, "strong", gap.Candidates[0].ID, "candidates are sorted by relevance")
	assert.Greater(t, gap.Candidates[0].RelevanceScore, gap.Candidates[1].RelevanceScore)
	assert.Equal(t, 100, gap.Priority)
	assert.Equal(t, 2, gap.Total)
}

func TestEnrichEmptyGapKeepsBasePriority(t *testing.T) {
	resolver := &fakeResolver{byTerm: map[string][]models.Candidate{}}
	enr := newTestEnricher(t, resolver, 1)

	result := enr.Enrich(context.Background(), []models.SkillGap{
		{Skill: "cobol", Importance: models.ImportanceLow},
	}, "")

	require.Len(t, result.Gaps, 1)
	gap := result.Gaps[0]
	assert.Empty(t, gap.Candidates)
	assert.Equal(t, 40, gap.Priority, "a gap with no candidates keeps its base priority")
	assert.Equal(t, 0, gap.Total)
}

func TestEnrichPreservesInputOrder(t *testing.T) {
	byTerm := map[string][]models.Candidate{}
	var gaps []models.SkillGap
	skills := []string{"react", "python", "docker", "sql", "kubernetes", "terraform", "vue", "redis"}
	for _, s := range skills {
		byTerm[s] = []models.Candidate{{ID: "c-" + s, Title: s}}
		gaps = append(gaps, models.SkillGap{Skill: s, Importance: models.ImportanceMedium})
	}
	enr := newTestEnricher(t, &fakeResolver{byTerm: byTerm}, 4)

	result := enr.Enrich(context.Background(), gaps, "")

	require.Len(t, result.Gaps, len(skills))
	for i, s := range skills {
		assert.Equal(t, s, result.Gaps[i].Skill, "output order must match input order")
	}
}

func TestEnrichMetadataSource(t *testing.T) {
	t.Run("external when a top candidate came from the provider", func(t *testing.T) {
		resolver := &fakeResolver{byTerm: map[string][]models.Candidate{
			"react": {{ID: "1", Title: "React", Origin: models.OriginExternal}},
		}}
		enr := newTestEnricher(t, resolver, 1)

		result := enr.Enrich(context.Background(), []models.SkillGap{
			{Skill: "react", Importance: models.ImportanceMedium},
		}, "")

		assert.Equal(t, models.RoadmapSourceExternal, result.Metadata.Source)
	})

	t.Run("fallback when everything came from cache or corpus", func(t *testing.T) {
		resolver := &fakeResolver{byTerm: map[string][]models.Candidate{
			"react": {{ID: "1", Title: "React", Origin: models.OriginOffline}},
		}}
		enr := newTestEnricher(t, resolver, 1)

		result := enr.Enrich(context.Background(), []models.SkillGap{
			{Skill: "react", Importance: models.ImportanceMedium},
		}, "")

		assert.Equal(t, models.RoadmapSourceFallback, result.Metadata.Source)
	})
}

func TestEnrichMetadataTotals(t *testing.T) {
	resolver := &fakeResolver{byTerm: map[string][]models.Candidate{
		"react":  {{ID: "1", Title: "React"}, {ID: "2", Title: "React 2"}},
		"python": {{ID: "3", Title: "Python"}},
	}}
	enr := newTestEnricher(t, resolver, 2)

	result := enr.Enrich(context.Background(), []models.SkillGap{
		{Skill: "react", Importance: models.ImportanceMedium},
		{Skill: "python", Importance: models.ImportanceMedium},
	}, "")

	assert.Equal(t, 2, result.Metadata.TotalGaps)
	assert.Equal(t, 3, result.Metadata.TotalCandidates)
	assert.False(t, result.Metadata.GeneratedAt.IsZero())
}

func TestEnrichNoGaps(t *testing.T) {
	enr := newTestEnricher(t, &fakeResolver{}, 3)

	result := enr.Enrich(context.Background(), nil, "Desenvolvedor Backend")

	assert.Empty(t, result.Gaps)
	assert.Equal(t, 0, result.Metadata.TotalGaps)
	assert.Equal(t, models.RoadmapSourceFallback, result.Metadata.Source)
}

func TestEnrichQueryUsesImportanceLimit(t *testing.T) {
	var gotLimit int
	resolver := resolverFunc(func(_ context.Context, q models.Query) []models.Candidate {
		gotLimit = q.Limit
		return nil
	})
	enr := newTestEnricher(t, resolver, 1)

	enr.Enrich(context.Background(), []models.SkillGap{
		{Skill: "react", Importance: models.ImportanceHigh},
	}, "")
	assert.Equal(t, 8, gotLimit)
}

type resolverFunc func(ctx context.Context, q models.Query) []models.Candidate

func (f resolverFunc) ResolveCourses(ctx context.Context, q models.Query) []models.Candidate {
	return f(ctx, q)
}

func TestMapRole(t *testing.T) {
	tests := []struct {
		role     string
		expected string
	}{
		{"Desenvolvedor Frontend", "software developer"},
		{"Programador Java", "software developer"},
		{"Analista de Sistemas", "business analyst"},
		{"Gerente de Projetos", "project manager"},
		{"Engenheiro de Software", "software engineer"},
		{"DBA Sênior", "database administrator"},
		{"Product Owner", "Product Owner"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapRole(tt.role))
		})
	}
}

func TestMapRoleOrderIsDeterministic(t *testing.T) {
	// "desenvolvedor" appears before "devops" in the mapping, so a title
	// containing both always resolves the same way.
	for i := 0; i < 20; i++ {
		assert.Equal(t, "software developer", MapRole("Desenvolvedor DevOps"))
	}
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name       string
		skill      string
		targetRole string
		expected   string
	}{
		{"no role keeps skill", "react", "", "react"},
		{"frontend role adds suffix", "css", "Frontend Developer", "css frontend"},
		{"portuguese frontend title keeps its family", "css", "Desenvolvedor Frontend", "css frontend"},
		{"frontend skill not doubled", "frontend frameworks", "Frontend Developer", "frontend frameworks"},
		{"backend role adds suffix", "sql", "Backend Developer", "sql backend"},
		{"portuguese backend title keeps its family", "sql", "Desenvolvedor Backend", "sql backend"},
		{"api skill not suffixed for backend", "api design", "Backend Developer", "api design"},
		{"fullstack always suffixed", "react", "Fullstack Developer", "react fullstack"},
		{"portuguese fullstack title keeps its family", "react", "Desenvolvedor Fullstack", "react fullstack"},
		{"data role adds suffix", "pandas", "Data Scientist", "pandas data science"},
		{"data skill not doubled", "data modeling", "Data Scientist", "data modeling"},
		{"data family needs the keyword in the title", "pandas", "Cientista de Dados", "pandas"},
		{"unrelated role keeps skill", "excel", "Gerente de Projetos", "excel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSearchQuery(tt.skill, tt.targetRole)
			assert.Equal(t, tt.expected, got)
			assert.True(t, strings.HasPrefix(got, tt.skill))
		})
	}
}
