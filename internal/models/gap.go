// internal/models/gap.go
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Importance is the tier assigned to a skill gap by the upstream gap
// analyzer.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// ParseImportance normalizes an importance label. Both English tiers and the
// Portuguese labels emitted by the gap analyzer are accepted; anything else
// is returned as-is and treated with medium-like defaults by consumers.
func ParseImportance(raw string) Importance {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high", "alta":
		return ImportanceHigh
	case "medium", "média", "media":
		return ImportanceMedium
	case "low", "baixa":
		return ImportanceLow
	default:
		return Importance(raw)
	}
}

// ResultLimit returns how many candidates to request for a gap of this
// importance.
func (i Importance) ResultLimit() int {
	switch i {
	case ImportanceHigh:
		return 8
	case ImportanceMedium:
		return 5
	case ImportanceLow:
		return 3
	default:
		return 5
	}
}

// ScoreBonus returns the additive relevance bonus for this importance.
func (i Importance) ScoreBonus() int {
	switch i {
	case ImportanceHigh:
		return 20
	case ImportanceMedium:
		return 10
	case ImportanceLow:
		return 5
	default:
		return 10
	}
}

// PriorityBase returns the base priority score for this importance.
func (i Importance) PriorityBase() int {
	switch i {
	case ImportanceHigh:
		return 100
	case ImportanceMedium:
		return 70
	case ImportanceLow:
		return 40
	default:
		return 50
	}
}

// SkillGap is a competency the user lacks relative to the target role.
// Read-only input to the resolution layer.
type SkillGap struct {
	Skill      string     `json:"skill"`
	Importance Importance `json:"importance"`
}

// skillGapJSON accepts both the canonical field names and the gap analyzer's
// Portuguese ones, collapsing the aliasing into this single boundary.
type skillGapJSON struct {
	Skill       string `json:"skill"`
	Competencia string `json:"competencia"`
	Importance  string `json:"importance"`
	Importancia string `json:"importancia"`
}

func (g *SkillGap) UnmarshalJSON(data []byte) error {
	var raw skillGapJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.Skill = raw.Skill
	if g.Skill == "" {
		g.Skill = raw.Competencia
	}
	imp := raw.Importance
	if imp == "" {
		imp = raw.Importancia
	}
	g.Importance = ParseImportance(imp)
	return nil
}

// EnrichedGap is a SkillGap augmented with its ranked candidate list and a
// priority score. Created once per input gap, never mutated afterward.
type EnrichedGap struct {
	SkillGap
	Candidates []ScoredCandidate `json:"candidates"`
	Priority   int               `json:"priority"`
	Total      int               `json:"total"`
}

// RoadmapSource records whole-roadmap provenance: "external" when at least
// one gap's top candidate came from the live provider, "fallback" otherwise.
type RoadmapSource string

const (
	RoadmapSourceExternal RoadmapSource = "external"
	RoadmapSourceFallback RoadmapSource = "fallback"
)

// EnrichmentResult is the aggregate returned to the roadmap orchestrator.
type EnrichmentResult struct {
	Gaps     []EnrichedGap      `json:"gaps"`
	Metadata EnrichmentMetadata `json:"metadata"`
}

type EnrichmentMetadata struct {
	TotalGaps       int           `json:"total_gaps"`
	TotalCandidates int           `json:"total_candidates"`
	Source          RoadmapSource `json:"source"`
	GeneratedAt     time.Time     `json:"generated_at"`
}
