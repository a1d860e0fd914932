// internal/resolution/scoring/scoring.go

// Package scoring assigns each candidate a 0-100 relevance score for a given
// skill gap. The function is pure and total: missing or empty fields simply
// contribute no points, and the result is always clamped to [0, 100].
package scoring

import (
	"strings"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
)

// Additive weights. Fixed by contract; tuning them changes ranking behavior
// everywhere at once.
const (
	nameWeight        = 50
	descriptionWeight = 30
	tagWeight         = 20
	categoryWeight    = 15

	ratingHighBonus = 15 // rating >= 4.5
	ratingGoodBonus = 10 // rating >= 4.0

	popularityHighBonus = 10 // students >= 100k
	popularityGoodBonus = 5  // students >= 50k

	maxScore     = 100
	defaultScore = 50
)

// Score computes the relevance of candidate for skill at the given
// importance. An empty skill yields the neutral default score.
func Score(candidate models.Candidate, skill string, importance models.Importance) int {
	if strings.TrimSpace(skill) == "" {
		return defaultScore
	}

	skillLower := strings.ToLower(skill)
	score := 0

	if containsFold(candidate.Title, skillLower) {
		score += nameWeight
	}
	if containsFold(candidate.Description, skillLower) {
		score += descriptionWeight
	}
	if anyTagContains(candidate.Tags, skillLower) {
		score += tagWeight
	}
	if containsFold(candidate.Category, skillLower) {
		score += categoryWeight
	}

	score += importance.ScoreBonus()

	switch {
	case candidate.Rating >= 4.5:
		score += ratingHighBonus
	case candidate.Rating >= 4.0:
		score += ratingGoodBonus
	}

	switch {
	case candidate.Students >= 100_000:
		score += popularityHighBonus
	case candidate.Students >= 50_000:
		score += popularityGoodBonus
	}

	if score > maxScore {
		return maxScore
	}
	return score
}

// ScoreAll scores every candidate against the same skill/importance pair.
func ScoreAll(candidates []models.Candidate, skill string, importance models.Importance) []models.ScoredCandidate {
	out := make([]models.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, models.ScoredCandidate{
			Candidate:      c,
			RelevanceScore: Score(c, skill, importance),
			Skill:          skill,
			Importance:     importance,
		})
	}
	return out
}

func containsFold(haystack, needleLower string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), needleLower)
}

func anyTagContains(tags []string, needleLower string) bool {
	for _, tag := range tags {
		if containsFold(tag, needleLower) {
			return true
		}
	}
	return false
}
