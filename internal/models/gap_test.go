// internal/models/gap_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportance(t *testing.T) {
	tests := []struct {
		raw      string
		expected Importance
	}{
		{"high", ImportanceHigh},
		{"Alta", ImportanceHigh},
		{"ALTA", ImportanceHigh},
		{"medium", ImportanceMedium},
		{"Média", ImportanceMedium},
		{"media", ImportanceMedium},
		{"low", ImportanceLow},
		{"Baixa", ImportanceLow},
		{"  alta  ", ImportanceHigh},
		{"critical", Importance("critical")},
		{"", Importance("")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseImportance(tt.raw))
		})
	}
}

func TestImportanceDerivedValues(t *testing.T) {
	tests := []struct {
		importance Importance
		limit      int
		bonus      int
		base       int
	}{
		{ImportanceHigh, 8, 20, 100},
		{ImportanceMedium, 5, 10, 70},
		{ImportanceLow, 3, 5, 40},
		{Importance("unknown"), 5, 10, 50},
		{Importance(""), 5, 10, 50},
	}

	for _, tt := range tests {
		t.Run(string(tt.importance), func(t *testing.T) {
			assert.Equal(t, tt.limit, tt.importance.ResultLimit())
			assert.Equal(t, tt.bonus, tt.importance.ScoreBonus())
			assert.Equal(t, tt.base, tt.importance.PriorityBase())
		})
	}
}

func TestSkillGapUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected SkillGap
	}{
		{
			name:     "canonical fields",
			payload:  `{"skill": "React", "importance": "high"}`,
			expected: SkillGap{Skill: "React", Importance: ImportanceHigh},
		},
		{
			name:     "portuguese fields",
			payload:  `{"competencia": "Docker", "importancia": "Alta"}`,
			expected: SkillGap{Skill: "Docker", Importance: ImportanceHigh},
		},
		{
			name:     "mixed fields prefer canonical",
			payload:  `{"skill": "Go", "competencia": "Golang", "importance": "low"}`,
			expected: SkillGap{Skill: "Go", Importance: ImportanceLow},
		},
		{
			name:     "portuguese importance normalized",
			payload:  `{"skill": "SQL", "importancia": "Baixa"}`,
			expected: SkillGap{Skill: "SQL", Importance: ImportanceLow},
		},
		{
			name:     "missing importance stays empty",
			payload:  `{"skill": "Kubernetes"}`,
			expected: SkillGap{Skill: "Kubernetes", Importance: Importance("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gap SkillGap
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &gap))
			assert.Equal(t, tt.expected, gap)
		})
	}
}

func TestSkillGapUnmarshalJSONInvalid(t *testing.T) {
	var gap SkillGap
	assert.Error(t, json.Unmarshal([]byte(`"not an object"`), &gap))
}

func TestRetag(t *testing.T) {
	original := []Candidate{
		{ID: "1", Title: "A", Origin: OriginExternal},
		{ID: "2", Title: "B", Origin: OriginExternal},
	}

	tagged := Retag(original, OriginCache)

	require.Len(t, tagged, 2)
	for _, c := range tagged {
		assert.Equal(t, OriginCache, c.Origin)
	}
	// Originals must not be mutated.
	for _, c := range original {
		assert.Equal(t, OriginExternal, c.Origin)
	}
}
