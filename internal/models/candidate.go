// internal/models/candidate.go
package models

// Origin tags the tier that produced a candidate. It is set exactly once by
// the producing tier and never overwritten downstream.
type Origin string

const (
	OriginExternal Origin = "external"
	OriginCache    Origin = "cache"
	OriginOffline  Origin = "offline"
)

// Candidate is the canonical shape of a learning resource or job posting,
// regardless of the tier it came from. Provider and offline records are
// normalized into this shape at the tier boundary, before anything else sees
// them.
type Candidate struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	URL         string   `json:"url,omitempty"`
	Origin      Origin   `json:"origin"`

	// Course fields.
	Platform   string  `json:"platform,omitempty"`
	Instructor string  `json:"instructor,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	Students   int     `json:"students,omitempty"`
	Price      string  `json:"price,omitempty"`
	Duration   string  `json:"duration,omitempty"`
	Level      string  `json:"level,omitempty"`
	Language   string  `json:"language,omitempty"`
	ImageURL   string  `json:"image_url,omitempty"`

	// Job fields.
	Company      string   `json:"company,omitempty"`
	Location     string   `json:"location,omitempty"`
	Remote       bool     `json:"remote,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
	PostedDate   string   `json:"posted_date,omitempty"`
	Applicants   int      `json:"applicants,omitempty"`
}

// ScoredCandidate is a Candidate plus the relevance score it received and the
// skill/importance pair it was scored against. Created once by the scorer and
// immutable afterward.
type ScoredCandidate struct {
	Candidate
	RelevanceScore int        `json:"relevance_score"`
	Skill          string     `json:"skill"`
	Importance     Importance `json:"importance"`
}

// Retag returns a copy of candidates with the given origin. The originals are
// left untouched so cached slices are never mutated in place.
func Retag(candidates []Candidate, origin Origin) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		c.Origin = origin
		out[i] = c
	}
	return out
}
