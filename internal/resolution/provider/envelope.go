// internal/resolution/provider/envelope.go
package provider

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
)

// The provider uses a different envelope per resource kind: courses arrive
// under "courses", jobs under "data". Both are normalized here, once, into
// the canonical Candidate shape; nothing downstream sees provider field
// names.

type courseEnvelope struct {
	Success bool             `json:"success"`
	Courses []providerCourse `json:"courses"`
	Total   int              `json:"total"`
}

type courseDetailEnvelope struct {
	Success bool           `json:"success"`
	Course  providerCourse `json:"course"`
}

type jobEnvelope struct {
	Success bool          `json:"success"`
	Data    []providerJob `json:"data"`
	Count   int           `json:"count"`
}

type jobDetailEnvelope struct {
	Success bool        `json:"success"`
	Job     providerJob `json:"data"`
}

type providerCourse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Instructor    string   `json:"instructor"`
	Rating        float64  `json:"rating"`
	StudentsCount int      `json:"students_count"`
	Price         string   `json:"price"`
	OriginalPrice string   `json:"original_price"`
	Language      string   `json:"language"`
	Duration      string   `json:"duration"`
	Level         string   `json:"level"`
	URL           string   `json:"url"`
	ImageURL      string   `json:"image_url"`
	Description   string   `json:"description"`
	Source        string   `json:"source"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
}

type providerJob struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	PostedDate  string `json:"posted_date"`
	URL         string `json:"url"`
	Applicants  int    `json:"applicants"`
	Source      string `json:"source"`
}

func (e courseEnvelope) normalize() []models.Candidate {
	out := make([]models.Candidate, 0, len(e.Courses))
	for _, c := range e.Courses {
		out = append(out, c.normalize())
	}
	return out
}

func (e jobEnvelope) normalize() []models.Candidate {
	out := make([]models.Candidate, 0, len(e.Data))
	for _, j := range e.Data {
		out = append(out, j.normalize())
	}
	return out
}

func (c providerCourse) normalize() models.Candidate {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}
	return models.Candidate{
		ID:          id,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Tags:        c.Tags,
		URL:         c.URL,
		Origin:      models.OriginExternal,
		Platform:    c.Source,
		Instructor:  c.Instructor,
		Rating:      c.Rating,
		Students:    c.StudentsCount,
		Price:       c.Price,
		Duration:    c.Duration,
		Level:       c.Level,
		Language:    c.Language,
		ImageURL:    c.ImageURL,
	}
}

func (j providerJob) normalize() models.Candidate {
	id := j.ID
	if id == "" {
		id = uuid.NewString()
	}
	return models.Candidate{
		ID:           id,
		Title:        j.Title,
		Description:  j.Description,
		URL:          j.URL,
		Origin:       models.OriginExternal,
		Platform:     j.Source,
		Company:      j.Company,
		Location:     j.Location,
		Remote:       detectRemoteWork(j.Description),
		Requirements: extractRequirements(j.Description),
		PostedDate:   j.PostedDate,
		Applicants:   j.Applicants,
	}
}

var remoteKeywords = []string{
	"remote", "remoto", "home office", "home-office", "trabalho remoto",
	"full remote", "100% remote", "remote first", "distributed team",
}

// detectRemoteWork guesses whether a posting is remote from its description.
func detectRemoteWork(description string) bool {
	if description == "" {
		return false
	}
	lower := strings.ToLower(description)
	for _, kw := range remoteKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var techKeywords = []string{
	"javascript", "python", "java", "react", "node.js", "angular",
	"vue.js", "php", "c#", ".net", "sql", "mongodb", "aws",
	"docker", "kubernetes", "git", "agile", "scrum",
}

// extractRequirements pulls known technology keywords out of a job
// description. Best effort only.
func extractRequirements(description string) []string {
	if description == "" {
		return nil
	}
	lower := strings.ToLower(description)
	var found []string
	for _, kw := range techKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}
