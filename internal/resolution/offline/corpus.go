// internal/resolution/offline/corpus.go

// Package offline holds the static fallback corpus: bundled JSON files of
// courses and job postings consulted when neither the live provider nor the
// cache can serve a query. The corpus is read-only after load and searching
// it never fails: a missing or invalid file degrades to an empty corpus.
package offline

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/Rafael-N-Moura/ImpulsAI/internal/common/errors"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
)

// courseRecord is the on-disk course shape (the corpus files keep the
// original Portuguese field names).
type courseRecord struct {
	ID         string   `json:"id"`
	Nome       string   `json:"nome"`
	Descricao  string   `json:"descricao"`
	Categoria  string   `json:"categoria"`
	Tags       []string `json:"tags"`
	Plataforma string   `json:"plataforma"`
	URL        string   `json:"url"`
	Preco      string   `json:"preco"`
	Avaliacao  float64  `json:"avaliacao"`
	Alunos     int      `json:"alunos"`
	Duracao    string   `json:"duracao"`
	Nivel      string   `json:"nivel"`
	Instrutor  string   `json:"instrutor"`
	Idioma     string   `json:"idioma"`
}

type jobRecord struct {
	ID          string   `json:"id"`
	Titulo      string   `json:"titulo"`
	Empresa     string   `json:"empresa"`
	Localizacao string   `json:"localizacao"`
	Descricao   string   `json:"descricao"`
	Categoria   string   `json:"categoria"`
	Tags        []string `json:"tags"`
	Remoto      bool     `json:"remoto"`
	Requisitos  []string `json:"requisitos"`
	URL         string   `json:"url"`
}

type courseFile struct {
	Cursos []courseRecord `json:"cursos"`
}

type jobFile struct {
	Vagas []jobRecord `json:"vagas"`
}

// Config holds corpus file paths and the synonym table used for fuzzy term
// matching. Synonyms map a short or alternate spelling to the canonical one
// (js -> javascript).
type Config struct {
	CoursesPath string
	JobsPath    string
	Synonyms    map[string]string
}

// DefaultSynonyms is the seed table for term variants.
var DefaultSynonyms = map[string]string{
	"js":       "javascript",
	"ts":       "typescript",
	"node":     "nodejs",
	"k8s":      "kubernetes",
	"pg":       "postgresql",
	"postgres": "postgresql",
	"golang":   "go",
}

// Corpus is the loaded offline dataset. Read-only after Load, so no locking
// is needed.
type Corpus struct {
	courses  []models.Candidate
	jobs     []models.Candidate
	synonyms map[string]string
	log      logger.Logger
}

// Load reads and validates both corpus files. It never fails: a file that is
// missing or rejected by the schema is logged as a warning and contributes an
// empty slice.
func Load(cfg Config, log logger.Logger) *Corpus {
	c := &Corpus{
		synonyms: cfg.Synonyms,
		log:      log.WithFields(map[string]interface{}{"component": "offline"}),
	}
	if c.synonyms == nil {
		c.synonyms = DefaultSynonyms
	}

	c.courses = loadCourses(cfg.CoursesPath, c.log)
	c.jobs = loadJobs(cfg.JobsPath, c.log)

	c.log.Info("offline corpus loaded", map[string]interface{}{
		"courses": len(c.courses),
		"jobs":    len(c.jobs),
	})
	return c
}

func loadCourses(path string, log logger.Logger) []models.Candidate {
	data, err := readValidated(path, courseSchema)
	if err != nil {
		log.Warn("course corpus unavailable", map[string]interface{}{
			"error": apperrors.NewOfflineUnavailable(path, err).Error(),
		})
		return nil
	}

	var file courseFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Warn("course corpus undecodable", map[string]interface{}{
			"error": apperrors.NewOfflineUnavailable(path, err).Error(),
		})
		return nil
	}

	out := make([]models.Candidate, 0, len(file.Cursos))
	for _, r := range file.Cursos {
		out = append(out, r.normalize())
	}
	return out
}

func loadJobs(path string, log logger.Logger) []models.Candidate {
	data, err := readValidated(path, jobSchema)
	if err != nil {
		log.Warn("job corpus unavailable", map[string]interface{}{
			"error": apperrors.NewOfflineUnavailable(path, err).Error(),
		})
		return nil
	}

	var file jobFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Warn("job corpus undecodable", map[string]interface{}{
			"error": apperrors.NewOfflineUnavailable(path, err).Error(),
		})
		return nil
	}

	out := make([]models.Candidate, 0, len(file.Vagas))
	for _, r := range file.Vagas {
		out = append(out, r.normalize())
	}
	return out
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (r courseRecord) normalize() models.Candidate {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	return models.Candidate{
		ID:          id,
		Title:       r.Nome,
		Description: r.Descricao,
		Category:    r.Categoria,
		Tags:        r.Tags,
		URL:         r.URL,
		Origin:      models.OriginOffline,
		Platform:    r.Plataforma,
		Instructor:  r.Instrutor,
		Rating:      r.Avaliacao,
		Students:    r.Alunos,
		Price:       r.Preco,
		Duration:    r.Duracao,
		Level:       r.Nivel,
		Language:    r.Idioma,
	}
}

func (r jobRecord) normalize() models.Candidate {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}
	return models.Candidate{
		ID:           id,
		Title:        r.Titulo,
		Description:  r.Descricao,
		Category:     r.Categoria,
		Tags:         r.Tags,
		URL:          r.URL,
		Origin:       models.OriginOffline,
		Company:      r.Empresa,
		Location:     r.Localizacao,
		Remote:       r.Remoto,
		Requirements: r.Requisitos,
	}
}

// SearchCourses returns up to limit courses matching any variant of term.
func (c *Corpus) SearchCourses(term string, limit int) []models.Candidate {
	return search(c.courses, c.variants(term), limit)
}

// SearchJobs returns up to limit job postings matching any variant of term.
func (c *Corpus) SearchJobs(term string, limit int) []models.Candidate {
	return search(c.jobs, c.variants(term), limit)
}

// FindCourse looks up a course by ID.
func (c *Corpus) FindCourse(id string) *models.Candidate {
	return findByID(c.courses, id)
}

// FindJob looks up a job posting by ID.
func (c *Corpus) FindJob(id string) *models.Candidate {
	return findByID(c.jobs, id)
}

func findByID(candidates []models.Candidate, id string) *models.Candidate {
	for _, cand := range candidates {
		if cand.ID == id {
			out := cand
			return &out
		}
	}
	return nil
}

func search(candidates []models.Candidate, variants []string, limit int) []models.Candidate {
	if len(variants) == 0 {
		return nil
	}

	var out []models.Candidate
	for _, cand := range candidates {
		if matches(cand, variants) {
			out = append(out, cand)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// matches checks every variant against name, description, category and tags,
// case-insensitively.
func matches(cand models.Candidate, variants []string) bool {
	name := strings.ToLower(cand.Title)
	desc := strings.ToLower(cand.Description)
	category := strings.ToLower(cand.Category)

	for _, v := range variants {
		if strings.Contains(name, v) || strings.Contains(desc, v) || strings.Contains(category, v) {
			return true
		}
		for _, tag := range cand.Tags {
			if strings.Contains(strings.ToLower(tag), v) {
				return true
			}
		}
	}
	return false
}

// variants expands a search term into the lexical forms matched against the
// corpus: the lowercased term itself, a punctuation-stripped form, a
// singularized form, and any synonym-table substitution. Best-effort fuzzy
// matching, not an exact contract.
func (c *Corpus) variants(term string) []string {
	base := strings.ToLower(strings.TrimSpace(term))
	if base == "" {
		return nil
	}

	seen := map[string]bool{}
	var out []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	add(base)
	add(stripPunctuation(base))
	if strings.HasSuffix(base, "s") && len(base) > 3 {
		add(strings.TrimSuffix(base, "s"))
	}
	for _, word := range strings.Fields(base) {
		if canonical, ok := c.synonyms[word]; ok {
			add(canonical)
		}
	}
	if canonical, ok := c.synonyms[stripPunctuation(base)]; ok {
		add(canonical)
	}
	return out
}

func stripPunctuation(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '.' || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
