// internal/resolution/offline/corpus_test.go
package offline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafael-N-Moura/ImpulsAI/internal/common/logger"
	"github.com/Rafael-N-Moura/ImpulsAI/internal/models"
)

const testCourses = `{
  "cursos": [
    {
      "id": "curso-js",
      "nome": "JavaScript Completo",
      "descricao": "JavaScript moderno do zero",
      "categoria": "Desenvolvimento Web",
      "tags": ["javascript", "frontend"],
      "plataforma": "Udemy",
      "url": "https://example.com/js",
      "avaliacao": 4.7,
      "alunos": 152000,
      "nivel": "Iniciante"
    },
    {
      "id": "curso-node",
      "nome": "Node.js e Express",
      "descricao": "APIs REST com Node.js",
      "categoria": "Backend",
      "tags": ["nodejs", "backend"]
    },
    {
      "id": "curso-k8s",
      "nome": "Containers em Produção",
      "descricao": "Orquestração com Kubernetes",
      "categoria": "DevOps",
      "tags": ["kubernetes", "docker"]
    },
    {
      "id": "curso-docker",
      "nome": "Docker para Iniciantes",
      "descricao": "Empacote aplicações com Docker",
      "categoria": "DevOps",
      "tags": ["docker"]
    }
  ]
}`

const testJobs = `{
  "vagas": [
    {
      "id": "vaga-js",
      "titulo": "Desenvolvedor JavaScript",
      "empresa": "Acme",
      "localizacao": "Remoto",
      "descricao": "Frontend com JavaScript",
      "categoria": "Desenvolvimento Web",
      "tags": ["javascript"],
      "remoto": true,
      "requisitos": ["javascript", "git"]
    },
    {
      "id": "vaga-py",
      "titulo": "Cientista de Dados",
      "empresa": "DataCo",
      "descricao": "Análise de dados com Python"
    }
  ]
}`

func writeCorpusFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCorpus(t *testing.T) *Corpus {
	t.Helper()
	return Load(Config{
		CoursesPath: writeCorpusFile(t, "cursos.json", testCourses),
		JobsPath:    writeCorpusFile(t, "vagas.json", testJobs),
	}, logger.NewNoOpLogger())
}

func TestLoadNormalizesRecords(t *testing.T) {
	c := newTestCorpus(t)

	found := c.SearchCourses("javascript", 10)
	require.Len(t, found, 1)
	course := found[0]
	assert.Equal(t, "curso-js", course.ID)
	assert.Equal(t, "JavaScript Completo", course.Title)
	assert.Equal(t, models.OriginOffline, course.Origin)
	assert.Equal(t, "Udemy", course.Platform)
	assert.Equal(t, 4.7, course.Rating)
	assert.Equal(t, 152000, course.Students)

	jobs := c.SearchJobs("javascript", 10)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.True(t, jobs[0].Remote)
	assert.Equal(t, models.OriginOffline, jobs[0].Origin)
}

func TestSearchSynonyms(t *testing.T) {
	c := newTestCorpus(t)

	tests := []struct {
		term       string
		expectedID string
	}{
		{"js", "curso-js"},
		{"node", "curso-node"},
		{"k8s", "curso-k8s"},
		{"Node.js", "curso-node"},
		{"KUBERNETES", "curso-k8s"},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			found := c.SearchCourses(tt.term, 10)
			require.NotEmpty(t, found, "term %q should match", tt.term)
			assert.Equal(t, tt.expectedID, found[0].ID)
		})
	}
}

func TestSearchSingularVariant(t *testing.T) {
	c := newTestCorpus(t)

	// "containers" singularizes to "container", matching the k8s course title.
	found := c.SearchCourses("containers", 10)
	require.Len(t, found, 1)
	assert.Equal(t, "curso-k8s", found[0].ID)
}

func TestSearchLimit(t *testing.T) {
	c := newTestCorpus(t)

	// Two records carry the docker tag.
	found := c.SearchCourses("docker", 10)
	require.Len(t, found, 2)

	capped := c.SearchCourses("docker", 1)
	assert.Len(t, capped, 1)
}

func TestSearchNoMatch(t *testing.T) {
	c := newTestCorpus(t)
	assert.Empty(t, c.SearchCourses("cobol", 10))
	assert.Empty(t, c.SearchCourses("", 10))
	assert.Empty(t, c.SearchCourses("   ", 10))
}

func TestFindByID(t *testing.T) {
	c := newTestCorpus(t)

	course := c.FindCourse("curso-node")
	require.NotNil(t, course)
	assert.Equal(t, "Node.js e Express", course.Title)

	job := c.FindJob("vaga-py")
	require.NotNil(t, job)
	assert.Equal(t, "DataCo", job.Company)

	assert.Nil(t, c.FindCourse("missing"))
	assert.Nil(t, c.FindJob("missing"))
}

func TestLoadMissingFilesDegradesToEmpty(t *testing.T) {
	c := Load(Config{
		CoursesPath: "does/not/exist.json",
		JobsPath:    "also/missing.json",
	}, logger.NewNoOpLogger())

	assert.Empty(t, c.SearchCourses("javascript", 10))
	assert.Empty(t, c.SearchJobs("javascript", 10))
}

func TestLoadRejectsInvalidSchema(t *testing.T) {
	// "cursos" entries missing required fields must be rejected as a whole.
	bad := `{"cursos": [{"id": "x"}]}`
	c := Load(Config{
		CoursesPath: writeCorpusFile(t, "bad.json", bad),
		JobsPath:    writeCorpusFile(t, "vagas.json", testJobs),
	}, logger.NewNoOpLogger())

	assert.Empty(t, c.SearchCourses("x", 10))
	assert.NotEmpty(t, c.SearchJobs("python", 10), "a bad course file must not poison the job corpus")
}

func TestLoadRejectsUndecodableFile(t *testing.T) {
	c := Load(Config{
		CoursesPath: writeCorpusFile(t, "garbage.json", "not json"),
		JobsPath:    writeCorpusFile(t, "vagas.json", testJobs),
	}, logger.NewNoOpLogger())

	assert.Empty(t, c.SearchCourses("javascript", 10))
}
