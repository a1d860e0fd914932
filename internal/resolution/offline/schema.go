// internal/resolution/offline/schema.go
package offline

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Corpus files are validated before decoding so a malformed bundle is
// rejected as a whole instead of producing half-normalized candidates.

const courseSchema = `{
  "type": "object",
  "required": ["cursos"],
  "properties": {
    "cursos": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["nome", "descricao", "categoria", "tags"],
        "properties": {
          "id": {"type": "string"},
          "nome": {"type": "string", "minLength": 1},
          "descricao": {"type": "string"},
          "categoria": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}},
          "plataforma": {"type": "string"},
          "url": {"type": "string"},
          "preco": {"type": "string"},
          "avaliacao": {"type": "number", "minimum": 0, "maximum": 5},
          "alunos": {"type": "integer", "minimum": 0},
          "duracao": {"type": "string"},
          "nivel": {"type": "string"},
          "instrutor": {"type": "string"},
          "idioma": {"type": "string"}
        }
      }
    }
  }
}`

const jobSchema = `{
  "type": "object",
  "required": ["vagas"],
  "properties": {
    "vagas": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["titulo", "descricao"],
        "properties": {
          "id": {"type": "string"},
          "titulo": {"type": "string", "minLength": 1},
          "empresa": {"type": "string"},
          "localizacao": {"type": "string"},
          "descricao": {"type": "string"},
          "categoria": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}},
          "remoto": {"type": "boolean"},
          "requisitos": {"type": "array", "items": {"type": "string"}},
          "url": {"type": "string"}
        }
      }
    }
  }
}`

// readValidated loads a corpus file and validates it against the given
// schema, returning the raw bytes only when the document conforms.
func readValidated(path, schema string) ([]byte, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("corpus does not match schema: %s", strings.Join(msgs, "; "))
	}
	return data, nil
}
