package driven

import "github.com/NovemberMoon/iac-generator-rag/internal/core/domain"

// ArtifactWriter persists generated code.
type ArtifactWriter interface {
	// Save writes code for the tool and returns the file path.
	Save(tool domain.Tool, code string) (string, error)
}
