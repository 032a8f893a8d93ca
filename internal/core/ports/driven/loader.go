package driven

import (
	"context"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// DocumentLoader reads the documentation corpus.
type DocumentLoader interface {
	// Load returns every document under the root.
	// An empty corpus is not an error here; the indexer decides.
	Load(ctx context.Context) ([]domain.Document, error)

	// Root returns the directory being read.
	Root() string
}
