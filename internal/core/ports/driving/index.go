package driving

import (
	"context"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// IndexService rebuilds the vector store from the documentation corpus.
type IndexService interface {
	// Index loads, chunks and embeds every document and publishes a new
	// store generation. On failure the previous generation stays current.
	Index(ctx context.Context) (domain.IndexStats, error)
}
