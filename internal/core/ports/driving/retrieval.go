package driving

import (
	"context"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// RetrievalService finds documentation relevant to a query.
type RetrievalService interface {
	// Retrieve returns up to k chunks by descending similarity.
	// A non-positive k uses the configured default.
	Retrieve(ctx context.Context, query string, k int) (domain.RetrievalResult, error)

	// Context returns the retrieved chunk texts joined by blank lines.
	// An empty string means nothing relevant was found.
	Context(ctx context.Context, query string, k int) (string, error)
}
