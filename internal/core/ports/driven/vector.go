package driven

import (
	"context"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// VectorStore manages generations of the persisted vector store.
//
// A store is rebuilt wholesale: Begin creates a new generation under a
// temporary identity, and Publish swaps the current pointer to it in one
// atomic step. Readers always see either the old or the new generation.
type VectorStore interface {
	// Begin starts building a new generation for the given embedder.
	Begin(ctx context.Context, embeddingModel string, dimensions int) (VectorStoreBuilder, error)

	// OpenCurrent opens the published generation read-only.
	// Returns domain.ErrStoreUnavailable if nothing has been published.
	OpenCurrent(ctx context.Context) (VectorReader, error)
}

// VectorStoreBuilder writes one unpublished generation.
type VectorStoreBuilder interface {
	// Generation returns the temporary identity of the build.
	Generation() string

	// AddDocument records a source document.
	AddDocument(ctx context.Context, doc domain.Document) error

	// AddChunks stores chunks with their embeddings.
	AddChunks(ctx context.Context, chunks []domain.Chunk) error

	// Publish makes this generation current and retires the previous one.
	Publish(ctx context.Context) (domain.StoreInfo, error)

	// Discard abandons the build. It is a no-op after Publish.
	Discard() error
}

// VectorReader searches a published generation.
// It is safe for concurrent use.
type VectorReader interface {
	// Info describes the generation, including the embedder it was built with.
	Info() domain.StoreInfo

	// Search returns up to k chunks by descending cosine similarity.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error)

	// Close releases resources.
	Close() error
}
