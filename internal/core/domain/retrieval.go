package domain

import (
	"strings"
	"time"
)

// RetrievedChunk pairs a stored chunk with its similarity to the query.
type RetrievedChunk struct {
	Chunk Chunk
	Score float64
}

// RetrievalResult holds chunks ordered by descending similarity.
type RetrievalResult struct {
	Chunks []RetrievedChunk
}

// Empty returns true if nothing was retrieved.
func (r RetrievalResult) Empty() bool {
	return len(r.Chunks) == 0
}

// Text joins the chunk contents with blank lines.
// An empty result yields the empty string.
func (r RetrievalResult) Text() string {
	parts := make([]string, 0, len(r.Chunks))
	for _, c := range r.Chunks {
		parts = append(parts, c.Chunk.Content)
	}
	return strings.Join(parts, "\n\n")
}

// StoreInfo describes a published vector store generation.
type StoreInfo struct {
	// Generation is the identifier of the store build.
	Generation string

	// EmbeddingModel and Dimensions pin the embedder the store was built with.
	EmbeddingModel string
	Dimensions     int

	Documents int
	Chunks    int
	CreatedAt time.Time
}

// IndexStats summarises an index build.
type IndexStats struct {
	Documents  int
	Chunks     int
	Generation string
	Duration   time.Duration
}
