package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driving"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
)

// DefaultTopK is the number of chunks retrieved when none is configured.
const DefaultTopK = 2

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService runs similarity search over the published store.
type RetrievalService struct {
	store    driven.VectorStore
	embedder driven.EmbeddingService
	topK     int
}

// NewRetrievalService creates a retrieval service. The embedder must be the
// one the store was built with.
func NewRetrievalService(store driven.VectorStore, embedder driven.EmbeddingService, topK int) *RetrievalService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &RetrievalService{
		store:    store,
		embedder: embedder,
		topK:     topK,
	}
}

// Retrieve returns up to k chunks most similar to query.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, k int) (domain.RetrievalResult, error) {
	logger.Section("Retrieval")

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no chunks")
		return domain.RetrievalResult{}, nil
	}
	if k <= 0 {
		k = s.topK
	}

	// A fresh read handle per request keeps concurrent publishes invisible.
	reader, err := s.store.OpenCurrent(ctx)
	if err != nil {
		return domain.RetrievalResult{}, err
	}
	defer reader.Close()

	info := reader.Info()
	logger.Debug("Store generation %s: %d chunks, model %s (%d dims)",
		info.Generation, info.Chunks, info.EmbeddingModel, info.Dimensions)

	if info.Chunks == 0 {
		logger.Debug("Store is empty, returning no chunks")
		return domain.RetrievalResult{}, nil
	}

	if err := s.checkEmbedder(info); err != nil {
		return domain.RetrievalResult{}, err
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("embedding query: %w", err)
	}
	if len(vec) != info.Dimensions {
		return domain.RetrievalResult{}, fmt.Errorf("%w: query embedding has %d dimensions, store has %d",
			domain.ErrStoreUnavailable, len(vec), info.Dimensions)
	}

	hits, err := reader.Search(ctx, vec, k)
	if err != nil {
		return domain.RetrievalResult{}, fmt.Errorf("searching store: %w", err)
	}

	for i, h := range hits {
		logger.Debug("  %d. %s #%d score=%.4f", i+1, h.Chunk.Source, h.Chunk.Position, h.Score)
	}
	logger.Info("Retrieved %d chunks (k=%d)", len(hits), k)

	return domain.RetrievalResult{Chunks: hits}, nil
}

// Context returns the retrieved chunk texts joined by blank lines.
func (s *RetrievalService) Context(ctx context.Context, query string, k int) (string, error) {
	result, err := s.Retrieve(ctx, query, k)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// checkEmbedder refuses to search a store built by a different embedder.
func (s *RetrievalService) checkEmbedder(info domain.StoreInfo) error {
	if info.EmbeddingModel != s.embedder.ModelName() {
		return fmt.Errorf("%w: store was built with embedding model %q but %q is configured; re-run index",
			domain.ErrStoreUnavailable, info.EmbeddingModel, s.embedder.ModelName())
	}
	if dims := s.embedder.Dimensions(); dims > 0 && dims != info.Dimensions {
		return fmt.Errorf("%w: store has %d-dimensional embeddings but the embedder produces %d; re-run index",
			domain.ErrStoreUnavailable, info.Dimensions, dims)
	}
	return nil
}
