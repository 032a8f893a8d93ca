package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driving"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
)

// DefaultBatchSize is the number of chunks embedded per request.
const DefaultBatchSize = 32

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService rebuilds the vector store from the documentation corpus.
// Builds go to a fresh generation and are published only when complete.
type IndexService struct {
	loader    driven.DocumentLoader
	pipeline  driven.PostProcessorPipeline
	embedder  driven.EmbeddingService
	store     driven.VectorStore
	batchSize int

	mu sync.Mutex
}

// NewIndexService creates an index service.
func NewIndexService(
	loader driven.DocumentLoader,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	batchSize int,
) *IndexService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &IndexService{
		loader:    loader,
		pipeline:  pipeline,
		embedder:  embedder,
		store:     store,
		batchSize: batchSize,
	}
}

// Index loads, chunks and embeds every document and publishes the result.
// An empty corpus leaves the current store in place.
func (s *IndexService) Index(ctx context.Context) (domain.IndexStats, error) {
	if !s.mu.TryLock() {
		return domain.IndexStats{}, domain.ErrIndexInProgress
	}
	defer s.mu.Unlock()

	logger.Section("Indexing")
	started := time.Now()

	docs, err := s.loader.Load(ctx)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("%w: %w", domain.ErrIndexing, err)
	}
	if len(docs) == 0 {
		logger.Warn("no documents found in %s; keeping the existing index", s.loader.Root())
		return domain.IndexStats{}, fmt.Errorf("%w: %s", domain.ErrEmptyCorpus, s.loader.Root())
	}
	logger.Info("Loaded %d documents from %s", len(docs), s.loader.Root())

	builder, err := s.store.Begin(ctx, s.embedder.ModelName(), s.embedder.Dimensions())
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("%w: %w", domain.ErrIndexing, err)
	}

	stats, err := s.build(ctx, builder, docs)
	if err != nil {
		if discardErr := builder.Discard(); discardErr != nil {
			logger.Warn("discarding failed build: %v", discardErr)
		}
		if errors.Is(err, domain.ErrEmptyCorpus) {
			logger.Warn("documents in %s contain no text; keeping the existing index", s.loader.Root())
			return domain.IndexStats{}, err
		}
		return domain.IndexStats{}, fmt.Errorf("%w: %w", domain.ErrIndexing, err)
	}

	info, err := builder.Publish(ctx)
	if err != nil {
		_ = builder.Discard()
		return domain.IndexStats{}, fmt.Errorf("%w: %w", domain.ErrIndexing, err)
	}

	stats.Generation = info.Generation
	stats.Duration = time.Since(started)
	logger.Info("Indexed %d documents into %d chunks in %s", stats.Documents, stats.Chunks, stats.Duration)
	return stats, nil
}

// build writes every document and its embedded chunks into the builder.
func (s *IndexService) build(ctx context.Context, builder driven.VectorStoreBuilder, docs []domain.Document) (domain.IndexStats, error) {
	var stats domain.IndexStats
	var pending []domain.Chunk

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := s.embed(ctx, pending); err != nil {
			return err
		}
		if err := builder.AddChunks(ctx, pending); err != nil {
			return err
		}
		stats.Chunks += len(pending)
		pending = pending[:0]
		return nil
	}

	for i := range docs {
		doc := &docs[i]
		if err := builder.AddDocument(ctx, *doc); err != nil {
			return stats, err
		}
		stats.Documents++

		chunks, err := s.pipeline.Process(ctx, doc)
		if err != nil {
			return stats, fmt.Errorf("chunking %s: %w", doc.Source, err)
		}
		logger.Debug("  %s: %d chunks", doc.Source, len(chunks))

		for _, c := range chunks {
			pending = append(pending, c)
			if len(pending) == s.batchSize {
				if err := flush(); err != nil {
					return stats, err
				}
			}
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}

	if stats.Chunks == 0 {
		return stats, fmt.Errorf("%w: documents produced no chunks", domain.ErrEmptyCorpus)
	}
	return stats, nil
}

// embed fills in the embedding of each chunk.
func (s *IndexService) embed(ctx context.Context, chunks []domain.Chunk) error {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}
	return nil
}
