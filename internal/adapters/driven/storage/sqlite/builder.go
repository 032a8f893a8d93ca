package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
)

var _ driven.VectorStoreBuilder = (*builder)(nil)

// builder writes one unpublished generation.
type builder struct {
	store          *Store
	db             *sql.DB
	path           string
	generation     string
	embeddingModel string
	dimensions     int
	documents      int
	chunks         int
	done           bool
}

// Generation returns the temporary identity of the build.
func (b *builder) Generation() string {
	return b.generation
}

// AddDocument records a source document.
func (b *builder) AddDocument(ctx context.Context, doc domain.Document) error {
	if b.done {
		return fmt.Errorf("generation %s is closed", b.generation)
	}
	if _, err := b.db.ExecContext(ctx,
		"INSERT INTO documents (id, source, content) VALUES (?, ?, ?)",
		doc.ID, doc.Source, doc.Content,
	); err != nil {
		return fmt.Errorf("saving document %s: %w", doc.Source, err)
	}
	b.documents++
	return nil
}

// AddChunks stores chunks with their embeddings in one transaction.
func (b *builder) AddChunks(ctx context.Context, chunks []domain.Chunk) error {
	if b.done {
		return fmt.Errorf("generation %s is closed", b.generation)
	}
	if len(chunks) == 0 {
		return nil
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, position, start_offset, end_offset, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i := range chunks {
		chunk := &chunks[i]
		if b.dimensions == 0 {
			b.dimensions = len(chunk.Embedding)
		}
		if len(chunk.Embedding) == 0 || len(chunk.Embedding) != b.dimensions {
			return fmt.Errorf("chunk %s: embedding has %d dimensions, store expects %d",
				chunk.ID, len(chunk.Embedding), b.dimensions)
		}

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Position,
			chunk.Start, chunk.End, chunk.Content, float32SliceToBytes(chunk.Embedding)); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	b.chunks += len(chunks)
	return nil
}

// Publish seals the generation, swaps the current pointer to it and
// retires the previous generation.
func (b *builder) Publish(ctx context.Context) (domain.StoreInfo, error) {
	if b.done {
		return domain.StoreInfo{}, fmt.Errorf("generation %s is closed", b.generation)
	}

	info := domain.StoreInfo{
		Generation:     b.generation,
		EmbeddingModel: b.embeddingModel,
		Dimensions:     b.dimensions,
		Documents:      b.documents,
		Chunks:         b.chunks,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}

	if err := writeMeta(ctx, b.db, info); err != nil {
		_ = b.Discard()
		return domain.StoreInfo{}, err
	}

	// Close before the swap so the file is complete on disk.
	if err := b.db.Close(); err != nil {
		b.done = true
		os.Remove(b.path)
		return domain.StoreInfo{}, fmt.Errorf("closing generation: %w", err)
	}
	b.done = true

	previous, err := b.store.swap(b.generation)
	if err != nil {
		os.Remove(b.path)
		return domain.StoreInfo{}, err
	}

	logger.Info("vector store: published generation %s (%d documents, %d chunks)",
		b.generation, b.documents, b.chunks)

	if previous != b.generation {
		b.store.retire(previous)
	}
	return info, nil
}

// Discard abandons the build and removes its file.
func (b *builder) Discard() error {
	if b.done {
		return nil
	}
	b.done = true
	closeErr := b.db.Close()
	if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing discarded generation: %w", err)
	}
	logger.Debug("vector store: discarded generation %s", b.generation)
	return closeErr
}

func writeMeta(ctx context.Context, db *sql.DB, info domain.StoreInfo) error {
	values := map[string]string{
		metaGeneration:     info.Generation,
		metaEmbeddingModel: info.EmbeddingModel,
		metaDimensions:     strconv.Itoa(info.Dimensions),
		metaDocuments:      strconv.Itoa(info.Documents),
		metaChunks:         strconv.Itoa(info.Chunks),
		metaCreatedAt:      info.CreatedAt.Format(time.RFC3339),
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range values {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("writing meta %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing meta: %w", err)
	}
	return nil
}
