package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

var _ driven.VectorReader = (*reader)(nil)

// reader serves similarity search over one published generation.
type reader struct {
	db   *sql.DB
	info domain.StoreInfo
}

// openReader opens a generation file read-only and loads its metadata.
func openReader(ctx context.Context, path string) (*reader, error) {
	// The file: form lets mode=ro reach SQLite, which then refuses to
	// create a missing file.
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStoreUnavailable, err)
	}

	info, err := readMeta(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return &reader{db: db, info: info}, nil
}

// Info describes the generation.
func (r *reader) Info() domain.StoreInfo {
	return r.info
}

// Search scores every chunk by cosine similarity and returns the best k.
// Equal scores keep rowid order, which follows insertion order within a
// generation but is not guaranteed across rebuilds.
func (r *reader) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return nil, nil
	}
	if len(query) != r.info.Dimensions && r.info.Chunks > 0 {
		return nil, fmt.Errorf("query has %d dimensions, store has %d", len(query), r.info.Dimensions)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, d.source, c.position, c.start_offset, c.end_offset, c.content, c.embedding
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
		ORDER BY c.rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	queryNorm := norm(query)
	var hits []domain.RetrievedChunk
	for rows.Next() {
		var chunk domain.Chunk
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Source, &chunk.Position,
			&chunk.Start, &chunk.End, &chunk.Content, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		vec := bytesToFloat32Slice(blob)
		hits = append(hits, domain.RetrievedChunk{
			Chunk: chunk,
			Score: cosine(query, queryNorm, vec),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Close releases the connection.
func (r *reader) Close() error {
	return r.db.Close()
}

func readMeta(ctx context.Context, db *sql.DB) (domain.StoreInfo, error) {
	rows, err := db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return domain.StoreInfo{}, fmt.Errorf("reading meta: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.StoreInfo{}, fmt.Errorf("scanning meta: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return domain.StoreInfo{}, fmt.Errorf("iterating meta: %w", err)
	}
	if values[metaGeneration] == "" {
		return domain.StoreInfo{}, fmt.Errorf("generation has no metadata")
	}

	info := domain.StoreInfo{
		Generation:     values[metaGeneration],
		EmbeddingModel: values[metaEmbeddingModel],
	}
	info.Dimensions, _ = strconv.Atoi(values[metaDimensions])
	info.Documents, _ = strconv.Atoi(values[metaDocuments])
	info.Chunks, _ = strconv.Atoi(values[metaChunks])
	info.CreatedAt, _ = time.Parse(time.RFC3339, values[metaCreatedAt])
	return info, nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine returns the cosine similarity of a and b, or 0 when either is
// a zero vector or the lengths differ.
func cosine(a []float32, aNorm float64, b []float32) float64 {
	if len(a) != len(b) || aNorm == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	bNorm := norm(b)
	if bNorm == 0 {
		return 0
	}
	return dot / (aNorm * bNorm)
}
