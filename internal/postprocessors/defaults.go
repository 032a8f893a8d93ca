package postprocessors

import (
	"fmt"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/postprocessors/chunker"
)

// ChunkerName is the registry name of the recursive splitter.
const ChunkerName = "chunker"

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(ChunkerName, buildChunker)
}

// NewChunkingPipeline builds the indexing pipeline from chunking settings.
// Zero values fall back to the chunker defaults.
func NewChunkingPipeline(settings domain.ChunkingSettings) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)

	cfg := map[string]any{}
	if settings.ChunkSize > 0 {
		cfg["chunk_size"] = settings.ChunkSize
	}
	if settings.Overlap > 0 {
		cfg["chunk_overlap"] = settings.Overlap
	}

	proc, err := r.Build(ChunkerName, cfg)
	if err != nil {
		return nil, err
	}
	return NewPipeline(proc), nil
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Maximum runes per chunk (default: 2000)
//   - chunk_overlap (int): Runes shared by adjacent chunks (default: 300)
//   - separators ([]string): Split points, coarsest first
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size, ok := getIntFromConfig(cfg, "chunk_size"); ok {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap, ok := getIntFromConfig(cfg, "chunk_overlap"); ok {
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	if seps, ok := cfg["separators"].([]string); ok && len(seps) > 0 {
		opts = append(opts, chunker.WithSeparators(seps...))
	}

	p, err := chunker.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("building chunker: %w", err)
	}
	return p, nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) (int, bool) {
	val, ok := cfg[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
