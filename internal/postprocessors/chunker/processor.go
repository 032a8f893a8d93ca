// Package chunker provides a recursive, overlap-aware text splitter.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// DefaultChunkSize is the default maximum number of runes per chunk.
const DefaultChunkSize = 2000

// DefaultChunkOverlap is the default number of runes shared by adjacent chunks.
const DefaultChunkOverlap = 300

// DefaultSeparators are tried in order, coarsest first.
// The empty separator cuts at rune boundaries.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Processor splits document content into overlapping chunks.
// It implements the PostProcessor interface.
//
// The trimmed text is first partitioned into contiguous pieces of at most
// chunkSize-overlap runes, preferring paragraph, then line, then word
// boundaries. Each chunk is its piece extended backwards by overlap runes,
// so every chunk fits in chunkSize and repeats the tail of its predecessor.
type Processor struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk length in runes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between adjacent chunks in runes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// WithSeparators replaces the separator hierarchy.
func WithSeparators(separators ...string) Option {
	return func(p *Processor) {
		p.separators = append([]string(nil), separators...)
	}
}

// New creates a chunker. It fails when the size and overlap leave no room
// for new text in each chunk.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: DefaultSeparators,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, p.chunkSize)
	}
	if p.overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must not be negative, got %d", domain.ErrInvalidInput, p.overlap)
	}
	if p.overlap >= p.chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidInput, p.overlap, p.chunkSize)
	}

	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the maximum chunk length in runes.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the overlap length in runes.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	text := []rune(strings.TrimSpace(doc.Content))
	if len(text) == 0 {
		return nil, nil
	}

	pieces := p.partition(text, 0, len(text), p.separators)
	chunks := make([]domain.Chunk, 0, len(pieces))

	for i, piece := range pieces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := max(0, piece.start-p.overlap)
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Source:     doc.Source,
			Content:    string(text[start:piece.end]),
			Position:   i,
			Start:      start,
			End:        piece.end,
		})
	}

	return chunks, nil
}

// span is a half-open rune range.
type span struct {
	start, end int
}

func (s span) len() int {
	return s.end - s.start
}

// partition covers text[lo:hi] with contiguous spans no longer than the
// piece limit.
func (p *Processor) partition(text []rune, lo, hi int, separators []string) []span {
	limit := p.chunkSize - p.overlap
	if hi-lo <= limit {
		return []span{{lo, hi}}
	}

	sep, rest := pickSeparator(text[lo:hi], separators)
	if sep == "" {
		return hardCut(lo, hi, limit)
	}

	var pieces []span
	current := span{lo, lo}
	for _, atom := range splitAfter(text, lo, hi, []rune(sep)) {
		if current.len()+atom.len() <= limit {
			current.end = atom.end
			continue
		}
		if current.len() > 0 {
			pieces = append(pieces, current)
		}
		if atom.len() > limit {
			pieces = append(pieces, p.partition(text, atom.start, atom.end, rest)...)
			current = span{atom.end, atom.end}
			continue
		}
		current = atom
	}
	if current.len() > 0 {
		pieces = append(pieces, current)
	}
	return pieces
}

// pickSeparator returns the first separator present in text and the
// separators that remain below it.
func pickSeparator(text []rune, separators []string) (string, []string) {
	for i, sep := range separators {
		if sep == "" || indexRunes(text, []rune(sep)) >= 0 {
			return sep, separators[i+1:]
		}
	}
	return "", nil
}

// splitAfter splits text[lo:hi] after each occurrence of sep, so every
// separator stays attached to the text before it.
func splitAfter(text []rune, lo, hi int, sep []rune) []span {
	var atoms []span
	start := lo
	for start < hi {
		idx := indexRunes(text[start:hi], sep)
		if idx < 0 {
			atoms = append(atoms, span{start, hi})
			break
		}
		end := start + idx + len(sep)
		atoms = append(atoms, span{start, end})
		start = end
	}
	return atoms
}

func hardCut(lo, hi, limit int) []span {
	pieces := make([]span, 0, (hi-lo)/limit+1)
	for start := lo; start < hi; start += limit {
		pieces = append(pieces, span{start, min(start+limit, hi)})
	}
	return pieces
}

func indexRunes(text, sep []rune) int {
	if len(sep) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(sep) <= len(text); i++ {
		for j := range sep {
			if text[i+j] != sep[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
