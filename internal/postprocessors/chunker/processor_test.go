package chunker

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

func mustNew(t *testing.T, opts ...Option) *Processor {
	t.Helper()
	p, err := New(opts...)
	require.NoError(t, err)
	return p
}

func process(t *testing.T, p *Processor, content string) []domain.Chunk {
	t.Helper()
	doc := &domain.Document{ID: "doc-1", Source: "guide.md", Content: content}
	chunks, err := p.Process(context.Background(), doc, nil)
	require.NoError(t, err)
	return chunks
}

// assertChunkProperties checks the size bound and the exact overlap
// between every pair of adjacent chunks.
func assertChunkProperties(t *testing.T, chunks []domain.Chunk, content string, size, overlap int) {
	t.Helper()
	text := []rune(strings.TrimSpace(content))

	for i, c := range chunks {
		n := utf8.RuneCountInString(c.Content)
		assert.LessOrEqual(t, n, size, "chunk %d too long", i)
		assert.Equal(t, i, c.Position)
		assert.Equal(t, string(text[c.Start:c.End]), c.Content, "chunk %d offsets", i)

		if i == 0 {
			assert.Equal(t, 0, c.Start)
			continue
		}

		prev := chunks[i-1]
		// The new text of chunk i starts where the previous chunk ends.
		newStart := prev.End
		want := min(overlap, newStart)
		assert.Equal(t, newStart-want, c.Start, "chunk %d overlap start", i)

		prevRunes := []rune(prev.Content)
		shared := string(prevRunes[len(prevRunes)-min(want, len(prevRunes)):])
		assert.True(t, strings.HasPrefix(c.Content, shared), "chunk %d should start with tail of chunk %d", i, i-1)
	}

	if len(chunks) > 0 {
		assert.Equal(t, len(text), chunks[len(chunks)-1].End, "chunks must cover the whole text")
	}
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := mustNew(t)
		assert.Equal(t, DefaultChunkSize, p.ChunkSize())
		assert.Equal(t, DefaultChunkOverlap, p.Overlap())
		assert.Equal(t, DefaultSeparators, p.separators)
	})

	t.Run("custom values", func(t *testing.T) {
		p := mustNew(t, WithChunkSize(500), WithOverlap(100), WithSeparators("\n"))
		assert.Equal(t, 500, p.ChunkSize())
		assert.Equal(t, 100, p.Overlap())
		assert.Equal(t, []string{"\n"}, p.separators)
	})

	t.Run("zero overlap allowed", func(t *testing.T) {
		p := mustNew(t, WithChunkSize(10), WithOverlap(0))
		assert.Equal(t, 0, p.Overlap())
	})

	invalid := []struct {
		name string
		opts []Option
	}{
		{"overlap equals size", []Option{WithChunkSize(100), WithOverlap(100)}},
		{"overlap exceeds size", []Option{WithChunkSize(100), WithOverlap(150)}},
		{"zero size", []Option{WithChunkSize(0)}},
		{"negative overlap", []Option{WithOverlap(-1)}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "chunker", mustNew(t).Name())
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	p := mustNew(t)
	assert.Empty(t, process(t, p, ""))
	assert.Empty(t, process(t, p, " \n\t \n"))
}

func TestProcessor_Process_SmallContent(t *testing.T) {
	p := mustNew(t, WithChunkSize(100), WithOverlap(20))

	chunks := process(t, p, "  \nresource \"aws_s3_bucket\" \"b\" {}\n\n")

	require.Len(t, chunks, 1)
	assert.Equal(t, "resource \"aws_s3_bucket\" \"b\" {}", chunks[0].Content)
	assert.Equal(t, "doc-1", chunks[0].DocumentID)
	assert.Equal(t, "guide.md", chunks[0].Source)
	assert.NotEmpty(t, chunks[0].ID)
}

func TestProcessor_Process_PrefersParagraphs(t *testing.T) {
	p := mustNew(t, WithChunkSize(30), WithOverlap(5))
	content := "first paragraph\n\nsecond one\n\nthird paragraph here"

	chunks := process(t, p, content)

	require.Len(t, chunks, 3)
	assert.Equal(t, "first paragraph\n\n", chunks[0].Content)
	assert.True(t, strings.HasSuffix(chunks[1].Content, "second one\n\n"))
	assert.True(t, strings.HasSuffix(chunks[2].Content, "third paragraph here"))
	assertChunkProperties(t, chunks, content, 30, 5)
}

func TestProcessor_Process_FallsBackToHardCut(t *testing.T) {
	p := mustNew(t, WithChunkSize(10), WithOverlap(3))
	content := strings.Repeat("x", 50)

	chunks := process(t, p, content)

	assert.Len(t, chunks, 8) // 50 runes in pieces of 7
	assertChunkProperties(t, chunks, content, 10, 3)
}

func TestProcessor_Process_CustomSeparatorsWithoutEmpty(t *testing.T) {
	p := mustNew(t, WithChunkSize(8), WithOverlap(2), WithSeparators("\n"))
	content := "short\nthis line is far too long\nend"

	chunks := process(t, p, content)
	assertChunkProperties(t, chunks, content, 8, 2)
}

func TestProcessor_Process_SizeAndOverlapProperties(t *testing.T) {
	paragraphs := []string{
		"Every S3 bucket must have server-side encryption enabled.",
		"All resources carry the tags owner, cost_center and environment.",
		"Ansible playbooks target the group webservers and use become: true.",
		"Терраформ модули хранятся в реестре компании; ключи шифрования ротируются ежеквартально.",
		"日本語のドキュメントも同じ規則で分割されます。",
	}
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString(paragraphs[i%len(paragraphs)])
		if i%3 == 0 {
			sb.WriteString("\n\n")
		} else {
			sb.WriteString("\n")
		}
	}
	content := sb.String()

	tests := []struct {
		size, overlap int
	}{
		{2000, 300},
		{200, 30},
		{64, 16},
		{25, 24},
		{7, 0},
		{1, 0},
	}

	for _, tt := range tests {
		p := mustNew(t, WithChunkSize(tt.size), WithOverlap(tt.overlap))
		chunks := process(t, p, content)
		require.NotEmpty(t, chunks)
		assertChunkProperties(t, chunks, content, tt.size, tt.overlap)
	}
}

func TestProcessor_Process_MultiByteCountsRunes(t *testing.T) {
	p := mustNew(t, WithChunkSize(10), WithOverlap(2))
	content := strings.Repeat("ж", 10)

	chunks := process(t, p, content)

	require.Len(t, chunks, 2)
	assert.Equal(t, strings.Repeat("ж", 8), chunks[0].Content)
	assert.Equal(t, strings.Repeat("ж", 4), chunks[1].Content)
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c.Content))
	}
}

func TestProcessor_Process_IgnoresInputChunks(t *testing.T) {
	p := mustNew(t, WithChunkSize(100), WithOverlap(10))
	doc := &domain.Document{ID: "doc", Content: "fresh content"}
	existing := []domain.Chunk{{ID: "old", Content: "stale"}}

	chunks, err := p.Process(context.Background(), doc, existing)

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "fresh content", chunks[0].Content)
}

func TestProcessor_Process_UniqueIDs(t *testing.T) {
	p := mustNew(t, WithChunkSize(10), WithOverlap(2))
	chunks := process(t, p, strings.Repeat("word ", 30))

	seen := make(map[string]bool)
	for _, c := range chunks {
		assert.False(t, seen[c.ID], "duplicate chunk ID %s", c.ID)
		seen[c.ID] = true
	}
}

func TestProcessor_Process_CancelledContext(t *testing.T) {
	p := mustNew(t, WithChunkSize(10), WithOverlap(2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, &domain.Document{ID: "d", Content: strings.Repeat("a ", 50)}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
