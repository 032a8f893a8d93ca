package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

// --- Fake implementations of driven ports ---

// fakeEmbedder returns a fixed vector per text, or a length-based one.
type fakeEmbedder struct {
	model   string
	dims    int
	vectors map[string][]float32
	err     error

	mu      sync.Mutex
	batches [][]string
	embeds  int
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{model: "fake-embed", dims: 2, vectors: map[string][]float32{}}
}

func (f *fakeEmbedder) vector(text string) []float32 {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	return []float32{float32(len(text)), 1}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.embeds++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.batches = append(f.batches, append([]string(nil), texts...))
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int              { return f.dims }
func (f *fakeEmbedder) ModelName() string            { return f.model }
func (f *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                 { return nil }

// fakeVectorStore keeps published generations in memory.
type fakeVectorStore struct {
	mu        sync.Mutex
	current   *fakeGeneration
	published int
	discarded int
	beginErr  error
	addErr    error

	// block, when set, holds AddChunks until closed.
	block   chan struct{}
	started chan struct{}
}

type fakeGeneration struct {
	info      domain.StoreInfo
	documents []domain.Document
	chunks    []domain.Chunk
}

func (s *fakeVectorStore) Begin(_ context.Context, model string, dims int) (driven.VectorStoreBuilder, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return &fakeBuilder{store: s, gen: &fakeGeneration{info: domain.StoreInfo{
		Generation:     "gen-" + model,
		EmbeddingModel: model,
		Dimensions:     dims,
	}}}, nil
}

func (s *fakeVectorStore) OpenCurrent(_ context.Context) (driven.VectorReader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return &fakeReader{gen: s.current}, nil
}

type fakeBuilder struct {
	store *fakeVectorStore
	gen   *fakeGeneration
}

func (b *fakeBuilder) Generation() string { return b.gen.info.Generation }

func (b *fakeBuilder) AddDocument(_ context.Context, doc domain.Document) error {
	b.gen.documents = append(b.gen.documents, doc)
	return nil
}

func (b *fakeBuilder) AddChunks(_ context.Context, chunks []domain.Chunk) error {
	if b.store.started != nil {
		close(b.store.started)
		b.store.started = nil
	}
	if b.store.block != nil {
		<-b.store.block
	}
	if b.store.addErr != nil {
		return b.store.addErr
	}
	b.gen.chunks = append(b.gen.chunks, chunks...)
	return nil
}

func (b *fakeBuilder) Publish(_ context.Context) (domain.StoreInfo, error) {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	b.gen.info.Documents = len(b.gen.documents)
	b.gen.info.Chunks = len(b.gen.chunks)
	if b.gen.info.Dimensions == 0 && len(b.gen.chunks) > 0 {
		b.gen.info.Dimensions = len(b.gen.chunks[0].Embedding)
	}
	b.store.current = b.gen
	b.store.published++
	return b.gen.info, nil
}

func (b *fakeBuilder) Discard() error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	b.store.discarded++
	return nil
}

// fakeReader ranks chunks by dot product.
type fakeReader struct {
	gen *fakeGeneration
}

func (r *fakeReader) Info() domain.StoreInfo { return r.gen.info }

func (r *fakeReader) Search(_ context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	hits := make([]domain.RetrievedChunk, 0, len(r.gen.chunks))
	for _, c := range r.gen.chunks {
		var score float64
		for i := range query {
			if i < len(c.Embedding) {
				score += float64(query[i]) * float64(c.Embedding[i])
			}
		}
		hits = append(hits, domain.RetrievedChunk{Chunk: c, Score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (r *fakeReader) Close() error { return nil }

// fakeLoader returns fixed documents.
type fakeLoader struct {
	docs []domain.Document
	err  error
}

func (l *fakeLoader) Load(_ context.Context) ([]domain.Document, error) { return l.docs, l.err }
func (l *fakeLoader) Root() string                                      { return "docs" }

// fakePipeline makes one chunk per document.
type fakePipeline struct {
	err error
}

func (p *fakePipeline) Process(_ context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if p.err != nil {
		return nil, p.err
	}
	if doc.Content == "" {
		return nil, nil
	}
	return []domain.Chunk{{
		ID:         doc.ID + "-0",
		DocumentID: doc.ID,
		Source:     doc.Source,
		Content:    doc.Content,
	}}, nil
}

// fakeLLM records its inputs and returns a canned completion.
type fakeLLM struct {
	response string
	err      error
	system   string
	user     string
	calls    int
}

func (l *fakeLLM) Complete(_ context.Context, system, user string) (string, error) {
	l.calls++
	l.system, l.user = system, user
	return l.response, l.err
}

func (l *fakeLLM) ModelName() string            { return "fake-llm" }
func (l *fakeLLM) Ping(_ context.Context) error { return nil }
func (l *fakeLLM) Close() error                 { return nil }

// fakePrompts serves templates from a map.
type fakePrompts map[string]string

func (p fakePrompts) Load(name string) (string, error) {
	if t, ok := p[name]; ok {
		return t, nil
	}
	return "", errors.New("no such prompt")
}

func (p fakePrompts) Reload() {}

const testTemplate = `tool={{.Tool}} grammar={{.Grammar}} ext={{.Extension}}
{{if .Context}}context:
{{.Context}}{{else}}no context{{end}}`

// fakeValidator accepts code equal to valid.
type fakeValidator struct {
	valid string
	tools []domain.Tool
}

func (v *fakeValidator) Validate(_ context.Context, code string, tool domain.Tool) bool {
	v.tools = append(v.tools, tool)
	return code == v.valid
}

// fakeArtifacts records saves.
type fakeArtifacts struct {
	saved []string
	err   error
}

func (a *fakeArtifacts) Save(tool domain.Tool, code string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.saved = append(a.saved, code)
	return "output/" + tool.String() + "_test." + tool.Extension(), nil
}

// fakeRetriever returns a fixed context.
type fakeRetriever struct {
	context string
	err     error
	k       int
}

func (r *fakeRetriever) Retrieve(_ context.Context, _ string, k int) (domain.RetrievalResult, error) {
	r.k = k
	return domain.RetrievalResult{}, r.err
}

func (r *fakeRetriever) Context(_ context.Context, _ string, k int) (string, error) {
	r.k = k
	return r.context, r.err
}

// fakeConfigStore is an in-memory ConfigStore.
type fakeConfigStore struct {
	data   map[string]any
	setErr error
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{data: map[string]any{}}
}

func (c *fakeConfigStore) Get(key string) (any, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeConfigStore) GetString(key string) string {
	s, _ := c.data[key].(string)
	return s
}

func (c *fakeConfigStore) GetInt(key string) int {
	switch v := c.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (c *fakeConfigStore) GetFloat(key string) float64 {
	switch v := c.data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (c *fakeConfigStore) GetBool(key string) (bool, bool) {
	b, ok := c.data[key].(bool)
	return b, ok
}

func (c *fakeConfigStore) GetStringSlice(key string) []string {
	s, _ := c.data[key].([]string)
	return s
}

func (c *fakeConfigStore) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *fakeConfigStore) Set(key string, value any) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

func (c *fakeConfigStore) Load() error  { return nil }
func (c *fakeConfigStore) Path() string { return "config.toml" }

// envMap builds a getenv function from a map.
func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}
