package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// publishChunks puts a generation with the given chunk embeddings in place.
func publishChunks(t *testing.T, store *fakeVectorStore, model string, chunks ...domain.Chunk) {
	t.Helper()
	builder, err := store.Begin(context.Background(), model, 2)
	require.NoError(t, err)
	if len(chunks) > 0 {
		require.NoError(t, builder.AddChunks(context.Background(), chunks))
	}
	_, err = builder.Publish(context.Background())
	require.NoError(t, err)
}

func retrievalFixture(t *testing.T) (*RetrievalService, *fakeEmbedder) {
	t.Helper()
	store := &fakeVectorStore{}
	embedder := newFakeEmbedder()
	embedder.vectors["vpc"] = []float32{1, 0}
	publishChunks(t, store, embedder.model,
		domain.Chunk{ID: "a", Source: "vpc.md", Content: "vpc docs", Embedding: []float32{1, 0}},
		domain.Chunk{ID: "b", Source: "ec2.md", Content: "ec2 docs", Embedding: []float32{0, 1}},
		domain.Chunk{ID: "c", Source: "mix.md", Content: "mixed docs", Embedding: []float32{0.5, 0.5}},
	)
	return NewRetrievalService(store, embedder, 0), embedder
}

func TestRetrievalService_Retrieve(t *testing.T) {
	svc, _ := retrievalFixture(t)

	result, err := svc.Retrieve(context.Background(), "vpc", 2)
	require.NoError(t, err)
	require.Len(t, result.Chunks, 2)
	assert.Equal(t, "a", result.Chunks[0].Chunk.ID)
	assert.Equal(t, "c", result.Chunks[1].Chunk.ID)
	assert.GreaterOrEqual(t, result.Chunks[0].Score, result.Chunks[1].Score)
}

func TestRetrievalService_DefaultK(t *testing.T) {
	svc, _ := retrievalFixture(t)

	result, err := svc.Retrieve(context.Background(), "vpc", 0)
	require.NoError(t, err)
	assert.Len(t, result.Chunks, DefaultTopK)
}

func TestRetrievalService_KLargerThanStore(t *testing.T) {
	svc, _ := retrievalFixture(t)

	result, err := svc.Retrieve(context.Background(), "vpc", 10)
	require.NoError(t, err)
	assert.Len(t, result.Chunks, 3)
}

func TestRetrievalService_BlankQuery(t *testing.T) {
	svc, embedder := retrievalFixture(t)

	result, err := svc.Retrieve(context.Background(), "   ", 2)
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Zero(t, embedder.embeds, "blank query must not be embedded")
}

func TestRetrievalService_NoStore(t *testing.T) {
	svc := NewRetrievalService(&fakeVectorStore{}, newFakeEmbedder(), 2)

	_, err := svc.Retrieve(context.Background(), "vpc", 2)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestRetrievalService_EmptyStore(t *testing.T) {
	store := &fakeVectorStore{}
	embedder := newFakeEmbedder()
	publishChunks(t, store, embedder.model)
	svc := NewRetrievalService(store, embedder, 2)

	result, err := svc.Retrieve(context.Background(), "vpc", 2)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestRetrievalService_ModelMismatch(t *testing.T) {
	svc, embedder := retrievalFixture(t)
	embedder.model = "other-model"

	_, err := svc.Retrieve(context.Background(), "vpc", 2)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "other-model")
}

func TestRetrievalService_DimensionMismatch(t *testing.T) {
	svc, embedder := retrievalFixture(t)
	embedder.dims = 3

	_, err := svc.Retrieve(context.Background(), "vpc", 2)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestRetrievalService_EmbedError(t *testing.T) {
	svc, embedder := retrievalFixture(t)
	embedder.err = errors.New("connection refused")

	_, err := svc.Retrieve(context.Background(), "vpc", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRetrievalService_Context(t *testing.T) {
	svc, _ := retrievalFixture(t)

	text, err := svc.Context(context.Background(), "vpc", 2)
	require.NoError(t, err)
	assert.Equal(t, "vpc docs\n\nmixed docs", text)
}

func TestRetrievalService_Repeatable(t *testing.T) {
	svc, _ := retrievalFixture(t)

	first, err := svc.Retrieve(context.Background(), "vpc", 3)
	require.NoError(t, err)
	second, err := svc.Retrieve(context.Background(), "vpc", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
