package hashing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestEmbed_Deterministic(t *testing.T) {
	svc := NewEmbeddingService(64)
	ctx := context.Background()

	a, err := svc.Embed(ctx, "nginx web server on ubuntu")
	require.NoError(t, err)
	b, err := svc.Embed(ctx, "nginx web server on ubuntu")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestEmbed_Normalised(t *testing.T) {
	svc := NewEmbeddingService(0)
	vec, err := svc.Embed(context.Background(), "Создай виртуальную машину с базой данных")
	require.NoError(t, err)

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 1e-5)
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
}

func TestEmbed_SharedVocabularyScoresHigher(t *testing.T) {
	svc := NewEmbeddingService(256)
	ctx := context.Background()

	query, _ := svc.Embed(ctx, "postgres database server")
	related, _ := svc.Embed(ctx, "Install the postgres database on a dedicated server.")
	unrelated, _ := svc.Embed(ctx, "Rotate log files weekly with compression.")

	assert.Greater(t, cosine(query, related), cosine(query, unrelated))
}

func TestEmbed_EmptyText(t *testing.T) {
	svc := NewEmbeddingService(8)
	vec, err := svc.Embed(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 8), vec)
}

func TestEmbedBatch_CancelledContext(t *testing.T) {
	svc := NewEmbeddingService(8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.EmbedBatch(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "hashing-fnv64a-128", NewEmbeddingService(128).ModelName())
}
