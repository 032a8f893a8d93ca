package cli

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

func TestIndexCmd_PrintsStats(t *testing.T) {
	idx := &mockIndex{stats: domain.IndexStats{
		Documents:  3,
		Chunks:     12,
		Generation: "gen-1",
		Duration:   1500 * time.Millisecond,
	}}
	withServices(t, &Services{Index: idx})

	out, err := execute(t, nil, "index")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 3 documents into 12 chunks in 1.5s.")
	assert.Contains(t, out, "Generation: gen-1")
}

func TestIndexCmd_EmptyCorpusWarns(t *testing.T) {
	withServices(t, &Services{Index: &mockIndex{err: fmt.Errorf("%w: docs", domain.ErrEmptyCorpus)}})

	out, err := execute(t, nil, "index")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning:")
}

func TestIndexCmd_Failure(t *testing.T) {
	withServices(t, &Services{Index: &mockIndex{err: fmt.Errorf("%w: %w", domain.ErrIndexing, errors.New("disk"))}})

	_, err := execute(t, nil, "index")

	assert.ErrorIs(t, err, domain.ErrIndexing)
	assert.Contains(t, err.Error(), "indexing failed")
}
