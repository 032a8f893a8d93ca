package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrConfigNotFound", ErrConfigNotFound},
		{"ErrUnsupportedProvider", ErrUnsupportedProvider},
		{"ErrEmptyCorpus", ErrEmptyCorpus},
		{"ErrIndexing", ErrIndexing},
		{"ErrIndexInProgress", ErrIndexInProgress},
		{"ErrStoreUnavailable", ErrStoreUnavailable},
		{"ErrModelInvocation", ErrModelInvocation},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Wrapping tests that wrapped sentinels stay distinguishable
func TestErrors_Wrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("%w: %w", ErrModelInvocation, cause)

	assert.True(t, errors.Is(err, ErrModelInvocation))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrStoreUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
}
