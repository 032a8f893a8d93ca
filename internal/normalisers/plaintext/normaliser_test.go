package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".txt", ".text"}, New().Extensions())
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "unchanged", raw: "This is plain text content.", want: "This is plain text content."},
		{name: "crlf", raw: "a\r\nb\r\n", want: "a\nb"},
		{name: "bare cr", raw: "a\rb", want: "a\nb"},
		{name: "trailing whitespace", raw: "key = 1  \t\nnext", want: "key = 1\nnext"},
		{name: "keeps indentation", raw: "tasks:\n  - name: x\n", want: "tasks:\n  - name: x"},
		{name: "surrounding blank lines", raw: "\n\nbody\n\n", want: "body"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().Normalise(context.Background(), "doc.txt", []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalise_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Normalise(ctx, "doc.txt", []byte("x"))

	assert.ErrorIs(t, err, context.Canceled)
}
