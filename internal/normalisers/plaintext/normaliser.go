// Package plaintext provides a Normaliser for plain text reference files.
package plaintext

import (
	"context"
	"strings"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plaintext normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".text"}
}

// Normalise unifies line endings and drops trailing whitespace.
// Leading indentation is kept.
func (n *Normaliser) Normalise(ctx context.Context, _ string, raw []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n"), nil
}
