package driven

import (
	"context"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// SyntaxValidator checks generated code against one tool's grammar.
type SyntaxValidator interface {
	// Tool returns the tool this validator serves.
	Tool() domain.Tool

	// Validate returns nil when the code is structurally valid.
	// The error describes the first problem found.
	Validate(code string) error
}

// CodeValidator dispatches validation by tool and applies the policy for
// tools without a SyntaxValidator.
type CodeValidator interface {
	// Validate reports whether code is well-formed for tool.
	Validate(ctx context.Context, code string, tool domain.Tool) bool
}
