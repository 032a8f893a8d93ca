package driving

import (
	"context"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// GenerationService turns a natural-language request into validated IaC.
type GenerationService interface {
	// Generate runs retrieval, prompting, the model call, sanitizing and
	// validation. An invalid result is returned without error.
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)

	// Validate reports whether code is well-formed for tool.
	Validate(ctx context.Context, code string, tool domain.Tool) bool
}
