// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// GenerationCompleted carries a pipeline result back to the model.
type GenerationCompleted struct {
	Request domain.GenerationRequest
	Result  domain.GenerationResult
	Err     error
}

// ArtifactSaved reports the outcome of a save.
type ArtifactSaved struct {
	Path string
	Err  error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}
