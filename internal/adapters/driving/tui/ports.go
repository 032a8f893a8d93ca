// Package tui provides an interactive terminal demo for iacgen.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driving"
)

// Ports aggregates the services the TUI talks to.
type Ports struct {
	// Generation runs the RAG pipeline, in-process or over REST.
	Generation driving.GenerationService

	// Artifacts saves results locally. Unused in remote mode.
	Artifacts driven.ArtifactWriter

	// API is the REST base URL when generation runs remotely.
	API string
}

// Remote reports whether generation goes through the REST API.
func (p *Ports) Remote() bool {
	return p.API != ""
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Generation == nil {
		return ErrMissingGenerationService
	}
	return nil
}
