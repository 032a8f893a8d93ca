package mcp

import (
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Generation runs the generation pipeline and validates code.
	Generation driving.GenerationService

	// Retrieval previews the reference chunks for a query.
	Retrieval driving.RetrievalService

	// Settings exposes the effective configuration. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Generation == nil {
		return ErrMissingGenerationService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
