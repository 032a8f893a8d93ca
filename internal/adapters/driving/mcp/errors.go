// Package mcp provides an MCP (Model Context Protocol) server adapter for iacgen.
// It lets AI assistants generate, ground and validate infrastructure code.
package mcp

import "errors"

var (
	// ErrMissingGenerationService is returned when the generation service is not provided.
	ErrMissingGenerationService = errors.New("mcp: generation service is required")

	// ErrMissingRetrievalService is returned when the retrieval service is not provided.
	ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
)
