// Package domain defines the core entities of the IaC generator.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a documentation file loaded from the docs root
//   - Chunk: an overlapping fragment of a Document, the unit of retrieval
//   - Tool: the target IaC grammar (terraform or ansible)
//   - GenerationRequest / GenerationResult: one pass through the pipeline
//   - Config: process-wide settings resolved once at startup
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
