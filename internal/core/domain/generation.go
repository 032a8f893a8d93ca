package domain

// GenerationRequest is one query through the pipeline.
type GenerationRequest struct {
	// Query is the natural-language description of the infrastructure.
	Query string

	// Tool selects both the prompt grammar and the validator.
	Tool Tool

	// Save persists the code as an artifact when it validates.
	Save bool
}

// GenerationResult is the outcome of a generation.
// An invalid result is a normal outcome, not an error.
type GenerationResult struct {
	Tool    Tool   `json:"tool"`
	IsValid bool   `json:"is_valid"`
	Code    string `json:"code"`

	// SavedPath is set when the artifact was written.
	SavedPath string `json:"saved_path,omitempty"`
}

// Prompt is the instruction pair sent to a model backend.
type Prompt struct {
	System string
	User   string
}
