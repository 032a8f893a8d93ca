package tui

import "errors"

// ErrMissingGenerationService is returned when the generation service is not provided.
var ErrMissingGenerationService = errors.New("tui: generation service is required")

// ErrNothingToSave is reported when Ctrl+S is pressed without a valid result.
var ErrNothingToSave = errors.New("tui: no valid result to save")

// ErrNoArtifactWriter is reported when saving locally without a writer.
var ErrNoArtifactWriter = errors.New("tui: artifact writer is not configured")
