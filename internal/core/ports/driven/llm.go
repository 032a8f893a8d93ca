// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService is the model gateway: one call shape over every backend.
//
// Implementations bind endpoint, credentials and model at construction,
// always request temperature 0, and return the completion as plain text.
// Failures wrap domain.ErrModelInvocation. Implementations do not retry.
//
// Implementations include:
//   - OpenAI-compatible APIs (OpenAI, Groq, custom endpoints, named presets)
//   - Anthropic (Claude)
//   - GigaChat
//   - Ollama (local models)
type LLMService interface {
	// Complete sends system instructions and a user message and returns
	// the model's raw text completion.
	Complete(ctx context.Context, system, user string) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
