package driving

import "github.com/NovemberMoon/iac-generator-rag/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Config returns the effective configuration resolved at startup.
	Config() domain.Config

	// Entries lists every known key with its effective value.
	// Secret values are masked.
	Entries() []domain.ConfigEntry

	// Set validates and persists a single key.
	// The change takes effect on the next start.
	Set(key, value string) error

	// IsSecret returns true if the key holds a credential.
	IsSecret(key string) bool

	// ValidateEmbeddingConfig validates the embedding configuration by pinging the provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig validates the LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
