package domain

import (
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
// Names outside the constants below are still accepted for LLMs and
// resolved against the table of OpenAI-compatible presets.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGroq is the Groq hosted inference API.
	AIProviderGroq AIProvider = "groq"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderCustom is any OpenAI-compatible endpoint given by base URL.
	AIProviderCustom AIProvider = "custom"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGigaChat is the GigaChat enterprise chat service.
	AIProviderGigaChat AIProvider = "gigachat"

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderHash is the local feature-hashing embedder.
	// It needs no network and is deterministic, but carries no semantics
	// beyond shared vocabulary.
	AIProviderHash AIProvider = "hash"
)

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	switch p {
	case AIProviderGroq, AIProviderOpenAI, AIProviderAnthropic, AIProviderGigaChat:
		return true
	default:
		return false
	}
}

// KeyEnv returns the environment variable conventionally holding the
// provider's credential, or "" for providers that need none.
func (p AIProvider) KeyEnv() string {
	switch p {
	case "", AIProviderCustom, AIProviderOllama, AIProviderHash:
		return ""
	case AIProviderGigaChat:
		return "GIGACHAT_AUTH_KEY"
	default:
		return strings.ToUpper(string(p)) + "_API_KEY"
	}
}

// IsLocal returns true if this provider runs without a remote service.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama || p == AIProviderHash
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderGroq:
		return "Groq (hosted inference)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderCustom:
		return "Custom OpenAI-compatible endpoint"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGigaChat:
		return "GigaChat (enterprise)"
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderHash:
		return "Feature hashing (local, offline)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions is used by the hashing embedder only.
	Dimensions int

	// BatchSize bounds the number of texts per embedding request.
	BatchSize int

	// RequestsPerSecond throttles embedding calls. Zero disables the limit.
	RequestsPerSecond float64
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	switch e.Provider {
	case AIProviderOllama, AIProviderHash, AIProviderOpenAI:
	default:
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds model gateway configuration.
type LLMSettings struct {
	// Provider selects the backend.
	Provider AIProvider

	// Model is the model identifier. Empty uses the provider default.
	Model string

	// BaseURL overrides the provider endpoint. Required for AIProviderCustom.
	BaseURL string

	// APIKey is the bearer key, or the authorization key for GigaChat.
	APIKey string

	// Scope is the OAuth scope for GigaChat.
	Scope string

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// Timeout bounds each HTTP request to the backend.
	Timeout time.Duration

	// MaxTokens caps the completion length where the backend requires it.
	MaxTokens int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if l.Provider == "" {
		return false
	}
	if l.Provider == AIProviderCustom && l.BaseURL == "" {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// PathSettings locates the on-disk inputs and outputs.
type PathSettings struct {
	DocsDir   string
	StoreDir  string
	OutputDir string
}

// ChunkingSettings controls the splitter.
type ChunkingSettings struct {
	ChunkSize int
	Overlap   int
}

// Config is the process configuration. It is resolved once at startup
// and handed to constructors; nothing in the pipeline reads the
// environment on its own.
type Config struct {
	Paths     PathSettings
	Chunking  ChunkingSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings

	// Extensions lists the document file extensions the loader accepts.
	Extensions []string

	// TopK is the number of chunks retrieved per generation.
	TopK int

	// FailOpenUnknownTool makes validation pass for tools with no validator.
	FailOpenUnknownTool bool

	// ServerAddr is the listen address of the REST API.
	ServerAddr string
}

// ConfigEntry is one configuration key as displayed to the user.
type ConfigEntry struct {
	Key   string
	Value string

	// Source is "file", "env" or "default".
	Source string
}
