// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	hashembed "github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/embedding/hashing"
	ollamaembed "github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/embedding/openai"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/embedding/ratelimit"
	anthropicllm "github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/llm/anthropic"
	gigachatllm "github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/llm/gigachat"
	ollamallm "github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/llm/ollama"
	openaillm "github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/llm/openai"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding service selected by settings,
// throttled to settings.RequestsPerSecond.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no embedding settings", domain.ErrInvalidInput)
	}

	var svc driven.EmbeddingService
	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	case domain.AIProviderOpenAI:
		if settings.APIKey == "" {
			return nil, missingKey(settings.Provider, "embedding.api_key")
		}
		openaiSvc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		svc = openaiSvc

	case domain.AIProviderHash:
		svc = hashembed.NewEmbeddingService(settings.Dimensions)

	default:
		return nil, fmt.Errorf("%w: embedding provider %q (use ollama, openai or hash)",
			domain.ErrUnsupportedProvider, settings.Provider)
	}

	return ratelimit.Wrap(svc, ratelimit.Config{RequestsPerSecond: settings.RequestsPerSecond}), nil
}

// CreateLLMService creates the model gateway selected by settings.
// Any OpenAI-compatible preset name is accepted as a provider.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no llm settings", domain.ErrInvalidInput)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		}), nil

	case domain.AIProviderAnthropic:
		if settings.APIKey == "" {
			return nil, missingKey(settings.Provider, "llm.api_key")
		}
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:             settings.APIKey,
			BaseURL:            settings.BaseURL,
			Model:              settings.Model,
			MaxTokens:          settings.MaxTokens,
			Timeout:            settings.Timeout,
			InsecureSkipVerify: settings.InsecureSkipVerify,
		})

	case domain.AIProviderGigaChat:
		if settings.APIKey == "" {
			return nil, missingKey(settings.Provider, "llm.api_key")
		}
		return gigachatllm.NewLLMService(gigachatllm.Config{
			AuthKey:            settings.APIKey,
			Scope:              settings.Scope,
			BaseURL:            settings.BaseURL,
			Model:              settings.Model,
			MaxTokens:          settings.MaxTokens,
			Timeout:            settings.Timeout,
			InsecureSkipVerify: settings.InsecureSkipVerify,
		})

	case domain.AIProviderCustom:
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("%w: custom provider requires llm.base_url", domain.ErrInvalidInput)
		}
		return openaillm.NewLLMService(openaillm.LLMConfig{
			Name:               "custom",
			APIKey:             settings.APIKey,
			AllowAnonymous:     true,
			BaseURL:            settings.BaseURL,
			Model:              settings.Model,
			MaxTokens:          settings.MaxTokens,
			Timeout:            settings.Timeout,
			InsecureSkipVerify: settings.InsecureSkipVerify,
		})
	}

	preset, ok := openaillm.LookupPreset(settings.Provider.String())
	if !ok {
		return nil, fmt.Errorf("%w: llm provider %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
	if preset.KeyEnv != "" && settings.APIKey == "" {
		return nil, missingKey(settings.Provider, "llm.api_key")
	}

	cfg := openaillm.LLMConfig{
		Name:               settings.Provider.String(),
		APIKey:             settings.APIKey,
		AllowAnonymous:     preset.KeyEnv == "",
		BaseURL:            preset.BaseURL,
		Model:              preset.Model,
		MaxTokens:          settings.MaxTokens,
		Timeout:            settings.Timeout,
		InsecureSkipVerify: settings.InsecureSkipVerify,
	}
	if settings.BaseURL != "" {
		cfg.BaseURL = settings.BaseURL
	}
	if settings.Model != "" {
		cfg.Model = settings.Model
	}
	return openaillm.NewLLMService(cfg)
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s unreachable: %w", domain.ErrEmbeddingUnavailable, settings.Provider, err)
	}
	return nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s unreachable: %w", domain.ErrModelInvocation, settings.Provider, err)
	}
	return nil
}

func missingKey(provider domain.AIProvider, key string) error {
	hint := key
	if env := provider.KeyEnv(); env != "" {
		hint = strings.Join([]string{env, key}, " or ")
	}
	return fmt.Errorf("%w: %s requires an API key (set %s)", domain.ErrInvalidInput, provider, hint)
}
