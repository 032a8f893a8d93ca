// Package openai provides a model gateway adapter for the OpenAI chat
// completions API and every server that speaks it (Groq, OpenRouter,
// vLLM, LM Studio, self-hosted gateways).
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/llm"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultLLMTimeout = 60 * time.Second
)

// LLMConfig holds configuration for an OpenAI-compatible LLM service.
type LLMConfig struct {
	// Name labels errors and logs (e.g. "groq"). Defaults to "openai".
	Name string

	// APIKey is the bearer key. Required unless AllowAnonymous is set.
	APIKey string

	// AllowAnonymous permits endpoints that take no key.
	AllowAnonymous bool

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// Model is the LLM model to use (default: gpt-4o-mini).
	Model string

	// MaxTokens caps the completion. Zero leaves it to the server.
	MaxTokens int

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// HTTPClient replaces the default client. Timeout and
	// InsecureSkipVerify are ignored when set.
	HTTPClient *http.Client
}

// LLMService calls an OpenAI-compatible /chat/completions endpoint.
type LLMService struct {
	client    *http.Client
	name      string
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
}

// chatCompletionRequest is the /chat/completions request format.
// Temperature has no omitempty: zero must reach the server.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewLLMService creates a new OpenAI-compatible LLM service.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.APIKey == "" && !cfg.AllowAnonymous {
		return nil, fmt.Errorf("%s: API key is required", cfg.Name)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = llm.NewHTTPClient(cfg.Timeout, cfg.InsecureSkipVerify)
	}

	return &LLMService{
		client:    client,
		name:      cfg.Name,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Complete sends one system and one user message at temperature 0.
func (s *LLMService) Complete(ctx context.Context, system, user string) (string, error) {
	messages := make([]chatCompletionMsg, 0, 2)
	if system != "" {
		messages = append(messages, chatCompletionMsg{Role: "system", Content: system})
	}
	messages = append(messages, chatCompletionMsg{Role: "user", Content: user})

	reqBody := chatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   s.maxTokens,
		Temperature: 0,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	logger.Debug("%s: POST %s/chat/completions model=%s", s.name, s.baseURL, s.model)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: send request: %w", domain.ErrModelInvocation, s.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %s: read response: %w", domain.ErrModelInvocation, s.name, err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("%w: %s error (status %d): %s",
				domain.ErrModelInvocation, s.name, resp.StatusCode, llm.Truncate(body, 512))
		}
		return "", fmt.Errorf("%w: %s: decode response: %w", domain.ErrModelInvocation, s.name, err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("%w: %s error: %s", domain.ErrModelInvocation, s.name, chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s error (status %d): %s",
			domain.ErrModelInvocation, s.name, resp.StatusCode, llm.Truncate(body, 512))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: %s: no response choices returned", domain.ErrModelInvocation, s.name)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by checking the /models endpoint.
// This validates the API key without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("%s: failed to create ping request: %w", s.name, err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: ping failed: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%s: API returned status %d (failed to read body: %w)", s.name, resp.StatusCode, err)
		}
		return fmt.Errorf("%s: API returned status %d: %s", s.name, resp.StatusCode, llm.Truncate(body, 512))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
