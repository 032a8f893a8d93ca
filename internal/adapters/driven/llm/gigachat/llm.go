// Package gigachat provides a model gateway adapter for the GigaChat
// enterprise chat service.
//
// GigaChat exchanges a long-lived authorization key for short-lived
// access tokens at a separate OAuth endpoint, then serves an
// OpenAI-shaped chat completions API. The token exchange is an
// oauth2.TokenSource; completions reuse the OpenAI-compatible adapter
// over an oauth2.Transport.
package gigachat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/llm"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driven/llm/openai"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://gigachat.devices.sberbank.ru/api/v1"
	DefaultAuthURL = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	DefaultModel   = "GigaChat"
	DefaultScope   = "GIGACHAT_API_PERS"
	DefaultTimeout = 60 * time.Second

	// refreshLeeway renews tokens this long before they expire.
	refreshLeeway = time.Minute
)

// Config holds configuration for the GigaChat LLM service.
type Config struct {
	// AuthKey is the base64 client credentials issued by GigaChat (required).
	AuthKey string

	// Scope is the API scope (default: GIGACHAT_API_PERS).
	Scope string

	// BaseURL is the API base URL.
	BaseURL string

	// AuthURL is the OAuth token endpoint.
	AuthURL string

	// Model is the chat model (default: GigaChat).
	Model string

	// MaxTokens caps the completion. Zero leaves it to the server.
	MaxTokens int

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification. GigaChat
	// endpoints are signed by a national CA missing from most trust stores.
	InsecureSkipVerify bool
}

// LLMService provides completions from GigaChat.
type LLMService struct {
	*openai.LLMService
}

// NewLLMService creates a new GigaChat LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.AuthKey == "" {
		return nil, fmt.Errorf("gigachat: authorization key is required")
	}
	if cfg.Scope == "" {
		cfg.Scope = DefaultScope
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	base := llm.NewHTTPClient(cfg.Timeout, cfg.InsecureSkipVerify)
	source := oauth2.ReuseTokenSourceWithExpiry(nil, &tokenSource{
		client:  base,
		authURL: cfg.AuthURL,
		authKey: cfg.AuthKey,
		scope:   cfg.Scope,
	}, refreshLeeway)

	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &oauth2.Transport{
			Source: source,
			Base:   base.Transport,
		},
	}

	inner, err := openai.NewLLMService(openai.LLMConfig{
		Name:           "gigachat",
		AllowAnonymous: true,
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		MaxTokens:      cfg.MaxTokens,
		HTTPClient:     client,
	})
	if err != nil {
		return nil, err
	}

	return &LLMService{LLMService: inner}, nil
}

// tokenSource exchanges the authorization key for an access token.
type tokenSource struct {
	client  *http.Client
	authURL string
	authKey string
	scope   string
}

// tokenResponse is the OAuth endpoint response. ExpiresAt is in
// milliseconds since the epoch.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Token implements oauth2.TokenSource.
func (t *tokenSource) Token() (*oauth2.Token, error) {
	form := url.Values{"scope": {t.scope}}

	req, err := http.NewRequestWithContext(
		context.Background(),
		http.MethodPost,
		t.authURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+t.authKey)
	req.Header.Set("RqUID", uuid.NewString())

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: gigachat: token exchange: %w", domain.ErrModelInvocation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: gigachat: read token response: %w", domain.ErrModelInvocation, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gigachat: token exchange (status %d): %s",
			domain.ErrModelInvocation, resp.StatusCode, llm.Truncate(body, 512))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("%w: gigachat: decode token: %w", domain.ErrModelInvocation, err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: gigachat: empty access token", domain.ErrModelInvocation)
	}

	tok := &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   "Bearer",
	}
	if tr.ExpiresAt > 0 {
		tok.Expiry = time.UnixMilli(tr.ExpiresAt)
	}
	return tok, nil
}
