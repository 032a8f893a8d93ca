package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driving"
)

// Ensure Client implements the interface.
var _ driving.GenerationService = (*Client)(nil)

// DefaultClientTimeout covers retrieval plus a slow model call.
const DefaultClientTimeout = 2 * time.Minute

// Client calls a remote REST API. The API has no validation route, so
// Validate always reports false.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.http = c
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultClientTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate posts the request to /api/v1/generate.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	body, err := json.Marshal(GenerateRequest{
		Query:   req.Query,
		IaCTool: req.Tool.String(),
		Save:    req.Save,
	})
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathGenerate, bytes.NewReader(body))
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("%w: %w", domain.ErrModelInvocation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		detail := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &e) == nil && e.Detail != "" {
			detail = e.Detail
		}
		return domain.GenerationResult{}, fmt.Errorf("%w: server returned %d: %s",
			sentinelFor(resp.StatusCode), resp.StatusCode, detail)
	}

	var result domain.GenerationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return domain.GenerationResult{}, fmt.Errorf("decode response: %w", err)
	}
	return result, nil
}

// Validate reports false.
func (c *Client) Validate(_ context.Context, _ string, _ domain.Tool) bool {
	return false
}

// sentinelFor maps an API status back to a domain error.
func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	case http.StatusServiceUnavailable:
		return domain.ErrStoreUnavailable
	default:
		return domain.ErrModelInvocation
	}
}
