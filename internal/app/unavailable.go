package app

import (
	"context"
	"fmt"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

var (
	_ driven.LLMService       = (*unavailableLLM)(nil)
	_ driven.EmbeddingService = (*unavailableEmbedder)(nil)
)

// unavailableLLM stands in for a model backend that could not be created.
type unavailableLLM struct {
	provider domain.AIProvider
	err      error
}

func (u *unavailableLLM) fail() error {
	return fmt.Errorf("%w: llm provider %s: %w", domain.ErrModelInvocation, u.provider, u.err)
}

func (u *unavailableLLM) Complete(context.Context, string, string) (string, error) {
	return "", u.fail()
}

func (u *unavailableLLM) ModelName() string          { return "unavailable" }
func (u *unavailableLLM) Ping(context.Context) error { return u.fail() }
func (u *unavailableLLM) Close() error               { return nil }

// unavailableEmbedder stands in for an embedding backend that could not be created.
type unavailableEmbedder struct {
	provider domain.AIProvider
	err      error
}

func (u *unavailableEmbedder) fail() error {
	return fmt.Errorf("%w: embedding provider %s: %w", domain.ErrEmbeddingUnavailable, u.provider, u.err)
}

func (u *unavailableEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, u.fail()
}

func (u *unavailableEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, u.fail()
}

func (u *unavailableEmbedder) Dimensions() int            { return 0 }
func (u *unavailableEmbedder) ModelName() string          { return "unavailable" }
func (u *unavailableEmbedder) Ping(context.Context) error { return u.fail() }
func (u *unavailableEmbedder) Close() error               { return nil }
