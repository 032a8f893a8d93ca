package mcp

import (
	"context"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// mockGenerationService is a mock implementation of driving.GenerationService.
type mockGenerationService struct {
	result  domain.GenerationResult
	err     error
	valid   bool
	request domain.GenerationRequest
	tool    domain.Tool
}

func (m *mockGenerationService) Generate(_ context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	m.request = req
	return m.result, m.err
}

func (m *mockGenerationService) Validate(_ context.Context, _ string, tool domain.Tool) bool {
	m.tool = tool
	return m.valid
}

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	result domain.RetrievalResult
	err    error
	k      int
}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, k int) (domain.RetrievalResult, error) {
	m.k = k
	return m.result, m.err
}

func (m *mockRetrievalService) Context(_ context.Context, _ string, k int) (string, error) {
	m.k = k
	return m.result.Text(), m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	entries []domain.ConfigEntry
}

func (m *mockSettingsService) Config() domain.Config          { return domain.Config{} }
func (m *mockSettingsService) Entries() []domain.ConfigEntry  { return m.entries }
func (m *mockSettingsService) Set(_, _ string) error          { return nil }
func (m *mockSettingsService) IsSecret(_ string) bool         { return false }
func (m *mockSettingsService) ValidateEmbeddingConfig() error { return nil }
func (m *mockSettingsService) ValidateLLMConfig() error       { return nil }

func testPorts() (*Ports, *mockGenerationService, *mockRetrievalService) {
	gen := &mockGenerationService{}
	ret := &mockRetrievalService{}
	return &Ports{Generation: gen, Retrieval: ret}, gen, ret
}
