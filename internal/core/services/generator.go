package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driving"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
)

// Ensure GenerationService implements the interface.
var _ driving.GenerationService = (*GenerationService)(nil)

// GenerationService runs the retrieve, prompt, complete, sanitize and
// validate pipeline for one request.
type GenerationService struct {
	retriever driving.RetrievalService
	prompts   *PromptAssembler
	llm       driven.LLMService
	validator driven.CodeValidator
	artifacts driven.ArtifactWriter
	topK      int
}

// NewGenerationService creates a generation service.
// artifacts may be nil, in which case save requests fail.
func NewGenerationService(
	retriever driving.RetrievalService,
	prompts *PromptAssembler,
	llm driven.LLMService,
	validator driven.CodeValidator,
	artifacts driven.ArtifactWriter,
	topK int,
) *GenerationService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &GenerationService{
		retriever: retriever,
		prompts:   prompts,
		llm:       llm,
		validator: validator,
		artifacts: artifacts,
		topK:      topK,
	}
}

// Generate produces IaC for the request. Output that fails validation is
// returned with IsValid false and is never saved.
func (s *GenerationService) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return domain.GenerationResult{}, fmt.Errorf("%w: query must not be empty", domain.ErrInvalidInput)
	}
	tool := domain.ParseTool(req.Tool.String())

	logger.Section("Generation")
	logger.Debug("Tool: %s, query: %q", tool, query)

	contextText, err := s.retriever.Context(ctx, query, s.topK)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("retrieving context: %w", err)
	}
	if contextText == "" {
		logger.Debug("No reference documentation retrieved")
	}

	prompt, err := s.prompts.Build(contextText, query, tool)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	logger.Debug("Calling model %s", s.llm.ModelName())
	raw, err := s.llm.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	code := Sanitize(raw)
	result := domain.GenerationResult{
		Tool:    tool,
		Code:    code,
		IsValid: s.validator.Validate(ctx, code, tool),
	}
	logger.Info("Generated %d bytes of %s, valid=%t", len(code), tool, result.IsValid)

	if req.Save && result.IsValid {
		path, err := s.save(tool, code)
		if err != nil {
			return result, err
		}
		result.SavedPath = path
	}

	return result, nil
}

// Validate reports whether code is well-formed for tool.
func (s *GenerationService) Validate(ctx context.Context, code string, tool domain.Tool) bool {
	return s.validator.Validate(ctx, code, domain.ParseTool(tool.String()))
}

func (s *GenerationService) save(tool domain.Tool, code string) (string, error) {
	if s.artifacts == nil {
		return "", errors.New("saving artifacts is not configured")
	}
	path, err := s.artifacts.Save(tool, code)
	if err != nil {
		return "", fmt.Errorf("saving artifact: %w", err)
	}
	logger.Info("Saved %s", path)
	return path, nil
}
