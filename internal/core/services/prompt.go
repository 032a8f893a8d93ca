package services

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

// promptData is the value the system template is rendered with.
type promptData struct {
	Tool      string
	Grammar   string
	Extension string
	Context   string
}

// PromptAssembler renders the system instructions for a generation.
type PromptAssembler struct {
	prompts driven.PromptStore
}

// NewPromptAssembler creates an assembler over the given template store.
func NewPromptAssembler(prompts driven.PromptStore) *PromptAssembler {
	return &PromptAssembler{prompts: prompts}
}

// Build renders the system prompt with the retrieved context and pairs it
// with the trimmed query. An empty context renders the template's
// no-documentation branch.
func (a *PromptAssembler) Build(contextText, query string, tool domain.Tool) (domain.Prompt, error) {
	text, err := a.prompts.Load(driven.PromptSystem)
	if err != nil {
		return domain.Prompt{}, fmt.Errorf("loading system prompt: %w", err)
	}

	tmpl, err := template.New(driven.PromptSystem).Option("missingkey=error").Parse(text)
	if err != nil {
		return domain.Prompt{}, fmt.Errorf("parsing system prompt: %w", err)
	}

	var sb strings.Builder
	err = tmpl.Execute(&sb, promptData{
		Tool:      tool.String(),
		Grammar:   tool.Grammar(),
		Extension: tool.Extension(),
		Context:   strings.TrimSpace(contextText),
	})
	if err != nil {
		return domain.Prompt{}, fmt.Errorf("rendering system prompt: %w", err)
	}

	return domain.Prompt{
		System: strings.TrimSpace(sb.String()),
		User:   strings.TrimSpace(query),
	}, nil
}
