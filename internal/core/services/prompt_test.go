package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
)

func TestPromptAssembler_Build(t *testing.T) {
	a := NewPromptAssembler(fakePrompts{driven.PromptSystem: testTemplate})

	prompt, err := a.Build("  resource docs \n", "  create a bucket  ", domain.ToolTerraform)
	require.NoError(t, err)

	assert.Contains(t, prompt.System, "tool=terraform")
	assert.Contains(t, prompt.System, "grammar="+domain.ToolTerraform.Grammar())
	assert.Contains(t, prompt.System, "ext=tf")
	assert.Contains(t, prompt.System, "context:\nresource docs")
	assert.Equal(t, "create a bucket", prompt.User)
}

func TestPromptAssembler_EmptyContext(t *testing.T) {
	a := NewPromptAssembler(fakePrompts{driven.PromptSystem: testTemplate})

	prompt, err := a.Build("", "install nginx", domain.ToolAnsible)
	require.NoError(t, err)

	assert.Contains(t, prompt.System, "tool=ansible")
	assert.Contains(t, prompt.System, "no context")
	assert.NotContains(t, prompt.System, "context:")
}

func TestPromptAssembler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prompts fakePrompts
		wantErr string
	}{
		{name: "missing template", prompts: fakePrompts{}, wantErr: "loading system prompt"},
		{name: "bad syntax", prompts: fakePrompts{driven.PromptSystem: "{{.Tool"}, wantErr: "parsing system prompt"},
		{name: "unknown field", prompts: fakePrompts{driven.PromptSystem: "{{.Nope}}"}, wantErr: "rendering system prompt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPromptAssembler(tt.prompts).Build("ctx", "q", domain.ToolTerraform)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
