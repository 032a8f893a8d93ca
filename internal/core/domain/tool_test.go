package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTool(t *testing.T) {
	tests := []struct {
		in   string
		want Tool
	}{
		{"", ToolTerraform},
		{"  ", ToolTerraform},
		{"terraform", ToolTerraform},
		{"Ansible", ToolAnsible},
		{" PULUMI ", Tool("pulumi")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTool(tt.in))
		})
	}
}

func TestTool_Known(t *testing.T) {
	assert.True(t, ToolTerraform.Known())
	assert.True(t, ToolAnsible.Known())
	assert.False(t, Tool("unknown").Known())
}

func TestTool_Extension(t *testing.T) {
	assert.Equal(t, "tf", ToolTerraform.Extension())
	assert.Equal(t, "yml", ToolAnsible.Extension())
	assert.Equal(t, "txt", Tool("chef").Extension())
}

func TestTool_Grammar(t *testing.T) {
	assert.Contains(t, ToolTerraform.Grammar(), "HCL")
	assert.Contains(t, ToolAnsible.Grammar(), "YAML")
	assert.Contains(t, Tool("salt").Grammar(), "salt")
}

func TestToolFromExtension(t *testing.T) {
	tool, ok := ToolFromExtension(".tf")
	assert.True(t, ok)
	assert.Equal(t, ToolTerraform, tool)

	tool, ok = ToolFromExtension("YAML")
	assert.True(t, ok)
	assert.Equal(t, ToolAnsible, tool)

	_, ok = ToolFromExtension(".json")
	assert.False(t, ok)
}
