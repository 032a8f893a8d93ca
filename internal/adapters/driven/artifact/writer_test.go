package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}
}

func TestWriter_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	w := NewWriter(dir, WithClock(fixedClock()))

	tests := []struct {
		tool domain.Tool
		name string
	}{
		{tool: domain.ToolTerraform, name: "terraform_20260314_092653.tf"},
		{tool: domain.ToolAnsible, name: "ansible_20260314_092653.yml"},
		{tool: "pulumi", name: "pulumi_20260314_092653.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.tool.String(), func(t *testing.T) {
			path, err := w.Save(tt.tool, "code for "+tt.tool.String())
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.name), path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "code for "+tt.tool.String(), string(data))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o644), info.Mode().Perm()&0o644)
		})
	}
}

func TestWriter_SameSecond(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, WithClock(fixedClock()))

	first, err := w.Save(domain.ToolTerraform, "a")
	require.NoError(t, err)
	second, err := w.Save(domain.ToolTerraform, "b")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "terraform_20260314_092653_1.tf", filepath.Base(second))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "a", string(data), "earlier artifact must not be overwritten")
}

func TestWriter_DirIsFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(dir, nil, 0o644))

	_, err := NewWriter(dir).Save(domain.ToolTerraform, "x")
	assert.Error(t, err)
}
