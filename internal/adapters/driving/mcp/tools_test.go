package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

func TestServer_handleGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns generation result", func(t *testing.T) {
		ports, gen, _ := testPorts()
		gen.result = domain.GenerationResult{
			Tool:      domain.ToolAnsible,
			IsValid:   true,
			Code:      "- hosts: all",
			SavedPath: "output/ansible_x.yml",
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleGenerate(ctx, nil, GenerateInput{Query: "nginx", Tool: "Ansible", Save: true})
		require.NoError(t, err)

		assert.Equal(t, GenerateOutput{
			Tool:      "ansible",
			IsValid:   true,
			Code:      "- hosts: all",
			SavedPath: "output/ansible_x.yml",
		}, output)
		assert.Equal(t, domain.ToolAnsible, gen.request.Tool)
		assert.True(t, gen.request.Save)
	})

	t.Run("tool defaults to terraform", func(t *testing.T) {
		ports, gen, _ := testPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleGenerate(ctx, nil, GenerateInput{Query: "bucket"})
		require.NoError(t, err)
		assert.Equal(t, domain.ToolTerraform, gen.request.Tool)
	})

	t.Run("returns pipeline error", func(t *testing.T) {
		ports, gen, _ := testPorts()
		gen.err = domain.ErrStoreUnavailable
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleGenerate(ctx, nil, GenerateInput{Query: "bucket"})
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestServer_handleRetrieve(t *testing.T) {
	ports, _, ret := testPorts()
	ret.result = domain.RetrievalResult{Chunks: []domain.RetrievedChunk{
		{Chunk: domain.Chunk{Source: "s3.md", Position: 2, Content: "bucket docs"}, Score: 0.9},
	}}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleRetrieve(context.Background(), nil, RetrieveInput{Query: "bucket", K: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, ret.k)
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, ChunkOutput{Source: "s3.md", Position: 2, Score: 0.9, Content: "bucket docs"}, output.Chunks[0])
}

func TestServer_handleValidate(t *testing.T) {
	ports, gen, _ := testPorts()
	gen.valid = true
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleValidate(context.Background(), nil, ValidateInput{Code: "x = 1"})
	require.NoError(t, err)

	assert.True(t, output.IsValid)
	assert.Equal(t, "terraform", output.Tool)
	assert.Equal(t, domain.ToolTerraform, gen.tool)
}
