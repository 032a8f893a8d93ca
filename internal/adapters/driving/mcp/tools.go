package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

// GenerateInput is the input schema for the generate_iac tool.
type GenerateInput struct {
	Query string `json:"query" jsonschema:"natural-language description of the infrastructure to create"`
	Tool  string `json:"tool,omitempty" jsonschema:"target IaC tool: terraform (default) or ansible"`
	Save  bool   `json:"save,omitempty" jsonschema:"write valid output to the server's output directory"`
}

// GenerateOutput is the output schema for the generate_iac tool.
type GenerateOutput struct {
	Tool      string `json:"tool"`
	IsValid   bool   `json:"is_valid"`
	Code      string `json:"code"`
	SavedPath string `json:"saved_path,omitempty"`
}

// RetrieveInput is the input schema for the retrieve_context tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"text to find reference documentation for"`
	K     int    `json:"k,omitempty" jsonschema:"number of chunks to return (default: configured top_k)"`
}

// RetrieveOutput is the output schema for the retrieve_context tool.
type RetrieveOutput struct {
	Chunks []ChunkOutput `json:"chunks"`
	Count  int           `json:"count"`
}

// ChunkOutput is one retrieved chunk.
type ChunkOutput struct {
	Source   string  `json:"source"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
	Content  string  `json:"content"`
}

// ValidateInput is the input schema for the validate_iac tool.
type ValidateInput struct {
	Code string `json:"code" jsonschema:"the configuration text to check"`
	Tool string `json:"tool,omitempty" jsonschema:"terraform (default) or ansible"`
}

// ValidateOutput is the output schema for the validate_iac tool.
type ValidateOutput struct {
	Tool    string `json:"tool"`
	IsValid bool   `json:"is_valid"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_iac",
		Description: "Generate Terraform or Ansible code grounded in the indexed documentation",
	}, s.handleGenerate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_context",
		Description: "Return the documentation chunks most similar to a query",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_iac",
		Description: "Check that Terraform (HCL) or Ansible (YAML) code parses",
	}, s.handleValidate)
}

func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	result, err := s.ports.Generation.Generate(ctx, domain.GenerationRequest{
		Query: input.Query,
		Tool:  domain.ParseTool(input.Tool),
		Save:  input.Save,
	})
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	return nil, GenerateOutput{
		Tool:      result.Tool.String(),
		IsValid:   result.IsValid,
		Code:      result.Code,
		SavedPath: result.SavedPath,
	}, nil
}

func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	result, err := s.ports.Retrieval.Retrieve(ctx, input.Query, input.K)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Chunks: make([]ChunkOutput, len(result.Chunks)),
		Count:  len(result.Chunks),
	}
	for i, hit := range result.Chunks {
		output.Chunks[i] = ChunkOutput{
			Source:   hit.Chunk.Source,
			Position: hit.Chunk.Position,
			Score:    hit.Score,
			Content:  hit.Chunk.Content,
		}
	}

	return nil, output, nil
}

func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	tool := domain.ParseTool(input.Tool)
	return nil, ValidateOutput{
		Tool:    tool.String(),
		IsValid: s.ports.Generation.Validate(ctx, input.Code, tool),
	}, nil
}
