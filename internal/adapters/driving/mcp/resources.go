package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for iacgen resources.
	uriScheme = "iacgen://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "config",
		Name:        "config",
		Description: "Effective configuration with secrets masked",
		MIMEType:    "application/json",
	}, s.handleConfigResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "tools/{tool}",
		Name:        "iac-tool",
		Description: "Grammar and file extension of a supported IaC tool",
		MIMEType:    "application/json",
	}, s.handleToolResource)
}

// handleConfigResource lists every config key with its value and source.
func (s *Server) handleConfigResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type entryInfo struct {
		Key    string `json:"key"`
		Value  string `json:"value"`
		Source string `json:"source"`
	}

	infos := []entryInfo{}
	if s.ports.Settings != nil {
		for _, e := range s.ports.Settings.Entries() {
			infos = append(infos, entryInfo{Key: e.Key, Value: e.Value, Source: e.Source})
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleToolResource describes one tool.
func (s *Server) handleToolResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	tool := domain.Tool(extractTool(req.Params.URI))
	if !tool.Known() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, struct {
		Tool      string `json:"tool"`
		Grammar   string `json:"grammar"`
		Extension string `json:"extension"`
	}{
		Tool:      tool.String(),
		Grammar:   tool.Grammar(),
		Extension: tool.Extension(),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTool extracts the tool name from a URI like iacgen://tools/{tool}.
func extractTool(uri string) string {
	const prefix = uriScheme + "tools/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.ToLower(strings.TrimPrefix(uri, prefix))
}
