package cli

import (
	"github.com/spf13/cobra"

	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can call
generate_iac, retrieve_context and validate_iac.

By default, the server communicates over stdio using JSON-RPC.
Use --http to serve streamable HTTP instead.

Examples:
  # Stdio mode (for desktop assistants)
  iacgen mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  iacgen mcp serve --http :8090

Assistant configuration:
  {
    "mcpServers": {
      "iacgen": {
        "command": "/path/to/iacgen",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "HTTP listen address (empty = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{}
	if services != nil {
		ports.Generation = services.Generation
		ports.Retrieval = services.Retrieval
		ports.Settings = services.Settings
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
