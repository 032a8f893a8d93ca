package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API",
	Long: `Serves the generation pipeline over HTTP.

Endpoints:
  POST /api/v1/generate  {"query": "...", "iac_tool": "terraform", "save": false}
  POST /api/v1/index
  GET  /healthz

The listen address defaults to server.addr from the config.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	gen, err := requireGeneration()
	if err != nil {
		return err
	}

	server, err := httpapi.NewServer(&httpapi.Ports{Generation: gen, Index: services.Index})
	if err != nil {
		return err
	}

	addr := resolveAddr(serveAddr)
	cmd.Printf("REST API listening on %s\n", addr)
	if err := server.Run(cmd.Context(), addr); err != nil {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// resolveAddr prefers the flag, then the configured address.
func resolveAddr(flag string) string {
	if flag != "" {
		return flag
	}
	if services != nil && services.Settings != nil {
		if addr := services.Settings.Config().ServerAddr; addr != "" {
			return addr
		}
	}
	return ":8080"
}
