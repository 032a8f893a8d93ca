package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/httpapi"
	"github.com/NovemberMoon/iac-generator-rag/internal/adapters/driving/tui"
)

var tuiAPI string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal demo.

With --api the TUI is a thin client of a running 'iacgen serve'.

Controls:
  ctrl+g   - Generate
  tab      - Toggle terraform/ansible
  ctrl+s   - Save the last valid result
  ctrl+l   - Clear the query
  f1       - Toggle help
  esc      - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiAPI, "api", "", "REST API base URL, e.g. http://localhost:8080")
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts picks the in-process or remote generation service.
func tuiPorts(api string) *tui.Ports {
	if api != "" {
		return &tui.Ports{Generation: httpapi.NewClient(api), API: api}
	}
	ports := &tui.Ports{}
	if services != nil {
		ports.Generation = services.Generation
		ports.Artifacts = services.Artifacts
	}
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts(tuiAPI))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
