// Package cli implements the iacgen command line.
// It is a driving adapter: commands parse flags, call driving ports and
// print results.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driven"
	"github.com/NovemberMoon/iac-generator-rag/internal/core/ports/driving"
	"github.com/NovemberMoon/iac-generator-rag/internal/logger"
)

// ErrValidationFailed is returned when generated or checked code does not parse.
var ErrValidationFailed = errors.New("output failed syntax validation")

// Services holds the driving ports the commands call.
type Services struct {
	Generation driving.GenerationService
	Retrieval  driving.RetrievalService
	Index      driving.IndexService
	Settings   driving.SettingsService
	Artifacts  driven.ArtifactWriter
}

// Bootstrap builds services from a config directory.
type Bootstrap func(configDir string) (*Services, error)

var (
	version   = "dev"
	configDir string
	verbose   bool

	bootstrap Bootstrap
	services  *Services
)

var rootCmd = &cobra.Command{
	Use:   "iacgen",
	Short: "Generate Terraform and Ansible code from reference docs",
	Long: `iacgen retrieves reference fragments from a local document corpus,
asks a language model for infrastructure code and checks the result
with a syntax validator.

Index the corpus first, then generate:

  iacgen index
  iacgen generate -q "S3 bucket with versioning"
  iacgen generate -t ansible -q "install nginx on ubuntu" -s`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.iacgen)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the function that builds services before a command runs.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices injects ready-made services, bypassing the bootstrap.
func SetServices(s *Services) {
	services = s
}

// Execute runs the root command. Cancelling ctx stops long-running servers.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd == versionCmd || services != nil || bootstrap == nil {
		return nil
	}

	s, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	services = s
	return nil
}

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedProvider):
		return 2
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrEmptyCorpus):
		return 3
	case errors.Is(err, ErrValidationFailed):
		return 4
	case errors.Is(err, domain.ErrModelInvocation), errors.Is(err, domain.ErrEmbeddingUnavailable):
		return 5
	default:
		return 1
	}
}

func requireGeneration() (driving.GenerationService, error) {
	if services == nil || services.Generation == nil {
		return nil, errors.New("generation service not configured")
	}
	return services.Generation, nil
}

func requireRetrieval() (driving.RetrievalService, error) {
	if services == nil || services.Retrieval == nil {
		return nil, errors.New("retrieval service not configured")
	}
	return services.Retrieval, nil
}

func requireIndex() (driving.IndexService, error) {
	if services == nil || services.Index == nil {
		return nil, errors.New("index service not configured")
	}
	return services.Index, nil
}

func requireSettings() (driving.SettingsService, error) {
	if services == nil || services.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return services.Settings, nil
}
