package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

var validateTool string

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a Terraform or Ansible file for syntax errors",
	Long: `Parses FILE with the validator for its tool. The tool is inferred from
the extension (.tf, .yml, .yaml) unless --tool is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateTool, "tool", "t", "", "terraform or ansible (default: from extension)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	svc, err := requireGeneration()
	if err != nil {
		return err
	}

	path := args[0]
	tool, err := toolFor(path, validateTool)
	if err != nil {
		return err
	}

	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if !svc.Validate(cmd.Context(), string(code), tool) {
		cmd.Printf("%s: invalid %s\n", path, tool)
		return ErrValidationFailed
	}
	cmd.Printf("%s: valid %s\n", path, tool)
	return nil
}

func toolFor(path, flag string) (domain.Tool, error) {
	if flag != "" {
		return domain.ParseTool(flag), nil
	}
	tool, ok := domain.ToolFromExtension(filepath.Ext(path))
	if !ok {
		return "", fmt.Errorf("%w: cannot infer tool from %q, use --tool", domain.ErrInvalidInput, path)
	}
	return tool, nil
}
