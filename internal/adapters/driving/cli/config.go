package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change configuration",
	Long: `View and change iacgen settings.

Values resolve in order: environment variables, the config file, defaults.
Changes are written to config.toml in the config directory and take
effect on the next run.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY [VALUE]",
	Short: "Set a configuration value",
	Long: `Set a configuration value in config.toml.

When VALUE is omitted it is read from stdin. On a terminal the input is
hidden, which keeps API keys out of shell history.

Examples:
  iacgen config set llm.provider groq
  iacgen config set llm.api_key
  iacgen config set chunking.chunk_size 800`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the embedding and LLM providers respond",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
	for _, e := range svc.Entries() {
		value := e.Value
		if value == "" {
			value = "(not set)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Key, value, e.Source)
	}
	return w.Flush()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		cmd.Printf("Value for %s: ", key)
		value, err = readSecret(cmd.InOrStdin())
		cmd.Println()
		if err != nil {
			return fmt.Errorf("reading value: %w", err)
		}
	}

	if err := svc.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	if svc.IsSecret(key) {
		cmd.Printf("Set %s.\n", key)
	} else {
		cmd.Printf("Set %s = %s.\n", key, value)
	}
	return nil
}

func runConfigCheck(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	failed := false
	check := func(name string, fn func() error) {
		if err := fn(); err != nil {
			failed = true
			cmd.Printf("%-10s FAIL  %v\n", name, err)
			return
		}
		cmd.Printf("%-10s OK\n", name)
	}
	check("embedding", svc.ValidateEmbeddingConfig)
	check("llm", svc.ValidateLLMConfig)

	if failed {
		return errors.New("provider check failed")
	}
	return nil
}

// readSecret reads a line from in, hiding input when stdin is a terminal.
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
