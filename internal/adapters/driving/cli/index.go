package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the vector store from the docs directory",
	Long: `Reads every supported file under the docs directory, splits it into
chunks, embeds them and publishes a new store generation.

The previous generation stays in use if indexing fails.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	svc, err := requireIndex()
	if err != nil {
		return err
	}

	cmd.Println("Indexing documents...")
	stats, err := svc.Index(cmd.Context())
	if errors.Is(err, domain.ErrEmptyCorpus) {
		cmd.Printf("Warning: %v. Add reference documents to the docs directory and re-run.\n", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Printf("Indexed %d documents into %d chunks in %s.\n",
		stats.Documents, stats.Chunks, stats.Duration.Round(time.Millisecond))
	cmd.Printf("Generation: %s\n", stats.Generation)
	return nil
}
