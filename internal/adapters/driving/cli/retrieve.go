package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	retrieveQuery string
	retrieveK     int
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Preview the reference chunks for a query",
	Args:  cobra.NoArgs,
	RunE:  runRetrieve,
}

func init() {
	retrieveCmd.Flags().StringVarP(&retrieveQuery, "query", "q", "", "query to retrieve for")
	retrieveCmd.Flags().IntVarP(&retrieveK, "k", "k", 0, "number of chunks (0 = configured top_k)")
	_ = retrieveCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, _ []string) error {
	svc, err := requireRetrieval()
	if err != nil {
		return err
	}

	result, err := svc.Retrieve(cmd.Context(), retrieveQuery, retrieveK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if result.Empty() {
		cmd.Println("No chunks found.")
		return nil
	}

	for i, rc := range result.Chunks {
		cmd.Printf("[%d] %s #%d (%.3f)\n", i+1, rc.Chunk.Source, rc.Chunk.Position, rc.Score)
		for _, line := range strings.Split(strings.TrimSpace(rc.Chunk.Content), "\n") {
			cmd.Printf("    %s\n", line)
		}
		cmd.Println()
	}
	return nil
}
