package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NovemberMoon/iac-generator-rag/internal/core/domain"
)

var (
	generateQuery string
	generateTool  string
	generateSave  bool
	generateJSON  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate infrastructure code from a description",
	Long: `Retrieves reference fragments for the query, asks the configured model
for code in the chosen tool's grammar and checks the answer with a
syntax validator.

Exits non-zero when the code fails validation. Invalid code is still
printed so it can be inspected.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateQuery, "query", "q", "", "description of the infrastructure")
	generateCmd.Flags().StringVarP(&generateTool, "tool", "t", string(domain.DefaultTool), "terraform or ansible")
	generateCmd.Flags().BoolVarP(&generateSave, "save", "s", false, "save valid output to the output directory")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "output the result as JSON")
	_ = generateCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	svc, err := requireGeneration()
	if err != nil {
		return err
	}

	result, err := svc.Generate(cmd.Context(), domain.GenerationRequest{
		Query: generateQuery,
		Tool:  domain.ParseTool(generateTool),
		Save:  generateSave,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if generateJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printResult(cmd, result)
	}

	if !result.IsValid {
		return ErrValidationFailed
	}
	return nil
}

func printResult(cmd *cobra.Command, result domain.GenerationResult) {
	header := fmt.Sprintf("--- %s ---", result.Tool)
	cmd.Println(header)
	cmd.Println(strings.TrimRight(result.Code, "\n"))
	cmd.Println(strings.Repeat("-", len(header)))

	if result.IsValid {
		cmd.Println("Status: valid")
	} else {
		cmd.Println("Status: INVALID")
	}
	if result.SavedPath != "" {
		cmd.Printf("Saved to: %s\n", result.SavedPath)
	}
}
