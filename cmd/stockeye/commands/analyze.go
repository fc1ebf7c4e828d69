package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stockeye/internal/scan"
)

// analyzeCmd rates explicit symbols with full detail.
var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL...",
	Short: "Rate one or more symbols",
	Long: `Fetches price history and fundamentals for the given symbols and
prints their seven-level rating with the full rationale.

Example:
  stockeye analyze RELIANCE.NS TCS.NS`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}

	report, err := app.orchestrator.Scan(context.Background(), scan.Request{
		Symbols: args,
		Type:    scan.TypeAnalysis,
	})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	printReport(os.Stdout, report)
	return nil
}
