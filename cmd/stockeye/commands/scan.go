package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stockeye/internal/scan"
)

var (
	scanUniverse string
	scanTypeName string
	scanLimit    int
	scanExport   bool
)

// scanCmd runs a rating scan over a universe.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a universe of symbols",
	Long: `Runs the rating pipeline over a predefined universe and prints the
ordered results.

Scan types:
  analysis      rate everything, best rating first
  strong-buys   BUY or better
  fundamentals  F-Score >= 8, by fundamental strength
  value         strong fundamentals at depressed RSI

Example:
  stockeye scan --universe nifty50 --type strong-buys --limit 10 --export`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanUniverse, "universe", "nifty50",
		"universe to scan ("+strings.Join(scan.UniverseNames(), ", ")+")")
	scanCmd.Flags().StringVar(&scanTypeName, "type", "analysis", "scan type")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "truncate results after sorting (0 = all)")
	scanCmd.Flags().BoolVar(&scanExport, "export", false, "append qualifying symbols to the watchlist")
}

func runScan(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}

	symbols, ok := scan.Universe(scanUniverse)
	if !ok {
		return fmt.Errorf("unknown universe %q (have: %s)",
			scanUniverse, strings.Join(scan.UniverseNames(), ", "))
	}
	scanType, ok := scan.ParseType(scanTypeName)
	if !ok {
		return fmt.Errorf("unknown scan type %q", scanTypeName)
	}

	report, err := app.orchestrator.Scan(context.Background(), scan.Request{
		Symbols: symbols,
		Type:    scanType,
		Limit:   scanLimit,
	})
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	printReport(os.Stdout, report)

	if scanExport {
		var qualifying []string
		for _, r := range report.Results {
			if r.Qualified {
				qualifying = append(qualifying, r.Symbol)
			}
		}
		if len(qualifying) == 0 {
			fmt.Println("nothing to export")
			return nil
		}
		added, err := app.store.Add(qualifying...)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("exported %d symbols to watchlist (%d new)\n", len(qualifying), added)
	}
	return nil
}
