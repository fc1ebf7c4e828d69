package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// watchCmd manages and analyzes the persistent watchlist.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage the watchlist",
}

var watchAddCmd = &cobra.Command{
	Use:   "add SYMBOL...",
	Short: "Add symbols to the watchlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}
		added, err := app.store.Add(args...)
		if err != nil {
			return err
		}
		fmt.Printf("added %d symbols\n", added)
		return nil
	},
}

var watchRemoveCmd = &cobra.Command{
	Use:   "remove SYMBOL...",
	Short: "Remove symbols from the watchlist",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}
		removed, err := app.store.Remove(args...)
		if err != nil {
			return err
		}
		fmt.Printf("removed %d symbols\n", removed)
		return nil
	},
}

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the watchlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}
		symbols, err := app.store.Load()
		if err != nil {
			return err
		}
		if len(symbols) == 0 {
			fmt.Println("watchlist is empty")
			return nil
		}
		for _, s := range symbols {
			fmt.Println(s)
		}
		return nil
	},
}

var watchAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rate every symbol on the watchlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup()
		if err != nil {
			return err
		}
		report, err := app.orchestrator.AnalyzeWatchlist(context.Background(), app.store, 0)
		if err != nil {
			return err
		}
		printReport(os.Stdout, report)
		return nil
	},
}

func init() {
	watchCmd.AddCommand(watchAddCmd, watchRemoveCmd, watchListCmd, watchAnalyzeCmd)
	rootCmd.AddCommand(watchCmd)
}
