package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockeye/internal/marketdata"
	"stockeye/internal/scan"
	"stockeye/internal/strategy"
	"stockeye/internal/watchlist"
	"stockeye/pkg/config"
	"stockeye/pkg/logger"
)

var (
	// Global flags
	strategyFile string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockeye",
	Short: "Equity rating scanner",
	Long: `StockEye rates equities on a seven-level scale by combining
technical signals, fundamental scores and market context.

Examples:
  stockeye analyze RELIANCE.NS TCS.NS
  stockeye scan --universe nifty50 --type strong-buys --limit 10
  stockeye watch add INFY.NS
  stockeye serve`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML file (default is built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// app bundles the wired components every command needs.
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	strategy     *strategy.Config
	orchestrator *scan.Orchestrator
	store        *watchlist.Store
}

// setup loads config and wires the scan pipeline.
func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	strat, err := loadStrategy(cfg, log)
	if err != nil {
		return nil, err
	}

	provider := marketdata.NewYahooClient(cfg.Provider, log)
	orchestrator, err := scan.NewOrchestrator(provider, strat, scan.Options{
		Concurrency:  cfg.Scan.Concurrency,
		Deadline:     cfg.Scan.Deadline,
		MaxRetries:   cfg.Provider.MaxRetries,
		RetryBackoff: 0, // default backoff
	}, log)
	if err != nil {
		return nil, fmt.Errorf("build orchestrator: %w", err)
	}

	return &app{
		cfg:          cfg,
		log:          log,
		strategy:     strat,
		orchestrator: orchestrator,
		store:        watchlist.NewStore(cfg.WatchlistPath, log),
	}, nil
}

func loadStrategy(cfg *config.Config, log *logger.Logger) (*strategy.Config, error) {
	path := strategyFile
	if path == "" {
		path = cfg.StrategyFile
	}
	if path == "" {
		return strategy.Default(), nil
	}

	strat, _, err := strategy.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}

	hash, err := strategy.Hash(strat)
	if err == nil {
		log.WithFields(map[string]interface{}{
			"file": path,
			"hash": hash[:12],
		}).Info("Strategy loaded")
	}
	return strat, nil
}
