package jobs

import (
	"context"
	"fmt"

	"stockeye/internal/scan"
	"stockeye/internal/watchlist"
	"stockeye/pkg/logger"
)

// WatchlistScanJob re-rates the watchlist on schedule.
type WatchlistScanJob struct {
	orchestrator *scan.Orchestrator
	store        *watchlist.Store
	logger       *logger.Logger
	schedule     string
}

// NewWatchlistScanJob creates the job. An empty schedule defaults to
// every weekday at 4 PM.
func NewWatchlistScanJob(o *scan.Orchestrator, store *watchlist.Store, schedule string, log *logger.Logger) *WatchlistScanJob {
	if schedule == "" {
		schedule = "0 0 16 * * 1-5"
	}
	return &WatchlistScanJob{
		orchestrator: o,
		store:        store,
		logger:       log,
		schedule:     schedule,
	}
}

func (j *WatchlistScanJob) Name() string { return "watchlist_scan" }

func (j *WatchlistScanJob) Schedule() string { return j.schedule }

// Run executes the watchlist analysis
func (j *WatchlistScanJob) Run(ctx context.Context) error {
	report, err := j.orchestrator.AnalyzeWatchlist(ctx, j.store, 0)
	if err != nil {
		return fmt.Errorf("watchlist scan: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"scanned":   report.Summary.Scanned,
		"failed":    report.Summary.Failed,
		"qualified": report.Summary.Qualified,
	}).Info("Watchlist scan finished")
	return nil
}

// UniverseScanJob scans a predefined universe for strong buys and
// appends the qualifying symbols to the watchlist.
type UniverseScanJob struct {
	orchestrator *scan.Orchestrator
	store        *watchlist.Store
	logger       *logger.Logger
	universe     string
	schedule     string
}

// NewUniverseScanJob creates the job. An empty schedule defaults to
// every weekday at 5 PM, after the close.
func NewUniverseScanJob(o *scan.Orchestrator, store *watchlist.Store, universe, schedule string, log *logger.Logger) *UniverseScanJob {
	if schedule == "" {
		schedule = "0 0 17 * * 1-5"
	}
	return &UniverseScanJob{
		orchestrator: o,
		store:        store,
		logger:       log,
		universe:     universe,
		schedule:     schedule,
	}
}

func (j *UniverseScanJob) Name() string { return "universe_scan_" + j.universe }

func (j *UniverseScanJob) Schedule() string { return j.schedule }

// Run scans the universe and exports strong buys
func (j *UniverseScanJob) Run(ctx context.Context) error {
	symbols, ok := scan.Universe(j.universe)
	if !ok {
		return fmt.Errorf("unknown universe %q", j.universe)
	}

	report, err := j.orchestrator.Scan(ctx, scan.Request{
		Symbols: symbols,
		Type:    scan.TypeStrongBuys,
	})
	if err != nil {
		return fmt.Errorf("universe scan: %w", err)
	}

	var qualifying []string
	for _, r := range report.Results {
		if r.Qualified {
			qualifying = append(qualifying, r.Symbol)
		}
	}

	added := 0
	if len(qualifying) > 0 {
		added, err = j.store.Add(qualifying...)
		if err != nil {
			return fmt.Errorf("export to watchlist: %w", err)
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"universe":  j.universe,
		"scanned":   report.Summary.Scanned,
		"qualified": report.Summary.Qualified,
		"added":     added,
	}).Info("Universe scan finished")
	return nil
}
