package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stockeye/internal/api"
	"stockeye/internal/scheduler"
	"stockeye/internal/scheduler/jobs"
)

var (
	servePort        string
	serveWithJobs    bool
	serveJobUniverse string
)

// serveCmd starts the HTTP API server, optionally with scheduled scans.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                 - Health check
  POST /api/scan               - Run a scan
  GET  /api/universes          - List predefined universes
  GET  /api/watchlist          - Read the watchlist
  POST /api/watchlist          - Add/remove watchlist symbols
  POST /api/watchlist/analyze  - Rate the whole watchlist

Example:
  stockeye serve --port 8080 --jobs`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "override API port")
	serveCmd.Flags().BoolVar(&serveWithJobs, "jobs", false, "run scheduled scans")
	serveCmd.Flags().StringVar(&serveJobUniverse, "job-universe", "nifty50", "universe for the scheduled scan")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}
	if servePort != "" {
		app.cfg.Port = servePort
	}

	handler := api.NewHandler(app.orchestrator, app.store, app.log)
	router := api.NewRouter(handler, app.log)
	server := api.New(app.cfg, app.log, router)

	var sched *scheduler.Scheduler
	if serveWithJobs {
		sched = scheduler.New(app.log)
		if err := sched.AddJob(jobs.NewWatchlistScanJob(app.orchestrator, app.store, "", app.log)); err != nil {
			return fmt.Errorf("schedule watchlist scan: %w", err)
		}
		if err := sched.AddJob(jobs.NewUniverseScanJob(app.orchestrator, app.store, serveJobUniverse, "", app.log)); err != nil {
			return fmt.Errorf("schedule universe scan: %w", err)
		}
		sched.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		app.log.WithField("signal", sig.String()).Info("Shutting down")
	}

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
