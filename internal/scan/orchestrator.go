package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stockeye/internal/fundamentals"
	"stockeye/internal/indicators"
	"stockeye/internal/marketctx"
	"stockeye/internal/marketdata"
	"stockeye/internal/rating"
	"stockeye/internal/strategy"
	"stockeye/internal/watchlist"
	"stockeye/pkg/logger"
)

// Options tunes a scan run. Zero values fall back to defaults.
type Options struct {
	Concurrency     int
	Deadline        time.Duration
	MaxRetries      int
	RetryBackoff    time.Duration
	Lookback        time.Duration
	BenchmarkSymbol string
	VIXSymbol       string
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = 6
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 500 * time.Millisecond
	}
	if o.Lookback <= 0 {
		o.Lookback = 365 * 24 * time.Hour
	}
	if o.BenchmarkSymbol == "" {
		o.BenchmarkSymbol = "^NSEI"
	}
	if o.VIXSymbol == "" {
		o.VIXSymbol = "^INDIAVIX"
	}
	return o
}

// Request describes one scan invocation.
type Request struct {
	Symbols []string
	Type    Type
	Limit   int
}

// Orchestrator drives the rating pipeline across a universe with a
// bounded worker pool. Per-symbol failures are isolated to their
// result; the batch itself only fails on an empty universe.
type Orchestrator struct {
	provider  marketdata.Provider
	calc      *indicators.Calculator
	scorer    *fundamentals.Scorer
	adjuster  *marketctx.Adjuster
	engine    *rating.Engine
	liquidity strategy.Liquidity
	opts      Options
	logger    *logger.Logger
}

// NewOrchestrator wires the pipeline from a validated strategy config.
func NewOrchestrator(provider marketdata.Provider, cfg *strategy.Config, opts Options, log *logger.Logger) (*Orchestrator, error) {
	adjuster, err := marketctx.NewAdjuster(cfg)
	if err != nil {
		return nil, fmt.Errorf("build context adjuster: %w", err)
	}
	engine, err := rating.NewEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("build rating engine: %w", err)
	}

	return &Orchestrator{
		provider:  provider,
		calc:      indicators.NewCalculator(cfg),
		scorer:    fundamentals.NewScorer(),
		adjuster:  adjuster,
		engine:    engine,
		liquidity: cfg.Liquidity,
		opts:      opts.withDefaults(),
		logger:    log,
	}, nil
}

// seriesCache holds fetched price histories for the lifetime of one
// scan invocation, so a symbol appearing twice is fetched once.
type seriesCache struct {
	mu      sync.Mutex
	entries map[string]indicators.Series
}

func newSeriesCache() *seriesCache {
	return &seriesCache{entries: make(map[string]indicators.Series)}
}

func (c *seriesCache) get(symbol string) (indicators.Series, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[symbol]
	return s, ok
}

func (c *seriesCache) put(symbol string, s indicators.Series) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = s
}

// Scan rates every symbol of the request and returns the ordered,
// truncated report. One symbol's exhausted retries never cancel the
// others; the whole run is bounded by the configured deadline.
func (o *Orchestrator) Scan(ctx context.Context, req Request) (*Report, error) {
	symbols := dedupSymbols(req.Symbols)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("scan: empty universe")
	}

	started := time.Now()
	if o.opts.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.Deadline)
		defer cancel()
	}

	cache := newSeriesCache()
	mctx := o.deriveContext(ctx, cache, started)

	o.logger.WithFields(map[string]interface{}{
		"type":    req.Type.String(),
		"symbols": len(symbols),
		"regime":  mctx.Regime.String(),
	}).Info("Scan started")

	results := make([]Result, len(symbols))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < o.opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = o.scanSymbol(ctx, cache, mctx, symbols[i])
			}
		}()
	}
	for i := range symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := o.finalize(req, mctx, results, started)
	o.logger.WithFields(map[string]interface{}{
		"scanned":   report.Summary.Scanned,
		"failed":    report.Summary.Failed,
		"qualified": report.Summary.Qualified,
		"duration":  report.Duration,
	}).Info("Scan completed")
	return report, nil
}

// AnalyzeWatchlist runs a full analysis scan over the persisted
// watchlist.
func (o *Orchestrator) AnalyzeWatchlist(ctx context.Context, store *watchlist.Store, limit int) (*Report, error) {
	symbols, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("watchlist is empty")
	}
	return o.Scan(ctx, Request{Symbols: symbols, Type: TypeAnalysis, Limit: limit})
}

// deriveContext fetches benchmark and volatility data once per scan.
// Fetch failures degrade to a neutral context rather than failing the
// run.
func (o *Orchestrator) deriveContext(ctx context.Context, cache *seriesCache, now time.Time) marketctx.Context {
	r := &retrier{maxRetries: o.opts.MaxRetries, backoff: o.opts.RetryBackoff}

	var benchmark indicators.Series
	if _, _, err := r.do(ctx, func() error {
		s, err := o.provider.GetPriceHistory(ctx, o.opts.BenchmarkSymbol, o.opts.Lookback)
		if err != nil {
			return err
		}
		benchmark = s
		return nil
	}); err != nil {
		o.logger.WithError(err).Warn("Benchmark fetch failed, regime unknown")
	} else {
		cache.put(o.opts.BenchmarkSymbol, benchmark)
	}

	var vix *float64
	if _, _, err := r.do(ctx, func() error {
		s, err := o.provider.GetPriceHistory(ctx, o.opts.VIXSymbol, 30*24*time.Hour)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			v := s.Last().Close
			vix = &v
		}
		return nil
	}); err != nil {
		o.logger.WithError(err).Warn("VIX fetch failed, volatility band unknown")
	}

	return o.adjuster.Derive(benchmark, vix, now)
}

// scanSymbol runs the full fetch-and-score pipeline for one symbol.
func (o *Orchestrator) scanSymbol(ctx context.Context, cache *seriesCache, mctx marketctx.Context, symbol string) Result {
	res := Result{Symbol: symbol, State: TaskPending}
	r := &retrier{maxRetries: o.opts.MaxRetries, backoff: o.opts.RetryBackoff}

	series, ok := cache.get(symbol)
	if !ok {
		state, attempts, err := r.do(ctx, func() error {
			s, ferr := o.provider.GetPriceHistory(ctx, symbol, o.opts.Lookback)
			if ferr != nil {
				return ferr
			}
			series = s
			return nil
		})
		res.State = state
		res.Attempts = attempts
		if err != nil {
			res.Err = err
			res.Error = err.Error()
			o.logger.WithFields(map[string]interface{}{
				"symbol":   symbol,
				"state":    state.String(),
				"attempts": attempts,
			}).Warn("Symbol fetch failed")
			return res
		}
		cache.put(symbol, series)
	} else {
		res.State = TaskSucceeded
	}

	snap := o.calc.Compute(series)
	res.Snapshot = &snap

	// Fundamentals only pay off for symbols that can pass the
	// liquidity gate; skip the fetch for thin names.
	if o.passesLiquidity(res.Snapshot) {
		var fund *fundamentals.Snapshot
		if _, _, err := r.do(ctx, func() error {
			f, ferr := o.provider.GetFundamentals(ctx, symbol)
			if ferr != nil {
				return ferr
			}
			fund = f
			return nil
		}); err != nil {
			o.logger.WithError(err).WithField("symbol", symbol).Debug("Fundamentals unavailable")
		}
		res.Fundamentals = fund
		res.Scores = o.scorer.Score(fund)

		var info *marketdata.CompanyInfo
		if _, _, err := r.do(ctx, func() error {
			ci, ferr := o.provider.GetCompanyInfo(ctx, symbol)
			if ferr != nil {
				return ferr
			}
			info = ci
			return nil
		}); err != nil {
			o.logger.WithError(err).WithField("symbol", symbol).Debug("Company info unavailable")
		}
		res.Info = info
	} else {
		res.Scores = fundamentals.Scores{Incomplete: true}
	}

	sector := ""
	if res.Info != nil {
		sector = res.Info.Sector
	}
	sctx := o.adjuster.ForSector(mctx, sector)
	oversold, overbought := o.adjuster.RSIBands(sctx)

	res.Breakdown = o.engine.Breakdown(res.Snapshot, res.Scores)
	res.Rating = o.engine.Classify(res.Snapshot, res.Breakdown, sctx, oversold, overbought)
	return res
}

func (o *Orchestrator) passesLiquidity(snap *indicators.Snapshot) bool {
	if snap.AvgVolume != nil && *snap.AvgVolume < o.liquidity.MinAvgVolume {
		return false
	}
	if snap.AvgTradedValue != nil && *snap.AvgTradedValue < o.liquidity.MinAvgTradedValue {
		return false
	}
	return true
}

// finalize qualifies, orders and truncates the raw results.
func (o *Orchestrator) finalize(req Request, mctx marketctx.Context, results []Result, started time.Time) *Report {
	summary := Summary{Scanned: len(results)}
	for i := range results {
		r := &results[i]
		if r.Failed() {
			summary.Failed++
			continue
		}
		r.Qualified = qualifies(req.Type, r)
		if r.Qualified {
			summary.Qualified++
		}
	}

	sortResults(req.Type, results)

	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	return &Report{
		Type:      req.Type,
		Context:   mctx,
		Results:   results,
		Summary:   summary,
		StartedAt: started,
		Duration:  time.Since(started),
	}
}

func qualifies(t Type, r *Result) bool {
	switch t {
	case TypeStrongBuys:
		return r.Rating.Level >= rating.Buy
	case TypeFundamentals:
		return r.Breakdown.FScore >= 8
	case TypeValue:
		return r.Breakdown.FScore >= 8 && r.Snapshot.RSIValue() < 40
	default:
		return true
	}
}

// sortResults orders qualified results by the scan-type key, then
// unqualified, then failed; symbols break every tie so identical scans
// order identically.
func sortResults(t Type, results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := &results[i], &results[j]

		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		if a.Failed() {
			return a.Symbol < b.Symbol
		}
		if a.Qualified != b.Qualified {
			return a.Qualified
		}

		switch t {
		case TypeFundamentals:
			if a.Breakdown.FScore != b.Breakdown.FScore {
				return a.Breakdown.FScore > b.Breakdown.FScore
			}
			if a.Breakdown.Combined != b.Breakdown.Combined {
				return a.Breakdown.Combined > b.Breakdown.Combined
			}
		case TypeValue:
			if a.Breakdown.FScore != b.Breakdown.FScore {
				return a.Breakdown.FScore > b.Breakdown.FScore
			}
			ra, rb := a.Snapshot.RSIValue(), b.Snapshot.RSIValue()
			if ra != rb {
				return ra < rb
			}
		default: // analysis, strong-buys
			if a.Rating.Level != b.Rating.Level {
				return a.Rating.Level > b.Rating.Level
			}
			if a.Breakdown.FScore != b.Breakdown.FScore {
				return a.Breakdown.FScore > b.Breakdown.FScore
			}
		}
		return a.Symbol < b.Symbol
	})
}

func dedupSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
