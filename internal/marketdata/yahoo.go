package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"stockeye/internal/fundamentals"
	"stockeye/internal/indicators"
	"stockeye/pkg/config"
	"stockeye/pkg/httputil"
	"stockeye/pkg/logger"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// YahooClient fetches prices, fundamentals and company profiles from the
// Yahoo Finance endpoints. Retries are disabled on the underlying HTTP
// client; the scan orchestrator owns the retry policy.
type YahooClient struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	chartBaseURL string
	quoteBaseURL string
}

// NewYahooClient creates a provider from the configured endpoints and
// rate limits.
func NewYahooClient(cfg config.ProviderConfig, log *logger.Logger) *YahooClient {
	httpClient := httputil.New(cfg.RequestTimeout, log).
		DisableRetry().
		WithRateLimit(cfg.RatePerSecond, cfg.RateBurst)

	return &YahooClient{
		httpClient:   httpClient,
		logger:       log,
		chartBaseURL: strings.TrimRight(cfg.ChartBaseURL, "/"),
		quoteBaseURL: strings.TrimRight(cfg.QuoteBaseURL, "/"),
	}
}

// chartResponse mirrors the chart API envelope.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetPriceHistory fetches daily bars covering the lookback window,
// oldest first. Bars with missing fields are skipped.
func (c *YahooClient) GetPriceHistory(ctx context.Context, symbol string, lookback time.Duration) (indicators.Series, error) {
	now := time.Now()
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.chartBaseURL, symbol, now.Add(-lookback).Unix(), now.Unix())

	body, err := c.fetchJSON(ctx, symbol, fullURL)
	if err != nil {
		return nil, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse chart response: %w", err)
	}

	if e := parsed.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("%s: %w", symbol, ErrInvalidSymbol)
		}
		return nil, fmt.Errorf("chart error for %s: %s", symbol, e.Description)
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrInvalidSymbol)
	}

	result := parsed.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := make(indicators.Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bar, ok := barAt(quote.Open, quote.High, quote.Low, quote.Close, quote.Volume, i)
		if !ok {
			continue
		}
		bar.Date = time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		if n := len(series); n > 0 && !series[n-1].Date.Before(bar.Date) {
			continue // duplicate trading day
		}
		series = append(series, bar)
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("chart data for %s: %w", symbol, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(series),
	}).Debug("Fetched price history")
	return series, nil
}

func barAt(open, high, low, closes, volume []*float64, i int) (indicators.Bar, bool) {
	get := func(vals []*float64) (float64, bool) {
		if i >= len(vals) || vals[i] == nil {
			return 0, false
		}
		return *vals[i], true
	}

	o, ok1 := get(open)
	h, ok2 := get(high)
	l, ok3 := get(low)
	cl, ok4 := get(closes)
	v, ok5 := get(volume)
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return indicators.Bar{}, false
	}
	return indicators.Bar{Open: o, High: h, Low: l, Close: cl, Volume: int64(v)}, true
}

// quoteSummaryResponse mirrors the quoteSummary API envelope. Every
// metric arrives as an optional {raw, fmt} pair.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData struct {
				ReturnOnEquity   rawValue `json:"returnOnEquity"`
				DebtToEquity     rawValue `json:"debtToEquity"`
				RevenueGrowth    rawValue `json:"revenueGrowth"`
				ProfitMargins    rawValue `json:"profitMargins"`
				OperatingMargins rawValue `json:"operatingMargins"`
				EBITDAMargins    rawValue `json:"ebitdaMargins"`
				CurrentRatio     rawValue `json:"currentRatio"`
				QuickRatio       rawValue `json:"quickRatio"`
			} `json:"financialData"`
			KeyStatistics struct {
				PriceToBook         rawValue `json:"priceToBook"`
				PEGRatio            rawValue `json:"pegRatio"`
				Beta                rawValue `json:"beta"`
				HeldPercentInsiders rawValue `json:"heldPercentInsiders"`
			} `json:"defaultKeyStatistics"`
			SummaryDetail struct {
				TrailingPE    rawValue `json:"trailingPE"`
				DividendYield rawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

// GetFundamentals fetches the financial snapshot. Metrics the provider
// omits stay nil; the scorer treats them as unmet.
func (c *YahooClient) GetFundamentals(ctx context.Context, symbol string) (*fundamentals.Snapshot, error) {
	fullURL := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=financialData,defaultKeyStatistics,summaryDetail",
		c.quoteBaseURL, symbol)

	body, err := c.fetchJSON(ctx, symbol, fullURL)
	if err != nil {
		return nil, err
	}

	var parsed quoteSummaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse quote summary: %w", err)
	}
	if e := parsed.QuoteSummary.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("%s: %w", symbol, ErrInvalidSymbol)
		}
		return nil, fmt.Errorf("quote summary error for %s: %s", symbol, e.Description)
	}
	if len(parsed.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrInvalidSymbol)
	}

	r := parsed.QuoteSummary.Result[0]
	snap := &fundamentals.Snapshot{
		ROE:             r.FinancialData.ReturnOnEquity.Raw,
		RevenueGrowth:   r.FinancialData.RevenueGrowth.Raw,
		ProfitMargin:    r.FinancialData.ProfitMargins.Raw,
		OperatingMargin: r.FinancialData.OperatingMargins.Raw,
		EBITDAMargin:    r.FinancialData.EBITDAMargins.Raw,
		CurrentRatio:    r.FinancialData.CurrentRatio.Raw,
		QuickRatio:      r.FinancialData.QuickRatio.Raw,
		PriceToBook:     r.KeyStatistics.PriceToBook.Raw,
		PEG:             r.KeyStatistics.PEGRatio.Raw,
		Beta:            r.KeyStatistics.Beta.Raw,
		PE:              r.SummaryDetail.TrailingPE.Raw,
		DividendYield:   r.SummaryDetail.DividendYield.Raw,
	}
	// Provider reports D/E as a percentage and insider holding as a
	// fraction; normalize both to the scorer's scales.
	if v := r.FinancialData.DebtToEquity.Raw; v != nil {
		de := *v / 100
		snap.DebtToEquity = &de
	}
	if v := r.KeyStatistics.HeldPercentInsiders.Raw; v != nil {
		held := *v * 100
		snap.PromoterHolding = &held
	}

	return snap, nil
}

// GetCompanyInfo scrapes the profile page for name and sector.
func (c *YahooClient) GetCompanyInfo(ctx context.Context, symbol string) (*CompanyInfo, error) {
	fullURL := fmt.Sprintf("%s/quote/%s/profile", c.quoteBaseURL, symbol)

	resp, err := c.get(ctx, fullURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := statusError(symbol, resp.StatusCode); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse profile page: %w", err)
	}

	info := &CompanyInfo{
		Symbol: symbol,
		Name:   strings.TrimSpace(doc.Find("h1").First().Text()),
		Sector: strings.TrimSpace(doc.Find(`dd[data-field="sector"] a`).First().Text()),
	}
	if info.Sector == "" {
		info.Sector = strings.TrimSpace(doc.Find(`span.sector`).First().Text())
	}
	if info.Name == "" {
		return nil, fmt.Errorf("%s: %w", symbol, ErrInvalidSymbol)
	}
	return info, nil
}

func (c *YahooClient) get(ctx context.Context, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	return c.httpClient.Do(req)
}

func (c *YahooClient) fetchJSON(ctx context.Context, symbol, fullURL string) ([]byte, error) {
	resp, err := c.get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(symbol, resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

func statusError(symbol string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%s: %w", symbol, ErrInvalidSymbol)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w", symbol, ErrRateLimited)
	default:
		return fmt.Errorf("unexpected status code %d for %s", code, symbol)
	}
}
