package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"stockeye/internal/fundamentals"
	"stockeye/internal/indicators"
	"stockeye/internal/marketdata"
	"stockeye/internal/scan"
	"stockeye/internal/strategy"
	"stockeye/internal/watchlist"
	"stockeye/pkg/logger"
)

type stubProvider struct {
	series indicators.Series
}

func (p *stubProvider) GetPriceHistory(ctx context.Context, symbol string, _ time.Duration) (indicators.Series, error) {
	if p.series == nil {
		return nil, fmt.Errorf("%s: %w", symbol, marketdata.ErrInvalidSymbol)
	}
	return p.series, nil
}

func (p *stubProvider) GetFundamentals(ctx context.Context, symbol string) (*fundamentals.Snapshot, error) {
	return &fundamentals.Snapshot{}, nil
}

func (p *stubProvider) GetCompanyInfo(ctx context.Context, symbol string) (*marketdata.CompanyInfo, error) {
	return &marketdata.CompanyInfo{Symbol: symbol, Name: symbol}, nil
}

func testRouter(t *testing.T) (http.Handler, *watchlist.Store) {
	t.Helper()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(indicators.Series, 30)
	for i := range series {
		c := 100 + float64(i)
		series[i] = indicators.Bar{
			Date: start.AddDate(0, 0, i),
			Open: c, High: c + 1, Low: c - 1, Close: c,
			Volume: 200_000,
		}
	}

	cfg := strategy.Default()
	cfg.Indicators.DMAShort = 2
	cfg.Indicators.DMALong = 3
	cfg.Indicators.RSIPeriod = 3
	cfg.Indicators.MACDFast = 3
	cfg.Indicators.MACDSlow = 6
	cfg.Indicators.MACDSignal = 3
	cfg.Indicators.VolumePeriod = 3
	cfg.Indicators.BollingerPeriod = 3
	cfg.Indicators.SupertrendPeriod = 3
	cfg.Indicators.ADXPeriod = 3

	log := logger.NewNop()
	o, err := scan.NewOrchestrator(&stubProvider{series: series}, cfg,
		scan.Options{Concurrency: 2, RetryBackoff: time.Millisecond}, log)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	store := watchlist.NewStore(filepath.Join(t.TempDir(), "wl.json"), log)
	return NewRouter(NewHandler(o, store, log), log), store
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := testRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestScanEndpoint(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/scan",
		map[string]interface{}{"symbols": []string{"TCS.NS", "INFY.NS"}, "type": "analysis"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var report struct {
		Results []json.RawMessage `json:"results"`
		Summary struct {
			Scanned int `json:"scanned"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Summary.Scanned != 2 || len(report.Results) != 2 {
		t.Fatalf("report = %+v", report)
	}
}

func TestScanEndpointValidation(t *testing.T) {
	router, _ := testRouter(t)

	tests := []struct {
		name string
		body interface{}
		want int
	}{
		{"no symbols", map[string]interface{}{}, http.StatusBadRequest},
		{"unknown universe", map[string]interface{}{"universe": "ftse"}, http.StatusBadRequest},
		{"unknown type", map[string]interface{}{"symbols": []string{"X"}, "type": "moonshots"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/api/scan", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestWatchlistEndpoints(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/watchlist",
		map[string]interface{}{"add": []string{"TCS.NS", "INFY.NS"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/watchlist", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got struct {
		Symbols []string `json:"symbols"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Symbols) != 2 {
		t.Fatalf("symbols = %v", got.Symbols)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/watchlist/analyze", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("analyze status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeEmptyWatchlist(t *testing.T) {
	router, _ := testRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/watchlist/analyze", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestUniversesEndpoint(t *testing.T) {
	router, _ := testRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/api/universes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Universes []string `json:"universes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Universes) == 0 {
		t.Fatal("no universes listed")
	}
}
