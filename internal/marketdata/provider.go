package marketdata

import (
	"context"
	"errors"
	"time"

	"stockeye/internal/fundamentals"
	"stockeye/internal/indicators"
)

var (
	// ErrInvalidSymbol means the provider does not know the symbol.
	// Surfaced immediately, never retried.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrRateLimited means the provider rejected the call for quota
	// reasons. Retryable with backoff.
	ErrRateLimited = errors.New("rate limited")
)

// CompanyInfo is the identity slice of a listing.
type CompanyInfo struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	MarketCap float64 `json:"market_cap,omitempty"`
}

// Provider is the market data source consumed by the scanner. All calls
// are fallible, latency-bearing and rate-limited.
type Provider interface {
	GetPriceHistory(ctx context.Context, symbol string, lookback time.Duration) (indicators.Series, error)
	GetFundamentals(ctx context.Context, symbol string) (*fundamentals.Snapshot, error)
	GetCompanyInfo(ctx context.Context, symbol string) (*CompanyInfo, error)
}
