package marketctx

import (
	"math"
	"testing"
	"time"

	"stockeye/internal/indicators"
	"stockeye/internal/strategy"
)

func testAdjuster(t *testing.T) *Adjuster {
	t.Helper()
	cfg := strategy.Default()
	cfg.Indicators.DMAShort = 2
	cfg.Indicators.DMALong = 4
	a, err := NewAdjuster(cfg)
	if err != nil {
		t.Fatalf("NewAdjuster: %v", err)
	}
	return a
}

func benchSeries(closes ...float64) indicators.Series {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(indicators.Series, len(closes))
	for i, c := range closes {
		s[i] = indicators.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return s
}

func TestRegimeClassification(t *testing.T) {
	a := testAdjuster(t)
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		series indicators.Series
		want   Regime
	}{
		{"bull on rising closes", benchSeries(10, 11, 12, 13, 14), RegimeBull},
		{"bear on falling closes", benchSeries(14, 13, 12, 11, 10), RegimeBear},
		{"sideways on flat closes", benchSeries(10, 10, 10, 10, 10), RegimeSideways},
		{"unknown on short history", benchSeries(10, 11), RegimeUnknown},
		{"unknown on empty history", nil, RegimeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := a.Derive(tt.series, nil, now)
			if ctx.Regime != tt.want {
				t.Errorf("regime = %s, want %s", ctx.Regime, tt.want)
			}
		})
	}
}

func TestVIXBands(t *testing.T) {
	a := testAdjuster(t)
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		vix     float64
		band    VIXBand
		extreme bool
	}{
		{12, VIXLow, false},
		{15, VIXModerate, false},
		{20, VIXModerate, false},
		{22, VIXHigh, false},
		{30, VIXHigh, true},
	}
	for _, tt := range tests {
		ctx := a.Derive(nil, &tt.vix, now)
		if ctx.VIXBand != tt.band || ctx.VIXExtreme != tt.extreme {
			t.Errorf("vix %v: band = %s extreme = %v, want %s %v",
				tt.vix, ctx.VIXBand, ctx.VIXExtreme, tt.band, tt.extreme)
		}
	}

	if ctx := a.Derive(nil, nil, now); ctx.VIXBand != VIXUnknown {
		t.Errorf("missing vix: band = %s, want UNKNOWN", ctx.VIXBand)
	}
}

func TestCalendarFlags(t *testing.T) {
	a := testAdjuster(t)

	tests := []struct {
		month time.Month
		want  CalendarFlag
	}{
		{time.January, CalendarUnfavorable},
		{time.September, CalendarUnfavorable},
		{time.December, CalendarFavorable},
		{time.June, CalendarNeutral},
	}
	for _, tt := range tests {
		now := time.Date(2025, tt.month, 15, 0, 0, 0, 0, time.UTC)
		ctx := a.Derive(nil, nil, now)
		if ctx.CalendarFlag != tt.want {
			t.Errorf("%s: flag = %s, want %s", tt.month, ctx.CalendarFlag, tt.want)
		}
	}
}

func TestSectorMultiplierAndRSIBands(t *testing.T) {
	a := testAdjuster(t)
	base := Neutral()

	ctx := a.ForSector(base, "Energy")
	if ctx.SectorMultiplier != 1.15 {
		t.Fatalf("Energy multiplier = %v, want 1.15", ctx.SectorMultiplier)
	}

	low, high := a.RSIBands(ctx)
	// 50 - 20*1.15 = 27, 50 + 20*1.15 = 73
	if math.Abs(low-27) > 1e-9 || math.Abs(high-73) > 1e-9 {
		t.Errorf("bands = (%v, %v), want (27, 73)", low, high)
	}

	ctx = a.ForSector(base, "No Such Sector")
	if ctx.SectorMultiplier != 1.0 {
		t.Fatalf("unlisted sector multiplier = %v, want 1.0", ctx.SectorMultiplier)
	}
	low, high = a.RSIBands(ctx)
	if low != 30 || high != 70 {
		t.Errorf("neutral bands = (%v, %v), want (30, 70)", low, high)
	}
}

func TestNewAdjusterRejectsBadTables(t *testing.T) {
	cfg := strategy.Default()
	cfg.Context.Calendar = map[string]string{"smarch": "NEUTRAL"}
	if _, err := NewAdjuster(cfg); err == nil {
		t.Fatal("unknown month key accepted")
	}

	cfg = strategy.Default()
	cfg.Context.Calendar = map[string]string{"jan": "LUCKY"}
	if _, err := NewAdjuster(cfg); err == nil {
		t.Fatal("unknown calendar flag accepted")
	}

	cfg = strategy.Default()
	cfg.Context.Sectors = map[string]float64{"Technology": 0}
	if _, err := NewAdjuster(cfg); err == nil {
		t.Fatal("zero sector multiplier accepted")
	}
}
