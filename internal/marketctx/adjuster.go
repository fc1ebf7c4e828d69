package marketctx

import (
	"fmt"
	"time"

	"stockeye/internal/indicators"
	"stockeye/internal/strategy"
)

// Adjuster derives market context from benchmark data and the calendar.
// The strategy's string tables are resolved to typed values once at
// construction so lookups during a scan cannot fail.
type Adjuster struct {
	shortPeriod int
	longPeriod  int

	vixLowMax     float64
	vixHighMin    float64
	vixExtremeMin float64

	months  [13]CalendarFlag // indexed by time.Month, entry 0 unused
	sectors map[string]float64

	rsiOversold   float64
	rsiOverbought float64
}

// NewAdjuster resolves the context tables of cfg. Table entries the
// validator missed are rejected here rather than at lookup time.
func NewAdjuster(cfg *strategy.Config) (*Adjuster, error) {
	a := &Adjuster{
		shortPeriod:   cfg.Indicators.DMAShort,
		longPeriod:    cfg.Indicators.DMALong,
		vixLowMax:     cfg.Context.VIXLowMax,
		vixHighMin:    cfg.Context.VIXHighMin,
		vixExtremeMin: cfg.Context.VIXExtremeMin,
		sectors:       make(map[string]float64, len(cfg.Context.Sectors)),
		rsiOversold:   cfg.Signals.RSIOversold,
		rsiOverbought: cfg.Signals.RSIOverbought,
	}

	for key, name := range cfg.Context.Calendar {
		month, ok := monthIndex(key)
		if !ok {
			return nil, fmt.Errorf("calendar: unknown month key %q", key)
		}
		flag, ok := parseCalendarFlag(name)
		if !ok {
			return nil, fmt.Errorf("calendar: unknown flag %q for %s", name, key)
		}
		a.months[month] = flag
	}

	for sector, mult := range cfg.Context.Sectors {
		if mult <= 0 {
			return nil, fmt.Errorf("sectors: non-positive multiplier %v for %q", mult, sector)
		}
		a.sectors[sector] = mult
	}

	return a, nil
}

// Derive computes the shared per-scan context. benchmark may be short or
// empty and vix may be nil; the affected dimensions stay UNKNOWN and the
// engine treats them as neutral.
func (a *Adjuster) Derive(benchmark indicators.Series, vix *float64, now time.Time) Context {
	ctx := Neutral()
	ctx.Regime = a.regime(benchmark)
	if vix != nil {
		ctx.VIXBand, ctx.VIXExtreme = a.vixBand(*vix)
	}
	ctx.CalendarFlag = a.months[now.Month()]
	return ctx
}

// ForSector returns ctx with the sector volatility multiplier applied.
// Unlisted sectors get the neutral multiplier 1.0.
func (a *Adjuster) ForSector(ctx Context, sector string) Context {
	ctx.SectorMultiplier = 1.0
	if mult, ok := a.sectors[sector]; ok {
		ctx.SectorMultiplier = mult
	}
	return ctx
}

// RSIBands widens or narrows the configured oversold/overbought bands
// around the RSI midpoint by the context's sector multiplier.
func (a *Adjuster) RSIBands(ctx Context) (oversold, overbought float64) {
	mult := ctx.SectorMultiplier
	if mult <= 0 {
		mult = 1.0
	}
	oversold = 50 - (50-a.rsiOversold)*mult
	overbought = 50 + (a.rsiOverbought-50)*mult
	if oversold < 0 {
		oversold = 0
	}
	if overbought > 100 {
		overbought = 100
	}
	return oversold, overbought
}

func (a *Adjuster) regime(benchmark indicators.Series) Regime {
	if len(benchmark) < a.longPeriod {
		return RegimeUnknown
	}
	closes := benchmark.Closes()
	price := closes[len(closes)-1]
	short := sma(closes, a.shortPeriod)
	long := sma(closes, a.longPeriod)

	switch {
	case price > short && short > long:
		return RegimeBull
	case price < short && short < long:
		return RegimeBear
	default:
		return RegimeSideways
	}
}

func (a *Adjuster) vixBand(vix float64) (VIXBand, bool) {
	switch {
	case vix < a.vixLowMax:
		return VIXLow, false
	case vix <= a.vixHighMin:
		return VIXModerate, false
	default:
		return VIXHigh, vix > a.vixExtremeMin
	}
}

func sma(values []float64, period int) float64 {
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period)
}

func monthIndex(key string) (time.Month, bool) {
	for i, k := range strategy.MonthKeys {
		if k == key {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func parseCalendarFlag(name string) (CalendarFlag, bool) {
	switch name {
	case "FAVORABLE":
		return CalendarFavorable, true
	case "NEUTRAL":
		return CalendarNeutral, true
	case "UNFAVORABLE":
		return CalendarUnfavorable, true
	default:
		return CalendarNeutral, false
	}
}
