package strategy

import (
	"fmt"
)

// ValidationError is a failed constraint; it aborts startup.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints on a strategy config.
func Validate(cfg *Config) error {
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	// === Indicators ===
	ind := cfg.Indicators
	if ind.DMAShort <= 0 || ind.DMALong <= 0 {
		return ValidationError{"indicators", "dma periods must be > 0"}
	}
	if ind.DMAShort >= ind.DMALong {
		return ValidationError{"indicators", "dma_short must be < dma_long"}
	}
	if ind.RSIPeriod <= 1 {
		return ValidationError{"indicators.rsi_period", "must be > 1"}
	}
	if ind.MACDFast <= 0 || ind.MACDSlow <= 0 || ind.MACDSignal <= 0 {
		return ValidationError{"indicators", "macd periods must be > 0"}
	}
	if ind.MACDFast >= ind.MACDSlow {
		return ValidationError{"indicators", "macd_fast must be < macd_slow"}
	}
	if ind.VolumePeriod <= 0 {
		return ValidationError{"indicators.volume_period", "must be > 0"}
	}
	if ind.BollingerPeriod <= 1 || ind.BollingerMult <= 0 {
		return ValidationError{"indicators", "bollinger_period must be > 1 and bollinger_mult > 0"}
	}
	if ind.SupertrendPeriod <= 0 || ind.SupertrendMult <= 0 {
		return ValidationError{"indicators", "supertrend_period and supertrend_mult must be > 0"}
	}
	if ind.ADXPeriod <= 1 {
		return ValidationError{"indicators.adx_period", "must be > 1"}
	}

	// === Signals ===
	sig := cfg.Signals
	if sig.RSIOversold <= 0 || sig.RSIOverbought >= 100 {
		return ValidationError{"signals", "rsi bands must be inside (0, 100)"}
	}
	if sig.RSIOversold >= sig.RSIOverbought {
		return ValidationError{"signals", "rsi_oversold must be < rsi_overbought"}
	}
	if sig.VolumeLowRatio <= 0 || sig.VolumeHighRatio <= sig.VolumeLowRatio {
		return ValidationError{"signals", "volume ratios must satisfy 0 < low < high"}
	}

	// === Overrides ===
	ovr := cfg.Overrides
	if ovr.DeathCrossMaxAgeDays < 0 || ovr.GoldenCrossMaxAgeDays < 0 {
		return ValidationError{"overrides", "cross age limits must be >= 0"}
	}
	if ovr.RSIExtremeLow >= ovr.RSIExtremeHigh {
		return ValidationError{"overrides", "rsi_extreme_low must be < rsi_extreme_high"}
	}

	// === Rating bands ===
	if len(cfg.Rating.Bands) == 0 {
		return ValidationError{"rating.bands", "at least one band required"}
	}
	prev := 0.0
	for i, band := range cfg.Rating.Bands {
		if !validRatingName(band.Rating) {
			return ValidationError{
				Field:   fmt.Sprintf("rating.bands[%d].rating", i),
				Message: fmt.Sprintf("unknown rating %q", band.Rating),
			}
		}
		if i > 0 && band.MinCombined >= prev {
			return ValidationError{
				Field:   fmt.Sprintf("rating.bands[%d].min_combined", i),
				Message: "cut-points must be strictly decreasing",
			}
		}
		prev = band.MinCombined
	}

	// === Context ===
	ctx := cfg.Context
	if ctx.VIXLowMax <= 0 || ctx.VIXHighMin <= ctx.VIXLowMax {
		return ValidationError{"context", "vix bands must satisfy 0 < low_max < high_min"}
	}
	if ctx.VIXExtremeMin < ctx.VIXHighMin {
		return ValidationError{"context.vix_extreme_min", "must be >= vix_high_min"}
	}
	for month, flag := range ctx.Calendar {
		if !validMonthKey(month) {
			return ValidationError{"context.calendar", fmt.Sprintf("unknown month %q", month)}
		}
		if !validCalendarFlag(flag) {
			return ValidationError{"context.calendar", fmt.Sprintf("unknown flag %q for %s", flag, month)}
		}
	}
	for sector, mult := range ctx.Sectors {
		if mult <= 0 {
			return ValidationError{"context.sectors", fmt.Sprintf("multiplier for %q must be > 0", sector)}
		}
	}

	// === Liquidity ===
	if cfg.Liquidity.MinAvgVolume < 0 || cfg.Liquidity.MinAvgTradedValue < 0 {
		return ValidationError{"liquidity", "minimums must be >= 0"}
	}

	return nil
}

func validRatingName(name string) bool {
	for _, n := range RatingNames {
		if n == name {
			return true
		}
	}
	return false
}

func validCalendarFlag(flag string) bool {
	for _, f := range CalendarFlagNames {
		if f == flag {
			return true
		}
	}
	return false
}

func validMonthKey(month string) bool {
	for _, m := range MonthKeys {
		if m == month {
			return true
		}
	}
	return false
}
