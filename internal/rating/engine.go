package rating

import (
	"fmt"

	"stockeye/internal/fundamentals"
	"stockeye/internal/indicators"
	"stockeye/internal/marketctx"
	"stockeye/internal/strategy"
)

// fundamentalWeight converts the 12-point F-Score onto the combined
// scale: combined = fscore*1.5 + technical.
const fundamentalWeight = 1.5

// topQuartileFScore marks the F-Score range exempt from the bear-regime
// downgrade.
const topQuartileFScore = 9

// input is the full evaluation context a guard sees.
type input struct {
	snap       *indicators.Snapshot
	b          Breakdown
	ctx        marketctx.Context
	oversold   float64
	overbought float64
}

// overrideGuard short-circuits the band mapping when it fires.
type overrideGuard struct {
	name  string
	level Level
	fires func(e *Engine, in input) bool
}

// adjustGuard nudges a band-derived level; apply reports whether it
// fired and the (possibly unchanged direction-constrained) new level.
type adjustGuard struct {
	name  string
	apply func(e *Engine, in input, l Level) (Level, bool)
}

// band maps a minimum combined score to a level, highest cut first.
type band struct {
	min   float64
	level Level
}

// Engine classifies a symbol from its technical snapshot, fundamental
// scores, and market context. Pure and deterministic; safe for
// concurrent use.
type Engine struct {
	bands     []band
	overrides strategy.Overrides
	liquidity strategy.Liquidity
}

// NewEngine resolves the band table of cfg into typed levels.
func NewEngine(cfg *strategy.Config) (*Engine, error) {
	e := &Engine{
		overrides: cfg.Overrides,
		liquidity: cfg.Liquidity,
	}
	for _, b := range cfg.Rating.Bands {
		level, err := ParseLevel(b.Rating)
		if err != nil {
			return nil, fmt.Errorf("rating bands: %w", err)
		}
		e.bands = append(e.bands, band{min: b.MinCombined, level: level})
	}
	if len(e.bands) == 0 {
		return nil, fmt.Errorf("rating bands: empty table")
	}
	return e, nil
}

// Breakdown assembles the score breakdown from the per-symbol snapshots.
func (e *Engine) Breakdown(snap *indicators.Snapshot, scores fundamentals.Scores) Breakdown {
	tech := e.technicalScore(snap)
	return Breakdown{
		Technical: tech,
		FScore:    scores.FScore,
		Quality:   scores.Quality,
		Growth:    scores.Growth,
		Value:     scores.Value,
		Combined:  float64(scores.FScore)*fundamentalWeight + float64(tech),
	}
}

// technicalScore grades the snapshot 0..10: moving-average alignment
// 0..3, RSI placement 0..2, MACD state 0..2, volume state 0..3.
// Missing fields score zero.
func (e *Engine) technicalScore(snap *indicators.Snapshot) int {
	score := 0

	if snap.ShortMA != nil && snap.LongMA != nil {
		c, s, l := snap.Close, *snap.ShortMA, *snap.LongMA
		switch {
		case c > s && s > l:
			score += 3
		case c > s:
			score += 2
		case c > l:
			score += 1
		}
	}

	rsi := snap.RSIValue()
	switch {
	case rsi >= 40 && rsi <= 60:
		score += 2
	case rsi >= 30 && rsi <= 70:
		score += 1
	}

	switch snap.MACDState {
	case indicators.MACDBullish:
		score += 2
	case indicators.MACDNeutral:
		score += 1
	}

	switch snap.VolumeState {
	case indicators.VolumeHigh:
		score += 3
	case indicators.VolumeNormal:
		score += 2
	case indicators.VolumeLow:
		score += 1
	}

	return score
}

// Classify runs the ordered guard cascade. oversold and overbought are
// the sector-adjusted RSI bands. Every fired guard is appended to the
// rationale in evaluation order.
func (e *Engine) Classify(snap *indicators.Snapshot, b Breakdown, ctx marketctx.Context, oversold, overbought float64) Result {
	in := input{snap: snap, b: b, ctx: ctx, oversold: oversold, overbought: overbought}
	res := Result{}

	for _, g := range overrideGuards {
		if g.fires(e, in) {
			res.Level = g.level
			res.Rationale = append(res.Rationale, g.name)
			return e.gateLiquidity(in, res)
		}
	}

	res.Level = e.bandLevel(b.Combined)
	res.Rationale = append(res.Rationale, "band:"+res.Level.String())

	for _, g := range adjustGuards {
		if next, fired := g.apply(e, in, res.Level); fired {
			res.Level = next
			res.Rationale = append(res.Rationale, g.name)
		}
	}

	return e.gateLiquidity(in, res)
}

func (e *Engine) bandLevel(combined float64) Level {
	for _, b := range e.bands {
		if combined >= b.min {
			return b.level
		}
	}
	return StrongSell
}

// gateLiquidity clamps the result to at most HOLD when the symbol
// trades below the configured volume or value minimums. Unknown
// averages pass the gate; the orchestrator filters those earlier.
func (e *Engine) gateLiquidity(in input, res Result) Result {
	snap := in.snap
	thin := (snap.AvgVolume != nil && *snap.AvgVolume < e.liquidity.MinAvgVolume) ||
		(snap.AvgTradedValue != nil && *snap.AvgTradedValue < e.liquidity.MinAvgTradedValue)
	if thin && res.Level > Hold {
		res.Level = Hold
		res.Rationale = append(res.Rationale, "liquidity_gate")
	}
	return res
}

var overrideGuards = []overrideGuard{
	{
		name:  "fresh_death_cross_confirmed",
		level: StrongSell,
		fires: func(e *Engine, in input) bool {
			c := in.snap.Cross
			return c != nil && c.Kind == indicators.DeathCross &&
				c.AgeDays <= e.overrides.DeathCrossMaxAgeDays &&
				in.snap.MACDState == indicators.MACDBearish &&
				in.snap.VolumeState == indicators.VolumeHigh
		},
	},
	{
		name:  "overbought_bearish_weak_fundamentals",
		level: StrongSell,
		fires: func(e *Engine, in input) bool {
			return in.snap.RSIValue() > e.overrides.RSIExtremeHigh &&
				in.snap.MACDState == indicators.MACDBearish &&
				in.b.FScore < 5
		},
	},
	{
		name:  "fresh_golden_cross_confirmed",
		level: StrongBuy,
		fires: func(e *Engine, in input) bool {
			c := in.snap.Cross
			return c != nil && c.Kind == indicators.GoldenCross &&
				c.AgeDays <= e.overrides.GoldenCrossMaxAgeDays &&
				in.b.FScore >= 6 &&
				in.snap.MACDState == indicators.MACDBullish &&
				in.snap.VolumeState == indicators.VolumeHigh
		},
	},
	{
		name:  "deep_oversold_quality",
		level: StrongBuy,
		fires: func(e *Engine, in input) bool {
			return in.snap.RSIValue() < e.overrides.RSIExtremeLow &&
				in.snap.MACDState == indicators.MACDBullish &&
				in.b.FScore >= 6
		},
	},
}

var adjustGuards = []adjustGuard{
	{
		// Overbought without bullish momentum: cap at REDUCE.
		name: "overbought_momentum_cap",
		apply: func(e *Engine, in input, l Level) (Level, bool) {
			weak := in.snap.MACDState == indicators.MACDNeutral ||
				in.snap.MACDState == indicators.MACDBearish
			if in.snap.RSIValue() > in.overbought && weak && l > Reduce {
				return Reduce, true
			}
			return l, false
		},
	},
	{
		// Solid fundamentals at oversold RSI: floor at ADD.
		name: "oversold_fundamental_floor",
		apply: func(e *Engine, in input, l Level) (Level, bool) {
			if in.b.FScore >= 6 && in.snap.RSIValue() < in.oversold && l < Add {
				return Add, true
			}
			return l, false
		},
	},
	{
		name: "bear_regime_downgrade",
		apply: func(e *Engine, in input, l Level) (Level, bool) {
			if in.ctx.Regime == marketctx.RegimeBear && l == Buy &&
				in.b.FScore < topQuartileFScore {
				return Add, true
			}
			return l, false
		},
	},
	{
		name: "high_vix_suppression",
		apply: func(e *Engine, in input, l Level) (Level, bool) {
			if in.ctx.VIXBand != marketctx.VIXHigh {
				return l, false
			}
			if l == StrongBuy && in.b.FScore < 12 {
				return Buy, true
			}
			if in.ctx.VIXExtreme && l == Buy {
				return Add, true
			}
			return l, false
		},
	},
	{
		name: "unfavorable_calendar",
		apply: func(e *Engine, in input, l Level) (Level, bool) {
			if in.ctx.CalendarFlag == marketctx.CalendarUnfavorable && l == StrongBuy {
				return Buy, true
			}
			return l, false
		},
	},
}
