package strategy

// Config is the full tunable surface of the rating engine and scanner.
// Loaded from YAML; every knob the decision logic reads lives here so that
// band cut-points and thresholds are configuration, not constants.
type Config struct {
	Meta       Meta       `yaml:"meta" json:"meta"`
	Indicators Indicators `yaml:"indicators" json:"indicators"`
	Signals    Signals    `yaml:"signals" json:"signals"`
	Overrides  Overrides  `yaml:"overrides" json:"overrides"`
	Rating     Rating     `yaml:"rating" json:"rating"`
	Context    Context    `yaml:"context" json:"context"`
	Liquidity  Liquidity  `yaml:"liquidity" json:"liquidity"`
}

// Meta identifies the strategy revision.
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Indicators holds lookback periods for the technical snapshot.
type Indicators struct {
	DMAShort         int     `yaml:"dma_short" json:"dma_short"`
	DMALong          int     `yaml:"dma_long" json:"dma_long"`
	RSIPeriod        int     `yaml:"rsi_period" json:"rsi_period"`
	MACDFast         int     `yaml:"macd_fast" json:"macd_fast"`
	MACDSlow         int     `yaml:"macd_slow" json:"macd_slow"`
	MACDSignal       int     `yaml:"macd_signal" json:"macd_signal"`
	VolumePeriod     int     `yaml:"volume_period" json:"volume_period"`
	BollingerPeriod  int     `yaml:"bollinger_period" json:"bollinger_period"`
	BollingerMult    float64 `yaml:"bollinger_mult" json:"bollinger_mult"`
	SupertrendPeriod int     `yaml:"supertrend_period" json:"supertrend_period"`
	SupertrendMult   float64 `yaml:"supertrend_mult" json:"supertrend_mult"`
	ADXPeriod        int     `yaml:"adx_period" json:"adx_period"`
}

// Signals holds classification thresholds for indicator states.
type Signals struct {
	RSIOversold     float64 `yaml:"rsi_oversold" json:"rsi_oversold"`
	RSIOverbought   float64 `yaml:"rsi_overbought" json:"rsi_overbought"`
	VolumeHighRatio float64 `yaml:"volume_high_ratio" json:"volume_high_ratio"`
	VolumeLowRatio  float64 `yaml:"volume_low_ratio" json:"volume_low_ratio"`
}

// Overrides holds thresholds for the first-match override guards.
type Overrides struct {
	DeathCrossMaxAgeDays  int     `yaml:"death_cross_max_age_days" json:"death_cross_max_age_days"`
	GoldenCrossMaxAgeDays int     `yaml:"golden_cross_max_age_days" json:"golden_cross_max_age_days"`
	RSIExtremeLow         float64 `yaml:"rsi_extreme_low" json:"rsi_extreme_low"`
	RSIExtremeHigh        float64 `yaml:"rsi_extreme_high" json:"rsi_extreme_high"`
}

// Rating holds the combined-score band table, highest cut first.
// Combined scores below the last cut map to STRONG_SELL.
type Rating struct {
	Bands []Band `yaml:"bands" json:"bands"`
}

// Band maps a minimum combined score to a rating level name.
type Band struct {
	MinCombined float64 `yaml:"min_combined" json:"min_combined"`
	Rating      string  `yaml:"rating" json:"rating"`
}

// Context holds market-context tables: VIX bands, calendar effects by
// month, and per-sector RSI band multipliers.
type Context struct {
	VIXLowMax     float64            `yaml:"vix_low_max" json:"vix_low_max"`
	VIXHighMin    float64            `yaml:"vix_high_min" json:"vix_high_min"`
	VIXExtremeMin float64            `yaml:"vix_extreme_min" json:"vix_extreme_min"`
	Calendar      map[string]string  `yaml:"calendar" json:"calendar"`
	Sectors       map[string]float64 `yaml:"sectors" json:"sectors"`
}

// Liquidity holds the minimums for the liquidity gate.
type Liquidity struct {
	MinAvgVolume      float64 `yaml:"min_avg_volume" json:"min_avg_volume"`
	MinAvgTradedValue float64 `yaml:"min_avg_traded_value" json:"min_avg_traded_value"`
}

// RatingNames are the seven levels accepted in rating.bands, best first.
var RatingNames = []string{
	"STRONG_BUY", "BUY", "ADD", "HOLD", "REDUCE", "SELL", "STRONG_SELL",
}

// CalendarFlagNames are the accepted calendar table values.
var CalendarFlagNames = []string{"FAVORABLE", "NEUTRAL", "UNFAVORABLE"}

// MonthKeys are the accepted calendar table keys, January first.
var MonthKeys = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// Default returns the built-in strategy configuration. The numbers mirror
// the published defaults: 50/200 DMA, RSI(14) with 30/70 bands, classic
// MACD(12,26,9), and the 18/15/13/10/8/6 combined-score ladder.
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "stockeye_default",
			Version:    "2.0",
		},
		Indicators: Indicators{
			DMAShort:         50,
			DMALong:          200,
			RSIPeriod:        14,
			MACDFast:         12,
			MACDSlow:         26,
			MACDSignal:       9,
			VolumePeriod:     20,
			BollingerPeriod:  20,
			BollingerMult:    2.0,
			SupertrendPeriod: 10,
			SupertrendMult:   3.0,
			ADXPeriod:        14,
		},
		Signals: Signals{
			RSIOversold:     30,
			RSIOverbought:   70,
			VolumeHighRatio: 1.5,
			VolumeLowRatio:  0.5,
		},
		Overrides: Overrides{
			DeathCrossMaxAgeDays:  15,
			GoldenCrossMaxAgeDays: 10,
			RSIExtremeLow:         25,
			RSIExtremeHigh:        75,
		},
		Rating: Rating{
			Bands: []Band{
				{MinCombined: 18, Rating: "STRONG_BUY"},
				{MinCombined: 15, Rating: "BUY"},
				{MinCombined: 13, Rating: "ADD"},
				{MinCombined: 10, Rating: "HOLD"},
				{MinCombined: 8, Rating: "REDUCE"},
				{MinCombined: 6, Rating: "SELL"},
			},
		},
		Context: Context{
			VIXLowMax:     15,
			VIXHighMin:    20,
			VIXExtremeMin: 25,
			Calendar: map[string]string{
				"jan": "UNFAVORABLE",
				"feb": "UNFAVORABLE",
				"mar": "UNFAVORABLE",
				"sep": "UNFAVORABLE",
				"dec": "FAVORABLE",
			},
			Sectors: map[string]float64{
				"Technology":         1.10,
				"Financial Services": 1.00,
				"Consumer Defensive": 0.90,
				"Healthcare":         0.95,
				"Energy":             1.15,
				"Basic Materials":    1.10,
				"Utilities":          0.85,
			},
		},
		Liquidity: Liquidity{
			MinAvgVolume:      100_000,
			MinAvgTradedValue: 50_000_000,
		},
	}
}
