package marketctx

// Regime classifies the broad market by moving-average alignment of a
// benchmark index.
type Regime int

const (
	RegimeUnknown Regime = iota
	RegimeBull
	RegimeBear
	RegimeSideways
)

func (r Regime) String() string {
	switch r {
	case RegimeBull:
		return "BULL"
	case RegimeBear:
		return "BEAR"
	case RegimeSideways:
		return "SIDEWAYS"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the regime name in JSON output.
func (r Regime) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// VIXBand buckets the volatility index into coarse bands.
type VIXBand int

const (
	VIXUnknown VIXBand = iota
	VIXLow
	VIXModerate
	VIXHigh
)

func (b VIXBand) String() string {
	switch b {
	case VIXLow:
		return "LOW"
	case VIXModerate:
		return "MODERATE"
	case VIXHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the band name in JSON output.
func (b VIXBand) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// CalendarFlag marks a month as seasonally favorable or not.
type CalendarFlag int

const (
	CalendarNeutral CalendarFlag = iota
	CalendarFavorable
	CalendarUnfavorable
)

func (f CalendarFlag) String() string {
	switch f {
	case CalendarFavorable:
		return "FAVORABLE"
	case CalendarUnfavorable:
		return "UNFAVORABLE"
	default:
		return "NEUTRAL"
	}
}

// MarshalText renders the flag name in JSON output.
func (f CalendarFlag) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Context is the market backdrop fed into the rating engine alongside
// per-symbol snapshots. Derived once per scan and shared across symbols.
type Context struct {
	Regime           Regime       `json:"regime"`
	VIXBand          VIXBand      `json:"vix_band"`
	VIXExtreme       bool         `json:"vix_extreme,omitempty"`
	CalendarFlag     CalendarFlag `json:"calendar_flag"`
	SectorMultiplier float64      `json:"sector_multiplier,omitempty"`
}

// Neutral returns a context that triggers no adjustments, used when
// benchmark data could not be fetched.
func Neutral() Context {
	return Context{
		Regime:           RegimeUnknown,
		VIXBand:          VIXUnknown,
		CalendarFlag:     CalendarNeutral,
		SectorMultiplier: 1.0,
	}
}
