package indicators

// MACDState classifies MACD momentum.
type MACDState int

const (
	MACDUnknown MACDState = iota
	MACDNeutral
	MACDBullish
	MACDBearish
)

func (s MACDState) String() string {
	switch s {
	case MACDNeutral:
		return "NEUTRAL"
	case MACDBullish:
		return "BULLISH"
	case MACDBearish:
		return "BEARISH"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the state name in JSON output.
func (s MACDState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// VolumeState classifies current volume against its moving average.
type VolumeState int

const (
	VolumeUnknown VolumeState = iota
	VolumeNormal
	VolumeHigh
	VolumeLow
)

func (s VolumeState) String() string {
	switch s {
	case VolumeNormal:
		return "NORMAL"
	case VolumeHigh:
		return "HIGH"
	case VolumeLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the state name in JSON output.
func (s VolumeState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// TrendDirection is the Supertrend state since the latest flip.
type TrendDirection int

const (
	TrendUnknown TrendDirection = iota
	TrendUp
	TrendDown
)

func (d TrendDirection) String() string {
	switch d {
	case TrendUp:
		return "UP"
	case TrendDown:
		return "DOWN"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the direction name in JSON output.
func (d TrendDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// CrossKind is the type of the most recent moving-average cross.
type CrossKind int

const (
	GoldenCross CrossKind = iota + 1
	DeathCross
)

func (k CrossKind) String() string {
	switch k {
	case GoldenCross:
		return "GOLDEN_CROSS"
	case DeathCross:
		return "DEATH_CROSS"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the kind name in JSON output.
func (k CrossKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Cross is the most recent short/long MA crossover event.
type Cross struct {
	Kind    CrossKind `json:"kind"`
	AgeDays int       `json:"age_days"` // calendar days since the cross bar
	Price   float64   `json:"price"`    // close at the cross bar
}

// Snapshot is the point-in-time technical state of one symbol.
// Nil pointer fields and Unknown enum values mean the series was too short
// for that particular indicator; the rest of the snapshot stays valid.
type Snapshot struct {
	Close float64 `json:"close"`

	ShortMA *float64 `json:"short_ma,omitempty"`
	LongMA  *float64 `json:"long_ma,omitempty"`

	RSI *float64 `json:"rsi,omitempty"`

	MACD       *float64  `json:"macd,omitempty"`
	MACDSignal *float64  `json:"macd_signal,omitempty"`
	MACDHist   *float64  `json:"macd_hist,omitempty"`
	MACDState  MACDState `json:"macd_state"`

	VolumeRatio    *float64    `json:"volume_ratio,omitempty"`
	VolumeState    VolumeState `json:"volume_state"`
	AvgVolume      *float64    `json:"avg_volume,omitempty"`
	AvgTradedValue *float64    `json:"avg_traded_value,omitempty"`

	BollingerPos *float64 `json:"bollinger_pos,omitempty"` // %B scaled to [0, 100]

	Supertrend    *float64       `json:"supertrend,omitempty"`
	SupertrendDir TrendDirection `json:"supertrend_dir"`

	ADX *float64 `json:"adx,omitempty"`

	Cross *Cross `json:"cross,omitempty"`
}

// RSIValue returns the RSI or the neutral midpoint when unavailable.
func (s *Snapshot) RSIValue() float64 {
	if s.RSI == nil {
		return 50
	}
	return *s.RSI
}

// HasStrongTrend reports whether ADX indicates a strong trend (>= 25).
func (s *Snapshot) HasStrongTrend() bool {
	return s.ADX != nil && *s.ADX >= 25
}

// IsRanging reports whether ADX indicates a weak or ranging market (< 20).
func (s *Snapshot) IsRanging() bool {
	return s.ADX != nil && *s.ADX < 20
}

func ptr(v float64) *float64 { return &v }
