package scan

import (
	"time"

	"stockeye/internal/fundamentals"
	"stockeye/internal/indicators"
	"stockeye/internal/marketctx"
	"stockeye/internal/marketdata"
	"stockeye/internal/rating"
)

// Type selects the qualification filter and ordering of a scan.
type Type int

const (
	// TypeAnalysis rates every symbol, ordered best rating first.
	TypeAnalysis Type = iota
	// TypeStrongBuys keeps ratings of BUY or better.
	TypeStrongBuys
	// TypeFundamentals keeps F-Scores of 8 or more, ordered by
	// fundamental strength.
	TypeFundamentals
	// TypeValue keeps strong fundamentals at depressed RSI, cheapest
	// momentum first.
	TypeValue
)

func (t Type) String() string {
	switch t {
	case TypeStrongBuys:
		return "strong-buys"
	case TypeFundamentals:
		return "fundamentals"
	case TypeValue:
		return "value"
	default:
		return "analysis"
	}
}

// MarshalText renders the type name in JSON output.
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// ParseType maps a scan type name to its Type.
func ParseType(name string) (Type, bool) {
	switch name {
	case "analysis", "":
		return TypeAnalysis, true
	case "strong-buys":
		return TypeStrongBuys, true
	case "fundamentals":
		return TypeFundamentals, true
	case "value":
		return TypeValue, true
	default:
		return 0, false
	}
}

// Result is the outcome for one symbol. A failed fetch leaves Err set
// and the derived fields zero; it never aborts the batch.
type Result struct {
	Symbol       string                   `json:"symbol"`
	State        TaskState                `json:"state"`
	Attempts     int                      `json:"attempts"`
	Info         *marketdata.CompanyInfo  `json:"info,omitempty"`
	Snapshot     *indicators.Snapshot     `json:"snapshot,omitempty"`
	Fundamentals *fundamentals.Snapshot   `json:"fundamentals,omitempty"`
	Scores       fundamentals.Scores      `json:"scores"`
	Breakdown    rating.Breakdown         `json:"breakdown"`
	Rating       rating.Result            `json:"rating"`
	Qualified    bool                     `json:"qualified"`
	Err          error                    `json:"-"`
	Error        string                   `json:"error,omitempty"`
}

// Failed reports whether the symbol produced no rating.
func (r *Result) Failed() bool { return r.State != TaskSucceeded }

// Summary aggregates a scan run. Scanned == Failed distinguishes a
// fully broken run from one that genuinely found nothing.
type Summary struct {
	Scanned   int `json:"scanned"`
	Failed    int `json:"failed"`
	Qualified int `json:"qualified"`
}

// Report is the ordered outcome of one scan invocation.
type Report struct {
	Type      Type              `json:"type"`
	Context   marketctx.Context `json:"context"`
	Results   []Result          `json:"results"`
	Summary   Summary           `json:"summary"`
	StartedAt time.Time         `json:"started_at"`
	Duration  time.Duration     `json:"duration"`
}
