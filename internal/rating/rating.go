package rating

import "fmt"

// Level is one of the seven ordered rating levels. Higher is better;
// the numeric rank is used for scan ordering.
type Level int

const (
	StrongSell Level = iota + 1
	Sell
	Reduce
	Hold
	Add
	Buy
	StrongBuy
)

func (l Level) String() string {
	switch l {
	case StrongSell:
		return "STRONG_SELL"
	case Sell:
		return "SELL"
	case Reduce:
		return "REDUCE"
	case Hold:
		return "HOLD"
	case Add:
		return "ADD"
	case Buy:
		return "BUY"
	case StrongBuy:
		return "STRONG_BUY"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Rank returns the ordering rank of the level, 1 (STRONG_SELL) through
// 7 (STRONG_BUY).
func (l Level) Rank() int { return int(l) }

// MarshalText renders the level name in JSON output.
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// ParseLevel maps a level name to its Level.
func ParseLevel(name string) (Level, error) {
	switch name {
	case "STRONG_SELL":
		return StrongSell, nil
	case "SELL":
		return Sell, nil
	case "REDUCE":
		return Reduce, nil
	case "HOLD":
		return Hold, nil
	case "ADD":
		return Add, nil
	case "BUY":
		return Buy, nil
	case "STRONG_BUY":
		return StrongBuy, nil
	default:
		return 0, fmt.Errorf("unknown rating level %q", name)
	}
}

// Breakdown carries the scores feeding the classification.
type Breakdown struct {
	Technical int     `json:"technical"` // 0..10
	FScore    int     `json:"fscore"`    // 0..12
	Quality   float64 `json:"quality"`
	Growth    float64 `json:"growth"`
	Value     float64 `json:"value"`
	Combined  float64 `json:"combined"` // fscore*1.5 + technical
}

// Result is a classification together with the ordered list of rule
// names that produced it.
type Result struct {
	Level     Level    `json:"level"`
	Rationale []string `json:"rationale"`
}
