package fundamentals

// Core criteria thresholds, +2 points each.
const (
	minROE           = 0.15
	maxDebtToEquity  = 1.0
	minRevenueGrowth = 0.10
	minProfitMargin  = 0.10
)

// Secondary criteria thresholds, +1 point each.
const (
	minPromoterHolding = 40.0
	maxPromoterHolding = 70.0
	maxPriceToBook     = 3.0
	minDividendYield   = 0.01
	minOperatingMargin = 0.15
)

// Scorer derives fundamental scores from a financial snapshot.
// Pure and safe for concurrent use.
type Scorer struct{}

// NewScorer creates a new fundamental scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the 12-point F-Score plus quality/growth/value
// sub-scores. A missing field counts as unmet and never raises.
func (s *Scorer) Score(snap *Snapshot) Scores {
	if snap == nil {
		return Scores{Incomplete: true}
	}

	out := Scores{}
	present := 0

	// Core criteria: +2 each.
	if check(snap.ROE, &present, func(v float64) bool { return v > minROE }) {
		out.FScore += 2
	}
	if check(snap.DebtToEquity, &present, func(v float64) bool { return v < maxDebtToEquity }) {
		out.FScore += 2
	}
	if check(snap.RevenueGrowth, &present, func(v float64) bool { return v > minRevenueGrowth }) {
		out.FScore += 2
	}
	if check(snap.ProfitMargin, &present, func(v float64) bool { return v > minProfitMargin }) {
		out.FScore += 2
	}

	// Secondary criteria: +1 each.
	if check(snap.PromoterHolding, &present, func(v float64) bool {
		return v >= minPromoterHolding && v <= maxPromoterHolding
	}) {
		out.FScore++
	}
	if check(snap.PriceToBook, &present, func(v float64) bool { return v > 0 && v < maxPriceToBook }) {
		out.FScore++
	}
	if check(snap.DividendYield, &present, func(v float64) bool { return v > minDividendYield }) {
		out.FScore++
	}
	if check(snap.OperatingMargin, &present, func(v float64) bool { return v > minOperatingMargin }) {
		out.FScore++
	}

	out.Incomplete = present*2 < 8 // more than half of the 8 criteria inputs absent

	out.Quality = s.qualityScore(snap)
	out.Growth = s.growthScore(snap)
	out.Value = s.valueScore(snap)

	return out
}

// check records presence and evaluates the criterion on present values.
func check(v *float64, present *int, fn func(float64) bool) bool {
	if v == nil {
		return false
	}
	*present++
	return fn(*v)
}

// qualityScore blends profitability, leverage and solvency into [0, 10].
// Field subset is disjoint from growth and value.
func (s *Scorer) qualityScore(snap *Snapshot) float64 {
	roe := unit(snap.ROE, func(v float64) float64 { return v / 0.30 })
	op := unit(snap.OperatingMargin, func(v float64) float64 { return v / 0.30 })
	de := unit(snap.DebtToEquity, func(v float64) float64 { return 1 - v/2 })
	cr := unit(snap.CurrentRatio, func(v float64) float64 { return v / 3 })

	return 10 * (0.35*roe + 0.25*op + 0.25*de + 0.15*cr)
}

// growthScore blends top-line growth and growth pricing into [0, 10].
func (s *Scorer) growthScore(snap *Snapshot) float64 {
	rev := unit(snap.RevenueGrowth, func(v float64) float64 { return v / 0.30 })
	ebitda := unit(snap.EBITDAMargin, func(v float64) float64 { return v / 0.40 })
	peg := unit(snap.PEG, func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return (2 - v) / 1.5
	})

	return 10 * (0.5*rev + 0.3*ebitda + 0.2*peg)
}

// valueScore blends valuation multiples and yield into [0, 10].
func (s *Scorer) valueScore(snap *Snapshot) float64 {
	pb := unit(snap.PriceToBook, func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return (6 - v) / 5
	})
	pe := unit(snap.PE, func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return (40 - v) / 35
	})
	div := unit(snap.DividendYield, func(v float64) float64 { return v / 0.04 })

	return 10 * (0.4*pb + 0.4*pe + 0.2*div)
}

// unit maps a possibly-missing field through fn and clamps to [0, 1].
// Missing fields contribute zero.
func unit(v *float64, fn func(float64) float64) float64 {
	if v == nil {
		return 0
	}
	x := fn(*v)
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
