package fundamentals

// Snapshot is a company financial snapshot as reported by the market data
// provider. Every field may be absent; absent fields never fail scoring,
// they just count as unmet.
type Snapshot struct {
	ROE             *float64 `json:"roe,omitempty"`              // return on equity, fraction
	DebtToEquity    *float64 `json:"debt_to_equity,omitempty"`   // ratio
	RevenueGrowth   *float64 `json:"revenue_growth,omitempty"`   // YoY, fraction
	ProfitMargin    *float64 `json:"profit_margin,omitempty"`    // fraction
	PromoterHolding *float64 `json:"promoter_holding,omitempty"` // percent
	PriceToBook     *float64 `json:"price_to_book,omitempty"`
	DividendYield   *float64 `json:"dividend_yield,omitempty"` // fraction
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	Beta            *float64 `json:"beta,omitempty"`
	CurrentRatio    *float64 `json:"current_ratio,omitempty"`
	QuickRatio      *float64 `json:"quick_ratio,omitempty"`
	PE              *float64 `json:"pe,omitempty"`
	PEG             *float64 `json:"peg,omitempty"`
	EBITDAMargin    *float64 `json:"ebitda_margin,omitempty"`
}

// Scores is the fundamental part of a score breakdown.
type Scores struct {
	FScore  int     `json:"fscore"`  // 0..12
	Quality float64 `json:"quality"` // 0..10
	Growth  float64 `json:"growth"`  // 0..10
	Value   float64 `json:"value"`   // 0..10

	// Incomplete is set when more than half of the rated inputs were
	// absent. The scores remain numeric; downstream treats them with
	// caution rather than rejecting the symbol.
	Incomplete bool `json:"incomplete"`
}
