package indicators

import "math"

// atrSeries computes the Wilder-smoothed Average True Range.
// Entries before index period-1 are not meaningful.
func atrSeries(highs, lows, closes []float64, period int) []float64 {
	length := len(closes)
	atr := make([]float64, length)
	if length < period+1 {
		return atr
	}

	trs := make([]float64, length)
	trs[0] = highs[0] - lows[0]
	for i := 1; i < length; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		trs[i] = math.Max(hl, math.Max(hc, lc))
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += trs[i]
	}
	atr[period-1] = sum / float64(period)

	for i := period; i < length; i++ {
		atr[i] = (atr[i-1]*float64(period-1) + trs[i]) / float64(period)
	}

	return atr
}

// computeSupertrend fills the Supertrend value and the direction held
// since the latest band flip.
func (c *Calculator) computeSupertrend(series Series, snap *Snapshot) {
	period := c.ind.SupertrendPeriod
	mult := c.ind.SupertrendMult
	if len(series) < period+1 {
		return
	}

	highs, lows, closes := series.Highs(), series.Lows(), series.Closes()
	atr := atrSeries(highs, lows, closes, period)

	n := len(series)
	finalUpper := make([]float64, n)
	finalLower := make([]float64, n)
	st := make([]float64, n)
	dir := make([]TrendDirection, n)

	start := period - 1
	hl2 := (highs[start] + lows[start]) / 2
	finalUpper[start] = hl2 + mult*atr[start]
	finalLower[start] = hl2 - mult*atr[start]
	st[start] = finalUpper[start]
	dir[start] = TrendDown

	for i := start + 1; i < n; i++ {
		hl2 := (highs[i] + lows[i]) / 2
		basicUpper := hl2 + mult*atr[i]
		basicLower := hl2 - mult*atr[i]

		// Band carry-forward rule: bands only tighten unless price closed
		// beyond the previous band.
		if basicUpper < finalUpper[i-1] || closes[i-1] > finalUpper[i-1] {
			finalUpper[i] = basicUpper
		} else {
			finalUpper[i] = finalUpper[i-1]
		}
		if basicLower > finalLower[i-1] || closes[i-1] < finalLower[i-1] {
			finalLower[i] = basicLower
		} else {
			finalLower[i] = finalLower[i-1]
		}

		if st[i-1] == finalUpper[i-1] {
			// Was in downtrend: flip when close breaks above the upper band.
			if closes[i] > finalUpper[i] {
				st[i] = finalLower[i]
				dir[i] = TrendUp
			} else {
				st[i] = finalUpper[i]
				dir[i] = TrendDown
			}
		} else {
			// Was in uptrend: flip when close breaks below the lower band.
			if closes[i] < finalLower[i] {
				st[i] = finalUpper[i]
				dir[i] = TrendDown
			} else {
				st[i] = finalLower[i]
				dir[i] = TrendUp
			}
		}
	}

	snap.Supertrend = ptr(st[n-1])
	snap.SupertrendDir = dir[n-1]
}

// wilderADX returns the latest Wilder ADX value.
func wilderADX(highs, lows, closes []float64, period int) (float64, bool) {
	n := len(closes)
	if n < 2*period+1 {
		return 0, false
	}

	trs := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 1; i < n; i++ {
		upMove := highs[i] - highs[i-1]
		downMove := lows[i-1] - lows[i]

		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}

		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		trs[i] = math.Max(hl, math.Max(hc, lc))
	}

	// Wilder smoothing seeded with plain sums over the first window.
	var smTR, smPlus, smMinus float64
	for i := 1; i <= period; i++ {
		smTR += trs[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}

	dxAt := func(smTR, smPlus, smMinus float64) float64 {
		if smTR == 0 {
			return 0
		}
		plusDI := 100 * smPlus / smTR
		minusDI := 100 * smMinus / smTR
		if plusDI+minusDI == 0 {
			return 0
		}
		return 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
	}

	var adx float64
	var dxCount int
	for i := period + 1; i < n; i++ {
		smTR = smTR - smTR/float64(period) + trs[i]
		smPlus = smPlus - smPlus/float64(period) + plusDM[i]
		smMinus = smMinus - smMinus/float64(period) + minusDM[i]

		dx := dxAt(smTR, smPlus, smMinus)
		dxCount++

		if dxCount < period {
			adx += dx
		} else if dxCount == period {
			adx = (adx + dx) / float64(period)
		} else {
			adx = (adx*float64(period-1) + dx) / float64(period)
		}
	}

	if dxCount < period {
		return 0, false
	}
	return adx, true
}
