package indicators

import (
	"math"

	"stockeye/internal/strategy"
)

// macdEpsilon guards the crossing/flat comparison against float jitter.
const macdEpsilon = 1e-9

// Calculator derives a technical Snapshot from a price series.
// It is a pure function of its inputs and safe for concurrent use.
type Calculator struct {
	ind strategy.Indicators
	sig strategy.Signals
}

// NewCalculator creates a calculator from strategy config.
func NewCalculator(cfg *strategy.Config) *Calculator {
	return &Calculator{
		ind: cfg.Indicators,
		sig: cfg.Signals,
	}
}

// Compute builds the snapshot for the latest bar of the series.
// It never fails as a whole: each indicator degrades to "not available"
// when its minimum history requirement is unmet.
func (c *Calculator) Compute(series Series) Snapshot {
	snap := Snapshot{}
	if len(series) == 0 {
		return snap
	}

	closes := series.Closes()
	last := len(series) - 1
	snap.Close = closes[last]

	if ma, ok := smaAt(closes, last, c.ind.DMAShort); ok {
		snap.ShortMA = ptr(ma)
	}
	if ma, ok := smaAt(closes, last, c.ind.DMALong); ok {
		snap.LongMA = ptr(ma)
	}

	if rsi, ok := wilderRSI(closes, c.ind.RSIPeriod); ok {
		snap.RSI = ptr(rsi)
	}

	c.computeMACD(closes, &snap)
	c.computeVolume(series, &snap)
	c.computeBollinger(closes, &snap)
	c.computeSupertrend(series, &snap)

	if adx, ok := wilderADX(series.Highs(), series.Lows(), closes, c.ind.ADXPeriod); ok {
		snap.ADX = ptr(adx)
	}

	snap.Cross = detectCross(series, c.ind.DMAShort, c.ind.DMALong)

	return snap
}

// smaAt returns the simple moving average of the window ending at index i.
func smaAt(values []float64, i, period int) (float64, bool) {
	if period <= 0 || i+1 < period {
		return 0, false
	}
	sum := 0.0
	for j := i - period + 1; j <= i; j++ {
		sum += values[j]
	}
	return sum / float64(period), true
}

// emaSeries returns the EMA curve seeded with the SMA of the first window.
// Entries before index period-1 are not meaningful.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) < period {
		return out
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out[period-1] = sum / float64(period)

	k := 2.0 / (float64(period) + 1.0)
	for i := period; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

// wilderRSI returns the latest Wilder-smoothed RSI value.
// When the average loss is zero the RSI is 100 by convention.
func wilderRSI(closes []float64, period int) (float64, bool) {
	if len(closes) < period+1 {
		return 0, false
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += -change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), true
}

// computeMACD fills the MACD line, signal, histogram and state.
// State is BULLISH only when MACD leads the signal line and the histogram
// has risen over the last two bars; BEARISH under the symmetric condition.
func (c *Calculator) computeMACD(closes []float64, snap *Snapshot) {
	fast, slow, signalPeriod := c.ind.MACDFast, c.ind.MACDSlow, c.ind.MACDSignal
	if len(closes) < slow {
		return
	}

	emaFast := emaSeries(closes, fast)
	emaSlow := emaSeries(closes, slow)

	// MACD line is meaningful from index slow-1 on.
	macdLine := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		macdLine = append(macdLine, emaFast[i]-emaSlow[i])
	}
	snap.MACD = ptr(macdLine[len(macdLine)-1])

	if len(macdLine) < signalPeriod {
		return
	}
	signal := emaSeries(macdLine, signalPeriod)
	snap.MACDSignal = ptr(signal[len(signal)-1])

	hist := make([]float64, len(macdLine))
	for i := signalPeriod - 1; i < len(macdLine); i++ {
		hist[i] = macdLine[i] - signal[i]
	}
	snap.MACDHist = ptr(hist[len(hist)-1])

	// Two histogram points are needed to judge direction.
	if len(macdLine) < signalPeriod+1 {
		snap.MACDState = MACDNeutral
		return
	}

	macd := macdLine[len(macdLine)-1]
	sig := signal[len(signal)-1]
	histNow := hist[len(hist)-1]
	histPrev := hist[len(hist)-2]

	eps := macdEpsilon * math.Max(1, math.Abs(macd))
	switch {
	case macd-sig > eps && histNow > histPrev:
		snap.MACDState = MACDBullish
	case sig-macd > eps && histNow < histPrev:
		snap.MACDState = MACDBearish
	default:
		snap.MACDState = MACDNeutral
	}
}

// computeVolume fills the volume ratio, state and liquidity aggregates.
func (c *Calculator) computeVolume(series Series, snap *Snapshot) {
	period := c.ind.VolumePeriod
	if len(series) < period {
		return
	}

	last := len(series) - 1
	var sumVol, sumValue float64
	for i := last - period + 1; i <= last; i++ {
		sumVol += float64(series[i].Volume)
		sumValue += float64(series[i].Volume) * series[i].Close
	}
	avgVol := sumVol / float64(period)
	snap.AvgVolume = ptr(avgVol)
	snap.AvgTradedValue = ptr(sumValue / float64(period))

	if avgVol == 0 {
		return
	}
	ratio := float64(series[last].Volume) / avgVol
	snap.VolumeRatio = ptr(ratio)

	// The three ranges partition [0, inf): HIGH / LOW / NORMAL.
	switch {
	case ratio >= c.sig.VolumeHighRatio:
		snap.VolumeState = VolumeHigh
	case ratio <= c.sig.VolumeLowRatio:
		snap.VolumeState = VolumeLow
	default:
		snap.VolumeState = VolumeNormal
	}
}

// computeBollinger fills the %B position scaled to [0, 100].
func (c *Calculator) computeBollinger(closes []float64, snap *Snapshot) {
	period := c.ind.BollingerPeriod
	last := len(closes) - 1

	mid, ok := smaAt(closes, last, period)
	if !ok {
		return
	}

	var sumSq float64
	for i := last - period + 1; i <= last; i++ {
		d := closes[i] - mid
		sumSq += d * d
	}
	stdev := math.Sqrt(sumSq / float64(period))
	if stdev == 0 {
		return
	}

	upper := mid + c.ind.BollingerMult*stdev
	lower := mid - c.ind.BollingerMult*stdev
	pos := (closes[last] - lower) / (upper - lower) * 100

	pos = math.Max(0, math.Min(100, pos))
	snap.BollingerPos = ptr(pos)
}

// detectCross scans the sign of (short MA - long MA) backward from the
// latest bar to the most recent sign change. Age is counted in calendar
// days between the cross bar and the latest bar.
func detectCross(series Series, short, long int) *Cross {
	if len(series) < long+1 {
		return nil
	}

	closes := series.Closes()

	sign := func(i int) int {
		s, okS := smaAt(closes, i, short)
		l, okL := smaAt(closes, i, long)
		if !okS || !okL {
			return 0
		}
		switch {
		case s > l:
			return 1
		case s < l:
			return -1
		default:
			return 0
		}
	}

	last := len(series) - 1
	latest := sign(last)
	if latest == 0 {
		return nil
	}

	// Walk back to the bar where the sign last differed.
	crossIdx := -1
	for i := last - 1; i >= long-1; i-- {
		s := sign(i)
		if s == 0 {
			continue
		}
		if s != latest {
			crossIdx = i + 1
			break
		}
	}
	if crossIdx < 0 {
		// Same sign for the whole usable history: no observed cross.
		return nil
	}

	kind := GoldenCross
	if latest < 0 {
		kind = DeathCross
	}

	age := int(series[last].Date.Sub(series[crossIdx].Date).Hours() / 24)
	return &Cross{
		Kind:    kind,
		AgeDays: age,
		Price:   series[crossIdx].Close,
	}
}
