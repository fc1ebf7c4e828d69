package indicators

import (
	"testing"
	"time"

	"stockeye/internal/strategy"
)

// testConfig returns a strategy config with short lookbacks so tests can
// work with small hand-built series.
func testConfig() *strategy.Config {
	cfg := strategy.Default()
	cfg.Indicators.DMAShort = 2
	cfg.Indicators.DMALong = 3
	cfg.Indicators.RSIPeriod = 3
	cfg.Indicators.MACDFast = 3
	cfg.Indicators.MACDSlow = 6
	cfg.Indicators.MACDSignal = 3
	cfg.Indicators.VolumePeriod = 3
	cfg.Indicators.BollingerPeriod = 3
	cfg.Indicators.SupertrendPeriod = 3
	cfg.Indicators.SupertrendMult = 1.0
	cfg.Indicators.ADXPeriod = 3
	return cfg
}

// mkSeries builds a daily series from closes, with a fixed 1.0 bar range
// and constant volume unless volumes are supplied.
func mkSeries(closes []float64, volumes ...int64) Series {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(Series, len(closes))
	for i, c := range closes {
		vol := int64(1000)
		if len(volumes) > i {
			vol = volumes[i]
		}
		s[i] = Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: vol,
		}
	}
	return s
}

func ramp(n int, from, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSeriesValidate(t *testing.T) {
	s := mkSeries([]float64{1, 2, 3})
	if err := s.Validate(); err != nil {
		t.Fatalf("valid series rejected: %v", err)
	}

	s[2].Date = s[1].Date // duplicate date
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for duplicate date")
	}
}

func TestComputeEmptyAndShortSeries(t *testing.T) {
	calc := NewCalculator(testConfig())

	snap := calc.Compute(nil)
	if snap.ShortMA != nil || snap.RSI != nil || snap.Cross != nil {
		t.Fatal("empty series must produce an empty snapshot")
	}

	// Two bars: short MA available (period 2), everything longer degraded.
	snap = calc.Compute(mkSeries([]float64{10, 12}))
	if snap.ShortMA == nil {
		t.Error("short MA should be available with 2 bars")
	}
	if snap.LongMA != nil {
		t.Error("long MA must degrade with 2 bars")
	}
	if snap.RSI != nil {
		t.Error("RSI must degrade with 2 bars")
	}
	if snap.MACDState != MACDUnknown {
		t.Errorf("MACD state must stay UNKNOWN, got %s", snap.MACDState)
	}
	if snap.ADX != nil || snap.Cross != nil {
		t.Error("ADX and cross must degrade with 2 bars")
	}
}

func TestRSIRangeAndAllGains(t *testing.T) {
	calc := NewCalculator(testConfig())

	// Strictly rising closes: average loss is zero, RSI pegs at 100.
	snap := calc.Compute(mkSeries(ramp(10, 100, 1)))
	if snap.RSI == nil {
		t.Fatal("RSI missing")
	}
	if *snap.RSI != 100 {
		t.Errorf("all-gain RSI = %v, want 100", *snap.RSI)
	}

	// Mixed moves stay inside [0, 100].
	snap = calc.Compute(mkSeries([]float64{10, 12, 9, 14, 11, 13, 8, 15}))
	if snap.RSI == nil {
		t.Fatal("RSI missing")
	}
	if *snap.RSI < 0 || *snap.RSI > 100 {
		t.Errorf("RSI out of range: %v", *snap.RSI)
	}
}

func TestVolumeStatePartition(t *testing.T) {
	calc := NewCalculator(testConfig())

	tests := []struct {
		name    string
		volumes []int64
		want    VolumeState
	}{
		{"high", []int64{100, 100, 100, 100, 400}, VolumeHigh},
		{"low", []int64{1000, 1000, 1000, 1000, 100}, VolumeLow},
		{"normal", []int64{1000, 1000, 1000, 1000, 1100}, VolumeNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closes := flat(len(tt.volumes), 50)
			snap := calc.Compute(mkSeries(closes, tt.volumes...))
			if snap.VolumeState != tt.want {
				t.Errorf("volume state = %s, want %s (ratio %v)",
					snap.VolumeState, tt.want, snap.VolumeRatio)
			}
		})
	}
}

func TestGoldenCrossDetection(t *testing.T) {
	calc := NewCalculator(testConfig())

	// Long decline then a sharp recovery flips short MA above long MA.
	closes := []float64{10, 10, 10, 10, 1, 20, 30}
	snap := calc.Compute(mkSeries(closes))

	if snap.Cross == nil {
		t.Fatal("expected a cross")
	}
	if snap.Cross.Kind != GoldenCross {
		t.Errorf("kind = %s, want GOLDEN_CROSS", snap.Cross.Kind)
	}
	if snap.Cross.AgeDays != 1 {
		t.Errorf("age = %d, want 1", snap.Cross.AgeDays)
	}

	// One more bar without a new cross ages it by exactly one day.
	closes = append(closes, 31)
	snap = calc.Compute(mkSeries(closes))
	if snap.Cross == nil || snap.Cross.AgeDays != 2 {
		t.Fatalf("age after one more bar = %+v, want 2", snap.Cross)
	}
}

func TestDeathCrossDetection(t *testing.T) {
	calc := NewCalculator(testConfig())

	closes := []float64{10, 10, 10, 10, 30, 5, 2}
	snap := calc.Compute(mkSeries(closes))

	if snap.Cross == nil {
		t.Fatal("expected a cross")
	}
	if snap.Cross.Kind != DeathCross {
		t.Errorf("kind = %s, want DEATH_CROSS", snap.Cross.Kind)
	}
	if snap.Cross.AgeDays < 0 {
		t.Errorf("age must be >= 0, got %d", snap.Cross.AgeDays)
	}
}

func TestNoCrossOnMonotoneHistory(t *testing.T) {
	calc := NewCalculator(testConfig())

	// Short MA leads long MA for the whole usable history.
	snap := calc.Compute(mkSeries(ramp(12, 100, 2)))
	if snap.Cross != nil {
		t.Errorf("expected no cross, got %+v", snap.Cross)
	}
}

func TestBollingerPositionClamped(t *testing.T) {
	calc := NewCalculator(testConfig())

	// A huge final spike pushes %B to the top of the band; must clamp.
	snap := calc.Compute(mkSeries([]float64{50, 51, 49, 50, 500}))
	if snap.BollingerPos == nil {
		t.Fatal("bollinger position missing")
	}
	if *snap.BollingerPos < 0 || *snap.BollingerPos > 100 {
		t.Errorf("%%B out of [0,100]: %v", *snap.BollingerPos)
	}
}

func TestMACDBullishOnFreshImpulse(t *testing.T) {
	calc := NewCalculator(testConfig())

	// Accelerating impulse: a linear ramp lets the histogram roll
	// over as momentum saturates, so the advance must steepen.
	closes := append(flat(10, 100), 102, 105, 110)
	snap := calc.Compute(mkSeries(closes))

	if snap.MACD == nil || snap.MACDSignal == nil || snap.MACDHist == nil {
		t.Fatal("MACD fields missing")
	}
	if snap.MACDState != MACDBullish {
		t.Errorf("state = %s, want BULLISH (hist %v)", snap.MACDState, *snap.MACDHist)
	}
}

func TestSupertrendDirectionOnTrend(t *testing.T) {
	calc := NewCalculator(testConfig())

	up := calc.Compute(mkSeries(ramp(30, 100, 1)))
	if up.Supertrend == nil {
		t.Fatal("supertrend missing")
	}
	if up.SupertrendDir != TrendUp {
		t.Errorf("direction on rising series = %s, want UP", up.SupertrendDir)
	}

	down := calc.Compute(mkSeries(ramp(30, 130, -1)))
	if down.SupertrendDir != TrendDown {
		t.Errorf("direction on falling series = %s, want DOWN", down.SupertrendDir)
	}
}

func TestADXBoundsOnTrendingSeries(t *testing.T) {
	calc := NewCalculator(testConfig())

	snap := calc.Compute(mkSeries(ramp(40, 100, 1)))
	if snap.ADX == nil {
		t.Fatal("ADX missing")
	}
	if *snap.ADX < 0 || *snap.ADX > 100 {
		t.Errorf("ADX out of range: %v", *snap.ADX)
	}
	if !snap.HasStrongTrend() {
		t.Errorf("steady one-way trend should read as strong, ADX=%v", *snap.ADX)
	}
}
