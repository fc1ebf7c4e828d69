package fundamentals

import "testing"

func f(v float64) *float64 { return &v }

func fullSnapshot() *Snapshot {
	return &Snapshot{
		ROE:             f(0.25),
		DebtToEquity:    f(0.4),
		RevenueGrowth:   f(0.20),
		ProfitMargin:    f(0.18),
		PromoterHolding: f(55),
		PriceToBook:     f(2.5),
		DividendYield:   f(0.02),
		OperatingMargin: f(0.22),
		CurrentRatio:    f(2.0),
		PEG:             f(1.2),
		PE:              f(22),
		EBITDAMargin:    f(0.30),
	}
}

func TestScoreAllCriteriaMet(t *testing.T) {
	s := NewScorer()
	got := s.Score(fullSnapshot())

	if got.FScore != 12 {
		t.Fatalf("FScore = %d, want 12", got.FScore)
	}
	if got.Incomplete {
		t.Fatal("complete snapshot flagged incomplete")
	}
}

func TestScoreEmptySnapshot(t *testing.T) {
	s := NewScorer()
	got := s.Score(&Snapshot{})

	if got.FScore != 0 {
		t.Fatalf("FScore = %d, want 0", got.FScore)
	}
	if !got.Incomplete {
		t.Fatal("empty snapshot not flagged incomplete")
	}
	if got.Quality != 0 || got.Growth != 0 || got.Value != 0 {
		t.Fatalf("sub-scores nonzero on empty snapshot: %+v", got)
	}
}

func TestScoreNilSnapshot(t *testing.T) {
	got := NewScorer().Score(nil)
	if got.FScore != 0 || !got.Incomplete {
		t.Fatalf("nil snapshot: %+v", got)
	}
}

func TestScoreMissingFieldIsUnmet(t *testing.T) {
	snap := fullSnapshot()
	snap.ROE = nil // core criterion worth 2 points
	got := NewScorer().Score(snap)

	if got.FScore != 10 {
		t.Fatalf("FScore = %d, want 10", got.FScore)
	}
	if got.Incomplete {
		t.Fatal("7 of 8 criteria present should not be incomplete")
	}
}

func TestScoreIncompleteThreshold(t *testing.T) {
	// Exactly 4 of 8 criteria inputs present: still complete.
	snap := &Snapshot{
		ROE:           f(0.25),
		DebtToEquity:  f(0.4),
		RevenueGrowth: f(0.20),
		ProfitMargin:  f(0.18),
	}
	got := NewScorer().Score(snap)
	if got.Incomplete {
		t.Fatal("half present flagged incomplete")
	}
	if got.FScore != 8 {
		t.Fatalf("FScore = %d, want 8", got.FScore)
	}

	snap.ProfitMargin = nil // 3 of 8 present
	got = NewScorer().Score(snap)
	if !got.Incomplete {
		t.Fatal("3 of 8 present not flagged incomplete")
	}
}

func TestScoreCriterionBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
		want   int
	}{
		{"roe at threshold unmet", func(s *Snapshot) { s.ROE = f(0.15) }, 10},
		{"debt at threshold unmet", func(s *Snapshot) { s.DebtToEquity = f(1.0) }, 10},
		{"promoter below band", func(s *Snapshot) { s.PromoterHolding = f(39.9) }, 11},
		{"promoter above band", func(s *Snapshot) { s.PromoterHolding = f(70.1) }, 11},
		{"pb negative unmet", func(s *Snapshot) { s.PriceToBook = f(-1) }, 11},
		{"yield at threshold unmet", func(s *Snapshot) { s.DividendYield = f(0.01) }, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := fullSnapshot()
			tt.mutate(snap)
			got := NewScorer().Score(snap)
			if got.FScore != tt.want {
				t.Fatalf("FScore = %d, want %d", got.FScore, tt.want)
			}
		})
	}
}

func TestSubScoresBounded(t *testing.T) {
	extremes := []*Snapshot{
		fullSnapshot(),
		{ROE: f(10), OperatingMargin: f(5), CurrentRatio: f(100), RevenueGrowth: f(3)},
		{DebtToEquity: f(50), PriceToBook: f(200), PE: f(900), PEG: f(40)},
	}
	s := NewScorer()
	for i, snap := range extremes {
		got := s.Score(snap)
		for name, v := range map[string]float64{
			"quality": got.Quality,
			"growth":  got.Growth,
			"value":   got.Value,
		} {
			if v < 0 || v > 10 {
				t.Fatalf("snapshot %d: %s = %v out of [0,10]", i, name, v)
			}
		}
	}
}

func TestSubScoresRewardStrength(t *testing.T) {
	s := NewScorer()
	strong := s.Score(fullSnapshot())

	weak := fullSnapshot()
	weak.ROE = f(0.02)
	weak.OperatingMargin = f(0.03)
	weak.DebtToEquity = f(1.9)
	got := s.Score(weak)

	if got.Quality >= strong.Quality {
		t.Fatalf("weak quality %v not below strong %v", got.Quality, strong.Quality)
	}
}
