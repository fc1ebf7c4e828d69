package strategy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	if len(cfg.Rating.Bands) != 6 {
		t.Errorf("expected 6 bands, got %d", len(cfg.Rating.Bands))
	}
	if cfg.Rating.Bands[0].Rating != "STRONG_BUY" {
		t.Errorf("top band must be STRONG_BUY, got %s", cfg.Rating.Bands[0].Rating)
	}
}

func TestHashDeterministic(t *testing.T) {
	cfg := Default()

	hash, err := Hash(cfg)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}

	hash2, _ := Hash(cfg)
	if hash != hash2 {
		t.Error("hash not deterministic")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	yaml := `
meta:
  strategy_id: test
  version: "1"
no_such_section:
  foo: 1
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValidateBandOrdering(t *testing.T) {
	cfg := Default()
	cfg.Rating.Bands = []Band{
		{MinCombined: 10, Rating: "BUY"},
		{MinCombined: 15, Rating: "ADD"}, // not decreasing
	}

	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for non-decreasing cut-points")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing strategy id", func(c *Config) { c.Meta.StrategyID = "" }},
		{"short >= long dma", func(c *Config) { c.Indicators.DMAShort = 200 }},
		{"rsi bands inverted", func(c *Config) { c.Signals.RSIOversold = 80 }},
		{"unknown rating name", func(c *Config) { c.Rating.Bands[0].Rating = "MOON" }},
		{"bad calendar month", func(c *Config) { c.Context.Calendar["month13"] = "NEUTRAL" }},
		{"bad calendar flag", func(c *Config) { c.Context.Calendar["jan"] = "GREAT" }},
		{"zero sector multiplier", func(c *Config) { c.Context.Sectors["Technology"] = 0 }},
		{"negative liquidity", func(c *Config) { c.Liquidity.MinAvgVolume = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
