package config

import (
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT",
		"PROVIDER_CHART_URL", "PROVIDER_QUOTE_URL", "PROVIDER_TIMEOUT",
		"PROVIDER_MAX_RETRIES", "PROVIDER_RATE_PER_SEC", "PROVIDER_RATE_BURST",
		"SCAN_CONCURRENCY", "SCAN_DEADLINE",
		"WATCHLIST_PATH", "STRATEGY_FILE",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.Port != "8087" {
		t.Errorf("Port = %q, want 8087", cfg.Port)
	}
	if cfg.Provider.RequestTimeout != 10*time.Second {
		t.Errorf("Provider.RequestTimeout = %v, want 10s", cfg.Provider.RequestTimeout)
	}
	if cfg.Provider.MaxRetries != 3 {
		t.Errorf("Provider.MaxRetries = %d, want 3", cfg.Provider.MaxRetries)
	}
	if cfg.Provider.RatePerSecond != 5.0 {
		t.Errorf("Provider.RatePerSecond = %v, want 5.0", cfg.Provider.RatePerSecond)
	}
	if cfg.Scan.Concurrency != 6 {
		t.Errorf("Scan.Concurrency = %d, want 6", cfg.Scan.Concurrency)
	}
	if cfg.Scan.Deadline != 0 {
		t.Errorf("Scan.Deadline = %v, want 0", cfg.Scan.Deadline)
	}
	if cfg.WatchlistPath != "data/watchlist.json" {
		t.Errorf("WatchlistPath = %q, want data/watchlist.json", cfg.WatchlistPath)
	}
	if cfg.StrategyFile != "" {
		t.Errorf("StrategyFile = %q, want empty", cfg.StrategyFile)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadCustomValues(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("PROVIDER_TIMEOUT", "30s")
	t.Setenv("PROVIDER_RATE_PER_SEC", "2.5")
	t.Setenv("SCAN_CONCURRENCY", "12")
	t.Setenv("SCAN_DEADLINE", "5m")
	t.Setenv("WATCHLIST_PATH", "/var/lib/stockeye/watchlist.json")
	t.Setenv("STRATEGY_FILE", "strategy.yaml")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.Provider.RequestTimeout != 30*time.Second {
		t.Errorf("Provider.RequestTimeout = %v, want 30s", cfg.Provider.RequestTimeout)
	}
	if cfg.Provider.RatePerSecond != 2.5 {
		t.Errorf("Provider.RatePerSecond = %v, want 2.5", cfg.Provider.RatePerSecond)
	}
	if cfg.Scan.Concurrency != 12 {
		t.Errorf("Scan.Concurrency = %d, want 12", cfg.Scan.Concurrency)
	}
	if cfg.Scan.Deadline != 5*time.Minute {
		t.Errorf("Scan.Deadline = %v, want 5m", cfg.Scan.Deadline)
	}
	if cfg.WatchlistPath != "/var/lib/stockeye/watchlist.json" {
		t.Errorf("WatchlistPath = %q", cfg.WatchlistPath)
	}
	if cfg.StrategyFile != "strategy.yaml" {
		t.Errorf("StrategyFile = %q, want strategy.yaml", cfg.StrategyFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid env", "ENV", "testing"},
		{"zero concurrency", "SCAN_CONCURRENCY", "0"},
		{"excessive concurrency", "SCAN_CONCURRENCY", "100"},
		{"negative retries", "PROVIDER_MAX_RETRIES", "-1"},
		{"zero rate", "PROVIDER_RATE_PER_SEC", "0"},
		{"negative deadline", "SCAN_DEADLINE", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := getEnvAsInt("TEST_INT", 1); got != 42 {
		t.Errorf("getEnvAsInt = %d, want 42", got)
	}

	t.Setenv("TEST_INT", "not-a-number")
	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt with invalid value = %d, want default 7", got)
	}

	t.Setenv("TEST_INT", "")
	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt with empty value = %d, want default 7", got)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "3.5")
	if got := getEnvAsFloat("TEST_FLOAT", 1.0); got != 3.5 {
		t.Errorf("getEnvAsFloat = %v, want 3.5", got)
	}

	t.Setenv("TEST_FLOAT", "garbage")
	if got := getEnvAsFloat("TEST_FLOAT", 2.0); got != 2.0 {
		t.Errorf("getEnvAsFloat with invalid value = %v, want default 2.0", got)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	if got := getEnvAsDuration("TEST_DUR", "10s"); got != 90*time.Second {
		t.Errorf("getEnvAsDuration = %v, want 90s", got)
	}

	t.Setenv("TEST_DUR", "nonsense")
	if got := getEnvAsDuration("TEST_DUR", "10s"); got != 10*time.Second {
		t.Errorf("getEnvAsDuration with invalid value = %v, want default 10s", got)
	}

	t.Setenv("TEST_DUR", "")
	if got := getEnvAsDuration("TEST_DUR", "15s"); got != 15*time.Second {
		t.Errorf("getEnvAsDuration with empty value = %v, want default 15s", got)
	}
}
