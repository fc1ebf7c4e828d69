package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process-level configuration.
// Strategy tunables (indicator periods, rating bands, ...) live in the
// YAML strategy file; this struct only knows where to find it.
type Config struct {
	Env string // development, staging, production

	// HTTP API
	Port string

	// Market data provider
	Provider ProviderConfig

	// Scanning
	Scan ScanConfig

	// Storage
	WatchlistPath string
	StrategyFile  string // empty means built-in defaults

	// Logging
	LogLevel  string
	LogFormat string
}

// ProviderConfig holds market data provider configuration.
type ProviderConfig struct {
	ChartBaseURL string
	QuoteBaseURL string

	RequestTimeout time.Duration
	MaxRetries     int
	RatePerSecond  float64
	RateBurst      int
}

// ScanConfig holds scan orchestration configuration.
type ScanConfig struct {
	Concurrency int
	Deadline    time.Duration // 0 means no global deadline
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8087"),

		Provider: ProviderConfig{
			ChartBaseURL:   getEnv("PROVIDER_CHART_URL", "https://query1.finance.yahoo.com"),
			QuoteBaseURL:   getEnv("PROVIDER_QUOTE_URL", "https://finance.yahoo.com"),
			RequestTimeout: getEnvAsDuration("PROVIDER_TIMEOUT", "10s"),
			MaxRetries:     getEnvAsInt("PROVIDER_MAX_RETRIES", 3),
			RatePerSecond:  getEnvAsFloat("PROVIDER_RATE_PER_SEC", 5.0),
			RateBurst:      getEnvAsInt("PROVIDER_RATE_BURST", 5),
		},

		Scan: ScanConfig{
			Concurrency: getEnvAsInt("SCAN_CONCURRENCY", 6),
			Deadline:    getEnvAsDuration("SCAN_DEADLINE", "0s"),
		},

		WatchlistPath: getEnv("WATCHLIST_PATH", "data/watchlist.json"),
		StrategyFile:  getEnv("STRATEGY_FILE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable.
// Invalid tunables fail fast at startup; this is the only fatal error class.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Provider.RequestTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive")
	}
	if c.Provider.MaxRetries < 0 {
		return fmt.Errorf("PROVIDER_MAX_RETRIES must be >= 0")
	}
	if c.Provider.RatePerSecond <= 0 {
		return fmt.Errorf("PROVIDER_RATE_PER_SEC must be positive")
	}

	if c.Scan.Concurrency < 1 || c.Scan.Concurrency > 64 {
		return fmt.Errorf("SCAN_CONCURRENCY must be in [1, 64], got %d", c.Scan.Concurrency)
	}
	if c.Scan.Deadline < 0 {
		return fmt.Errorf("SCAN_DEADLINE must be >= 0")
	}

	if c.WatchlistPath == "" {
		return fmt.Errorf("WATCHLIST_PATH is required")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
