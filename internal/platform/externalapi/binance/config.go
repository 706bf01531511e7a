// Package binance provides a client for the Binance spot market data API.
package binance

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL   = "https://api.binance.com"
	defaultRateLimit = 1200
)

// Config holds configuration for the Binance API client.
type Config struct {
	APIKey    string        // Optional API key, sent as X-MBX-APIKEY
	BaseURL   string        // Base URL for the API (e.g., "https://api.binance.com")
	Timeout   time.Duration // HTTP request timeout
	RateLimit int           // Requests allowed per minute
}

// LoadConfig loads Binance configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:    os.Getenv("BINANCE_API_KEY"),
		BaseURL:   os.Getenv("BINANCE_BASE_URL"),
		Timeout:   10 * time.Second,
		RateLimit: defaultRateLimit,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if n, err := strconv.Atoi(os.Getenv("BINANCE_RATE_LIMIT")); err == nil && n > 0 {
		cfg.RateLimit = n
	}
	return cfg
}
