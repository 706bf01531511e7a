// Package di provides dependency injection factories for creating application components.
package di

import (
	"backtest_backend/internal/platform/externalapi/binance"
	infrahttp "backtest_backend/internal/platform/http"
	"backtest_backend/internal/shared/ratelimiter"
)

// NewMarket creates a fully configured BinanceMarket with HTTP client.
func NewMarket() *binance.BinanceMarket {
	cfg := binance.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return binance.NewBinanceMarket(cfg, httpClient)
}

// NewMarketRateLimiter creates the limiter pacing requests against the exchange API.
func NewMarketRateLimiter() *ratelimiter.RateLimiter {
	return ratelimiter.NewPerMinute(binance.LoadConfig().RateLimit)
}
