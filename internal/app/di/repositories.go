package di

import (
	"context"
	"log/slog"
	"time"

	assetentity "backtest_backend/internal/feature/assetlist/domain/entity"
	backtestadapters "backtest_backend/internal/feature/backtest/adapters"
	candleadapters "backtest_backend/internal/feature/candles/adapters"
	candlesusecase "backtest_backend/internal/feature/candles/usecase"
	"backtest_backend/internal/platform/cache"
	"backtest_backend/internal/platform/db"
	infraredis "backtest_backend/internal/platform/redis"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// candleCacheTTL is the lifetime of cached ranges that reach into the current UTC day.
const candleCacheTTL = 5 * time.Minute

// Models lists every table the application migrates.
func Models() []any {
	models := []any{&candleadapters.CandleModel{}, &assetentity.Asset{}}
	return append(models, backtestadapters.Models()...)
}

// OpenDatabase opens the configured database and migrates the schema when enabled.
func OpenDatabase() (*gorm.DB, error) {
	return db.OpenDB(db.LoadConfigFromEnv(), Models()...)
}

// OpenRedis returns a connected client, or nil when Redis is not configured or unreachable.
func OpenRedis(ctx context.Context) *redis.Client {
	cfg := infraredis.LoadConfigFromEnv()
	if !cfg.Enabled() {
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Warn("redis unavailable, running without cache", "error", err)
		return nil
	}
	return rdb
}

// NewCandleRepository returns the database candle repository, wrapped by the Redis cache when rdb is set.
func NewCandleRepository(gdb *gorm.DB, rdb *redis.Client) candlesusecase.CandleRepository {
	repo := candleadapters.NewCandleRepository(gdb)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingCandleRepository(rdb, candleCacheTTL, repo, "candles")
}
