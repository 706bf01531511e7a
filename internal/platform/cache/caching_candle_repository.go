// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"backtest_backend/internal/feature/candles/domain/entity"
	"backtest_backend/internal/feature/candles/usecase"
)

// CachingCandleRepository decorates a CandleRepository with Redis caching of range queries.
// Per-day counts are never cached because the ingest job relies on them being fresh.
type CachingCandleRepository struct {
	inner     usecase.CandleRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

var _ usecase.CandleRepository = (*CachingCandleRepository)(nil)

// NewCachingCandleRepository decorates a CandleRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "candles".
// ttl applies to ranges reaching into the current UTC day; older ranges live for HistoryTTL.
func NewCachingCandleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CandleRepository, namespace string) *CachingCandleRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingCandleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       time.Now,
	}
}

// UpsertBatch inserts or updates candles and invalidates every cached range of the symbol.
func (c *CachingCandleRepository) UpsertBatch(ctx context.Context, symbol string, candles []entity.Candle) error {
	if err := c.inner.UpsertBatch(ctx, symbol, candles); err != nil {
		return err
	}
	if c.rdb == nil || len(candles) == 0 {
		return nil
	}
	_ = c.deleteByPattern(ctx, c.cacheKeyPrefix(symbol)+"*") // Best effort: don't fail if cache deletion fails
	return nil
}

// Find retrieves candles, checking cache first then falling back to the database.
func (c *CachingCandleRepository) Find(ctx context.Context, symbol string, from, to time.Time) ([]entity.Candle, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, symbol, from, to)
	}

	key := c.cacheKey(symbol, from, to)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.Find(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort); empty results are left uncached so a later ingest shows up
	if len(out) == 0 {
		return out, nil
	}
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, RangeTTL(to, c.now(), c.ttl)).Err()
	}

	return out, nil
}

// CountPerDay always reads through to the inner repository.
func (c *CachingCandleRepository) CountPerDay(ctx context.Context, symbol string, from, to time.Time) (map[string]int, error) {
	return c.inner.CountPerDay(ctx, symbol, from, to)
}

// cacheKey generates a cache key for a specific range query.
func (c *CachingCandleRepository) cacheKey(symbol string, from, to time.Time) string {
	return fmt.Sprintf("%s%d:%d", c.cacheKeyPrefix(symbol), from.Unix(), to.Unix())
}

// cacheKeyPrefix generates a prefix for invalidating related cache entries.
func (c *CachingCandleRepository) cacheKeyPrefix(symbol string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(symbol))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingCandleRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
