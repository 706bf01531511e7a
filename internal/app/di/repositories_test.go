package di

import (
	"testing"

	"backtest_backend/internal/platform/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestOpenDatabase_MigratesEveryModel(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", t.TempDir()+"/backtest.db")
	t.Setenv("RUN_MIGRATIONS", "true")

	gdb, err := OpenDatabase()
	require.NoError(t, err)
	for _, table := range []string{"candles", "assets", "backtest_runs", "backtest_trades", "backtest_wealth_items", "backtest_skipped_signals"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}

func TestNewCandleRepository(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	_, cached := NewCandleRepository(gdb, nil).(*cache.CachingCandleRepository)
	assert.False(t, cached)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	_, cached = NewCandleRepository(gdb, rdb).(*cache.CachingCandleRepository)
	assert.True(t, cached)
}

func TestOpenRedis_Disabled(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	assert.Nil(t, OpenRedis(t.Context()))
}
