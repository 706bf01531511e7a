package adapters

import (
	"context"
	"testing"
	"time"

	"backtest_backend/internal/feature/backtest/domain/entity"
	"backtest_backend/internal/feature/backtest/domain/portfolio"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(Models()...)
	require.NoError(t, err, "failed to migrate tables")

	return db
}

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// sampleRun はトレード2件と見送り1件を持つ実行結果を作成します。
func sampleRun(t *testing.T) *entity.Run {
	t.Helper()

	var trades []entity.Trade
	for i, side := range []entity.Side{entity.Long, entity.Short} {
		pos, err := entity.OpenPosition(entity.OpenParams{
			Side: side, OpenDate: day.Add(time.Duration(i) * time.Hour), OpenPrice: 100, Investment: 50, FeesPct: 0.001,
			HigherBarrier: 110, LowerBarrier: 95,
		})
		require.NoError(t, err)
		tr, err := pos.CloseOn(entity.ExitDecision{Mode: entity.ExitHighBarrier, Price: 110, Date: day.Add(5 * time.Hour)})
		require.NoError(t, err)
		trades = append(trades, tr)
	}

	return &entity.Run{
		ID:              uuid.NewString(),
		Asset:           "BTCUSDT",
		Timeframe:       "1h",
		From:            day,
		To:              day.AddDate(0, 0, 1),
		FeesPct:         0.001,
		Risk:            entity.RiskConfig{Size: 0.5, TakeProfit: 0.1, StopLoss: 0.05},
		CreatedAt:       day.AddDate(0, 1, 0),
		InitialCurrency: decimal.NewFromInt(100),
		Trades:          trades,
		Wealth: []portfolio.WealthItem{
			{Date: day, Asset: decimal.Zero, Currency: decimal.NewFromInt(100)},
			{Date: day.Add(time.Hour), Asset: decimal.RequireFromString("0.4995"), Currency: decimal.RequireFromString("50.123456789012345678")},
		},
		Skipped: []entity.SkippedSignal{
			{Signal: entity.Signal{Date: day.Add(30 * time.Hour), Side: entity.Long, Action: entity.Enter}, Reason: entity.SkipBeyondData},
		},
		Summary: entity.Summary{Trades: 2, Wins: 1, Losses: 1, WinRate: 0.5, FinalCurrency: decimal.NewFromInt(101), Skipped: 1},
	}
}

func TestNewRunRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewRunRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestRunMySQL_SaveAndFind(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewRunRepository(db)
	ctx := context.Background()
	want := sampleRun(t)

	require.NoError(t, repo.Save(ctx, want))

	for model, n := range map[any]int64{&TradeModel{}: 2, &WealthItemModel{}: 2, &SkippedSignalModel{}: 1} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, n, count)
	}

	got, err := repo.FindByID(ctx, want.ID)
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Asset, got.Asset)
	assert.Equal(t, want.Risk, got.Risk)
	assert.True(t, want.From.Equal(got.From))
	assert.True(t, want.InitialCurrency.Equal(got.InitialCurrency))

	require.Len(t, got.Trades, 2)
	for i := range want.Trades {
		assert.Equal(t, want.Trades[i].Side, got.Trades[i].Side)
		assert.Equal(t, want.Trades[i].ExitMode, got.Trades[i].ExitMode)
		assert.InDelta(t, want.Trades[i].TotalProfit(), got.Trades[i].TotalProfit(), 1e-12)
		assert.True(t, want.Trades[i].OpenDate.Equal(got.Trades[i].OpenDate))
		assert.True(t, got.Trades[i].IsClosed())
	}

	require.Len(t, got.Wealth, 2)
	assert.True(t, want.Wealth[1].Currency.Equal(got.Wealth[1].Currency), "decimal must survive exactly")
	assert.True(t, want.Wealth[1].Asset.Equal(got.Wealth[1].Asset))

	require.Len(t, got.Skipped, 1)
	assert.Equal(t, entity.SkipBeyondData, got.Skipped[0].Reason)
	assert.Equal(t, entity.Long, got.Skipped[0].Signal.Side)

	assert.Equal(t, 2, got.Summary.Trades)
	assert.True(t, got.Summary.FinalCurrency.Equal(decimal.NewFromInt(101)))
}

func TestRunMySQL_SaveEmptyRun(t *testing.T) {
	t.Parallel()

	repo := NewRunRepository(setupTestDB(t))
	run := sampleRun(t)
	run.Trades, run.Skipped = nil, nil

	require.NoError(t, repo.Save(context.Background(), run))

	got, err := repo.FindByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Trades)
	assert.Len(t, got.Wealth, 2)
}

func TestRunMySQL_SaveDuplicateID(t *testing.T) {
	t.Parallel()

	repo := NewRunRepository(setupTestDB(t))
	run := sampleRun(t)

	require.NoError(t, repo.Save(context.Background(), run))
	assert.Error(t, repo.Save(context.Background(), run))

	got, err := repo.FindByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Len(t, got.Trades, 2, "failed transaction must not add rows")
}

func TestRunMySQL_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewRunRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrRunNotFound)
}
