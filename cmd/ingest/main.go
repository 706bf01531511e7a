package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"backtest_backend/internal/app/di"
	assetadapters "backtest_backend/internal/feature/assetlist/adapters"
	assetusecase "backtest_backend/internal/feature/assetlist/usecase"
	candlesusecase "backtest_backend/internal/feature/candles/usecase"
	"backtest_backend/internal/platform/logging"
)

const defaultIngestDays = 7

func main() {
	_ = godotenv.Load()
	logging.Setup()

	db, err := di.OpenDatabase()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	rdb := di.OpenRedis(context.Background())
	if rdb != nil {
		defer rdb.Close()
	}

	// キャッシュ経由で書き込み、該当シンボルのキャッシュを無効化する
	candleRepo := di.NewCandleRepository(db, rdb)
	assetUC := assetusecase.NewAssetUsecase(assetadapters.NewAssetRepository(db))
	uc := candlesusecase.NewIngestUsecase(di.NewMarket(), candleRepo, di.NewMarketRateLimiter())

	// 直近 INGEST_DAYS 日分（今日を除く）を対象にする
	days := defaultIngestDays
	if n, err := strconv.Atoi(os.Getenv("INGEST_DAYS")); err == nil && n > 0 {
		days = n
	}
	to := time.Now().UTC().Truncate(24 * time.Hour).Add(-time.Minute)
	from := to.AddDate(0, 0, -days+1)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	symbols, err := assetUC.ActiveSymbols(ctx)
	if err != nil {
		slog.Error("failed to load symbols", "error", err)
		os.Exit(1)
	}

	if err := uc.IngestAll(ctx, symbols, from, to); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
	slog.Info("ingest ok", "symbols", len(symbols), "from", from, "to", to)
}
