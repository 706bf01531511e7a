package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"backtest_backend/internal/app/di"
	"backtest_backend/internal/app/router"
	assetadapters "backtest_backend/internal/feature/assetlist/adapters"
	assethandler "backtest_backend/internal/feature/assetlist/transport/handler"
	assetusecase "backtest_backend/internal/feature/assetlist/usecase"
	backtestadapters "backtest_backend/internal/feature/backtest/adapters"
	backtesthandler "backtest_backend/internal/feature/backtest/transport/handler"
	backtestusecase "backtest_backend/internal/feature/backtest/usecase"
	candleshandler "backtest_backend/internal/feature/candles/transport/handler"
	candlesusecase "backtest_backend/internal/feature/candles/usecase"
	jwtmw "backtest_backend/internal/platform/jwt"
	"backtest_backend/internal/platform/logging"
)

func main() {
	// .env はローカル開発用。存在しなくてもよい
	_ = godotenv.Load()
	logging.Setup()

	// db
	db, err := di.OpenDatabase()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Redis（未設定または接続不可ならキャッシュなしで起動）
	rdb := di.OpenRedis(context.Background())
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}()
	}

	// Repository
	candleRepo := di.NewCandleRepository(db, rdb)
	assetRepo := assetadapters.NewAssetRepository(db)
	runRepo := backtestadapters.NewRunRepository(db)

	// Usecase
	fluctuationsUC := candlesusecase.NewFluctuationsUsecase(candleRepo)
	assetUC := assetusecase.NewAssetUsecase(assetRepo)
	backtestUC := backtestusecase.NewBacktestUsecase(fluctuationsUC, runRepo)

	// JWT_SECRETチェック（開発中の注意喚起）
	jwtCfg := jwtmw.LoadConfig()
	if jwtCfg.Secret == "" {
		slog.Warn("JWT_SECRET is not set; /backtests will answer 500")
	}

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Assets:    assethandler.NewAssetHandler(assetUC),
		Candles:   candleshandler.NewCandlesHandler(fluctuationsUC),
		Backtests: backtesthandler.NewBacktestHandler(backtestUC),
		DB:        sqlDB,
	}, router.Options{
		JWTSecret:       jwtCfg.Secret,
		AllowAllOrigins: os.Getenv("CORS_ALLOW_ALL") == "true",
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("listening", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
