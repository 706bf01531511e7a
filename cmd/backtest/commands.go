package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"backtest_backend/internal/app/di"
	"backtest_backend/internal/app/runfile"
	backtestadapters "backtest_backend/internal/feature/backtest/adapters"
	"backtest_backend/internal/feature/backtest/transport/http/dto"
	backtestusecase "backtest_backend/internal/feature/backtest/usecase"
	candlesusecase "backtest_backend/internal/feature/candles/usecase"
	"backtest_backend/internal/platform/db"
	jwtmw "backtest_backend/internal/platform/jwt"

	"github.com/goccy/go-json"
)

func printToken(w io.Writer, subject string, expiration time.Duration) error {
	cfg := jwtmw.LoadConfig()
	if expiration > 0 {
		cfg.Expiration = expiration
	}
	token, err := jwtmw.NewGenerator(cfg.Secret, cfg.Expiration).GenerateToken(subject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

func runBacktest(ctx context.Context, w io.Writer, file, dbPath string) error {
	rf, err := runfile.Load(file)
	if err != nil {
		return err
	}

	uc, err := newUsecase(rf, dbPath)
	if err != nil {
		return err
	}
	run, err := uc.Run(ctx, rf.Request)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(dto.NewRunResponse(run), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// newUsecase reads candles from the run's candles file when set, from the database otherwise.
func newUsecase(rf runfile.RunFile, dbPath string) (*backtestusecase.BacktestUsecase, error) {
	if rf.CandlesFile != "" {
		src, err := runfile.LoadCandlesFile(rf.CandlesFile)
		if err != nil {
			return nil, err
		}
		return backtestusecase.NewBacktestUsecase(src, backtestadapters.NewMemoryRunRepository()), nil
	}

	cfg := db.LoadConfigFromEnv()
	if dbPath != "" {
		cfg.Driver, cfg.SQLitePath, cfg.RunMigrations = db.DriverSQLite, dbPath, true
	}
	gdb, err := db.OpenDB(cfg, di.Models()...)
	if err != nil {
		return nil, err
	}
	fluctuations := candlesusecase.NewFluctuationsUsecase(di.NewCandleRepository(gdb, nil))
	return backtestusecase.NewBacktestUsecase(fluctuations, backtestadapters.NewRunRepository(gdb)), nil
}
