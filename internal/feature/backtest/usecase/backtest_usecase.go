// Package usecase はシグナルのマッチング、トレード計算、バックテスト実行のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"backtest_backend/internal/feature/backtest/domain/entity"
	"backtest_backend/internal/feature/backtest/domain/portfolio"
	market "backtest_backend/internal/feature/candles/domain/entity"
	candlesusecase "backtest_backend/internal/feature/candles/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultFeesPct はリクエストで手数料率が省略された場合に使う既定値です。
const DefaultFeesPct = 0.001

// FluctuationsSource は価格系列の取得を抽象化します。
type FluctuationsSource interface {
	Request(ctx context.Context, q candlesusecase.FluctuationsQuery) (*market.Fluctuations, error)
}

// RunRepository はバックテスト結果の永続化レイヤーを抽象化します。
type RunRepository interface {
	Save(ctx context.Context, run *entity.Run) error
	FindByID(ctx context.Context, id string) (*entity.Run, error)
}

// RunRequest はバックテスト実行の入力です。
type RunRequest struct {
	Coin      string    `validate:"required"`
	Currency  string    `validate:"required"`
	Timeframe string    `validate:"required"`
	From      time.Time `validate:"required"`
	To        time.Time `validate:"required,gtfield=From"`
	FeesPct   float64   `validate:"gte=0,lt=1"`
	Risk      entity.RiskConfig

	InitialCurrency decimal.Decimal
	InitialAsset    decimal.Decimal

	Signals []entity.Signal `validate:"required,min=1"`
}

// BacktestUsecase はバックテストの実行と取得を扱います。
type BacktestUsecase struct {
	source   FluctuationsSource
	runs     RunRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewBacktestUsecase は新しい BacktestUsecase を作成します。
func NewBacktestUsecase(source FluctuationsSource, runs RunRepository) *BacktestUsecase {
	return &BacktestUsecase{source: source, runs: runs, validate: validator.New(), now: time.Now}
}

// Run は価格系列を読み込み、シグナルをシミュレートし、結果を保存して返します。
func (bu *BacktestUsecase) Run(ctx context.Context, req RunRequest) (*entity.Run, error) {
	if err := req.Risk.Validate(); err != nil {
		return nil, err
	}
	if err := bu.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	fl, err := bu.source.Request(ctx, candlesusecase.FluctuationsQuery{
		Coin:      req.Coin,
		Currency:  req.Currency,
		From:      req.From,
		To:        req.To,
		Timeframe: req.Timeframe,
	})
	if err != nil {
		return nil, err
	}

	initial, err := portfolio.New(req.From, req.InitialAsset, req.InitialCurrency)
	if err != nil {
		return nil, err
	}

	res, err := ProcessSignals(req.Signals, req.Risk, req.FeesPct, fl, initial)
	if err != nil {
		return nil, err
	}

	run := &entity.Run{
		ID:              uuid.NewString(),
		Asset:           fl.Asset(),
		Timeframe:       req.Timeframe,
		From:            req.From,
		To:              req.To,
		FeesPct:         req.FeesPct,
		Risk:            req.Risk,
		CreatedAt:       bu.now().UTC(),
		InitialCurrency: req.InitialCurrency,
		Trades:          res.Trades,
		Wealth:          res.Portfolio.Items(),
		Skipped:         res.Skipped,
		Summary:         Summarize(res, req.InitialCurrency),
	}
	if err := bu.runs.Save(ctx, run); err != nil {
		return nil, err
	}

	slog.Info("backtest finished", "id", run.ID, "asset", run.Asset, "trades", run.Summary.Trades, "skipped", run.Summary.Skipped)
	return run, nil
}

// GetRun は保存済みのバックテスト結果を返します。存在しない場合は entity.ErrRunNotFound を返します。
func (bu *BacktestUsecase) GetRun(ctx context.Context, id string) (*entity.Run, error) {
	return bu.runs.FindByID(ctx, id)
}
