// Package handler はbacktestフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"backtest_backend/internal/feature/backtest/domain/entity"
	"backtest_backend/internal/feature/backtest/domain/portfolio"
	"backtest_backend/internal/feature/backtest/transport/http/dto"
	"backtest_backend/internal/feature/backtest/usecase"
	market "backtest_backend/internal/feature/candles/domain/entity"
	candlesusecase "backtest_backend/internal/feature/candles/usecase"

	"github.com/gin-gonic/gin"
)

// BacktestUsecase はバックテストのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type BacktestUsecase interface {
	Run(ctx context.Context, req usecase.RunRequest) (*entity.Run, error)
	GetRun(ctx context.Context, id string) (*entity.Run, error)
}

// BacktestHandler はバックテストのHTTPリクエストを処理します。
type BacktestHandler struct {
	uc BacktestUsecase
}

// NewBacktestHandler は新しい BacktestHandler を作成します。
func NewBacktestHandler(uc BacktestUsecase) *BacktestHandler {
	return &BacktestHandler{uc: uc}
}

// Create はリクエストのシグナルでバックテストを実行し、結果を返します。
//
// エンドポイント: POST /backtests
func (h *BacktestHandler) Create(c *gin.Context) {
	var body dto.RunRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	run, err := h.uc.Run(c.Request.Context(), toRunRequest(body))
	if err != nil {
		c.JSON(statusOf(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.NewRunResponse(run))
}

// Get は保存済みのバックテスト結果を返します。
//
// エンドポイント: GET /backtests/:id
func (h *BacktestHandler) Get(c *gin.Context) {
	run, err := h.uc.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusOf(err), dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewRunResponse(run))
}

func toRunRequest(body dto.RunRequest) usecase.RunRequest {
	req := usecase.RunRequest{
		Coin:      body.Coin,
		Currency:  body.Currency,
		Timeframe: body.Timeframe,
		From:      body.From,
		To:        body.To,
		FeesPct:   usecase.DefaultFeesPct,
		Risk: entity.RiskConfig{
			Size:       body.Risk.Size,
			TakeProfit: body.Risk.TakeProfit,
			StopLoss:   body.Risk.StopLoss,
		},
		InitialCurrency: body.InitialCurrency,
		InitialAsset:    body.InitialAsset,
		Signals:         make([]entity.Signal, 0, len(body.Signals)),
	}
	if req.Timeframe == "" {
		req.Timeframe = candlesusecase.DefaultTimeframe
	}
	if body.FeesPct != nil {
		req.FeesPct = *body.FeesPct
	}
	for _, s := range body.Signals {
		req.Signals = append(req.Signals, entity.Signal{Date: s.Date, Side: entity.Side(s.Side), Action: entity.Action(s.Action)})
	}
	return req
}

// statusOf はエラーの種類をHTTPステータスに対応付けます。
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest),
		errors.Is(err, candlesusecase.ErrInvalidQuery),
		errors.Is(err, entity.ErrInvalidRiskConfig),
		errors.Is(err, entity.ErrInvalidSignal),
		errors.Is(err, portfolio.ErrNegativeBalance):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrRunNotFound),
		errors.Is(err, candlesusecase.ErrNoCandles):
		return http.StatusNotFound
	case errors.Is(err, market.ErrOutOfRange),
		errors.Is(err, market.ErrEmptyFluctuations),
		errors.Is(err, entity.ErrInvalidPosition),
		errors.Is(err, portfolio.ErrInsufficientCapital),
		errors.Is(err, portfolio.ErrInsufficientAsset),
		errors.Is(err, portfolio.ErrEntryBeforeOpenEntry):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
