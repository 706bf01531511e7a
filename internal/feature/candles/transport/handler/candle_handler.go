// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"backtest_backend/internal/feature/candles/domain/entity"
	"backtest_backend/internal/feature/candles/transport/http/dto"
	"backtest_backend/internal/feature/candles/usecase"

	"github.com/gin-gonic/gin"
)

// FluctuationsUsecase は価格系列取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type FluctuationsUsecase interface {
	Request(ctx context.Context, q usecase.FluctuationsQuery) (*entity.Fluctuations, error)
}

// CandlesHandler はローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc FluctuationsUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc FluctuationsUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandlesHandler は取引ペアと期間を受け取り、指定時間足に集約したローソク足をJSONで返します。
//
// エンドポイント例:
// GET /candles/BTC-USDT?timeframe=1h&from=2024-01-01T00:00:00Z&to=2024-01-02T00:00:00Z
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	coin, currency, ok := strings.Cut(c.Param("symbol"), "-")
	if !ok || coin == "" || currency == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "symbol must look like COIN-CURRENCY"})
		return
	}

	var q dto.CandleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	// 未指定の場合はデフォルト値を使用
	if q.Timeframe == "" {
		q.Timeframe = usecase.DefaultTimeframe
	}

	fl, err := h.uc.Request(c.Request.Context(), usecase.FluctuationsQuery{
		Coin:      coin,
		Currency:  currency,
		From:      q.From,
		To:        q.To,
		Timeframe: q.Timeframe,
	})
	if err != nil {
		c.JSON(statusOf(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]dto.CandleResponse, 0, fl.Len())
	for _, x := range fl.All() {
		out = append(out, dto.CandleResponse{
			OpenTime:  x.OpenTime,
			CloseTime: x.CloseTime,
			Open:      x.Open,
			High:      x.High,
			Low:       x.Low,
			Close:     x.Close,
			Volume:    x.Volume,
			HighTime:  x.HighTime,
			LowTime:   x.LowTime,
		})
	}

	c.JSON(http.StatusOK, dto.FluctuationsResponse{
		Symbol:    fl.Asset(),
		Timeframe: fl.Period().String(),
		Candles:   out,
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNoCandles):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}
