// Package dto はbacktestフィーチャーのHTTPリクエスト/レスポンスDTOを定義します。
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignalRequest は売買シグナル1件です。
type SignalRequest struct {
	Date   time.Time `json:"date" binding:"required"`
	Side   string    `json:"side" binding:"required,oneof=LONG SHORT"`
	Action string    `json:"action" binding:"required,oneof=ENTER EXIT"`
}

// RiskRequest はトレードごとのリスク設定です。
type RiskRequest struct {
	Size       float64 `json:"size" binding:"gt=0,lte=1"`
	TakeProfit float64 `json:"take_profit" binding:"gt=0"`
	StopLoss   float64 `json:"stop_loss" binding:"gt=0,lt=1"`
}

// RunRequest は POST /backtests のリクエストボディです。
// FeesPct を省略した場合は既定の手数料率が使われます。
type RunRequest struct {
	Coin            string          `json:"coin" binding:"required,alphanum"`
	Currency        string          `json:"currency" binding:"required,alphanum"`
	Timeframe       string          `json:"timeframe"`
	From            time.Time       `json:"from" binding:"required"`
	To              time.Time       `json:"to" binding:"required,gtfield=From"`
	FeesPct         *float64        `json:"fees_pct" binding:"omitempty,gte=0,lt=1"`
	Risk            RiskRequest     `json:"risk"`
	InitialCurrency decimal.Decimal `json:"initial_currency"`
	InitialAsset    decimal.Decimal `json:"initial_asset"`
	Signals         []SignalRequest `json:"signals" binding:"required,min=1,dive"`
}
