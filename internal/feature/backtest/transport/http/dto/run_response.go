package dto

import (
	"time"

	"backtest_backend/internal/feature/backtest/domain/entity"

	"github.com/shopspring/decimal"
)

// TradeResponse は約定済みトレードと、その損益の派生値です。
type TradeResponse struct {
	Side              string    `json:"side"`
	OpenDate          time.Time `json:"open_date"`
	OpenPrice         float64   `json:"open_price"`
	CloseDate         time.Time `json:"close_date"`
	ClosePrice        float64   `json:"close_price"`
	ExitMode          string    `json:"exit_mode"`
	Volume            float64   `json:"volume"`
	InitialInvestment float64   `json:"initial_investment"`
	HigherBarrier     float64   `json:"higher_barrier"`
	LowerBarrier      float64   `json:"lower_barrier"`
	TotalFees         float64   `json:"total_fees"`
	TotalProfit       float64   `json:"total_profit"`
	DurationSeconds   float64   `json:"duration_seconds"`
}

// WealthItemResponse は台帳の1行です。
type WealthItemResponse struct {
	Date     time.Time       `json:"date"`
	Asset    decimal.Decimal `json:"asset"`
	Currency decimal.Decimal `json:"currency"`
}

// SkippedResponse は取引にならなかったエントリーシグナルです。
type SkippedResponse struct {
	Date   time.Time `json:"date"`
	Side   string    `json:"side"`
	Reason string    `json:"reason"`
}

// RunResponse は POST /backtests と GET /backtests/:id のレスポンスです。
type RunResponse struct {
	ID              string               `json:"id"`
	Asset           string               `json:"asset"`
	Timeframe       string               `json:"timeframe"`
	From            time.Time            `json:"from"`
	To              time.Time            `json:"to"`
	FeesPct         float64              `json:"fees_pct"`
	Risk            entity.RiskConfig    `json:"risk"`
	CreatedAt       time.Time            `json:"created_at"`
	InitialCurrency decimal.Decimal      `json:"initial_currency"`
	Summary         entity.Summary       `json:"summary"`
	Trades          []TradeResponse      `json:"trades"`
	Wealth          []WealthItemResponse `json:"wealth"`
	Skipped         []SkippedResponse    `json:"skipped"`
}

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewRunResponse は実行結果をレスポンスDTOに変換します。
func NewRunResponse(run *entity.Run) RunResponse {
	out := RunResponse{
		ID:              run.ID,
		Asset:           run.Asset,
		Timeframe:       run.Timeframe,
		From:            run.From,
		To:              run.To,
		FeesPct:         run.FeesPct,
		Risk:            run.Risk,
		CreatedAt:       run.CreatedAt,
		InitialCurrency: run.InitialCurrency,
		Summary:         run.Summary,
		Trades:          make([]TradeResponse, 0, len(run.Trades)),
		Wealth:          make([]WealthItemResponse, 0, len(run.Wealth)),
		Skipped:         make([]SkippedResponse, 0, len(run.Skipped)),
	}
	for _, t := range run.Trades {
		out.Trades = append(out.Trades, TradeResponse{
			Side:              string(t.Side),
			OpenDate:          t.OpenDate,
			OpenPrice:         t.OpenPrice,
			CloseDate:         t.CloseDate,
			ClosePrice:        t.ClosePrice,
			ExitMode:          string(t.ExitMode),
			Volume:            t.Volume,
			InitialInvestment: t.InitialInvestment,
			HigherBarrier:     t.HigherBarrier,
			LowerBarrier:      t.LowerBarrier,
			TotalFees:         t.TotalFees(),
			TotalProfit:       t.TotalProfit(),
			DurationSeconds:   t.TotalDuration().Seconds(),
		})
	}
	for _, w := range run.Wealth {
		out.Wealth = append(out.Wealth, WealthItemResponse{Date: w.Date, Asset: w.Asset, Currency: w.Currency})
	}
	for _, s := range run.Skipped {
		out.Skipped = append(out.Skipped, SkippedResponse{Date: s.Signal.Date, Side: string(s.Signal.Side), Reason: string(s.Reason)})
	}
	return out
}
