package entity

import (
	"time"

	"backtest_backend/internal/feature/backtest/domain/portfolio"

	"github.com/shopspring/decimal"
)

// SkipReason explains why a matched entry produced no trade.
type SkipReason string

const (
	SkipNoCapital             SkipReason = "no_capital"
	SkipBeyondData            SkipReason = "beyond_data"
	SkipExitWithinEntryCandle SkipReason = "exit_within_entry_candle"
)

// SkippedSignal records an entry signal that did not become a trade.
type SkippedSignal struct {
	Signal Signal     `json:"signal"`
	Reason SkipReason `json:"reason"`
}

// Summary aggregates the outcome of a backtest run.
type Summary struct {
	Trades         int             `json:"trades"`
	Wins           int             `json:"wins"`
	Losses         int             `json:"losses"`
	WinRate        float64         `json:"win_rate"`
	TotalProfit    float64         `json:"total_profit"`
	TotalFees      float64         `json:"total_fees"`
	ProfitFactor   float64         `json:"profit_factor"`
	MaxDrawdownPct float64         `json:"max_drawdown_pct"`
	FinalCurrency  decimal.Decimal `json:"final_currency"`
	FinalAsset     decimal.Decimal `json:"final_asset"`
	ReturnPct      float64         `json:"return_pct"`
	Skipped        int             `json:"skipped"`
}

// Run is a stored backtest: its inputs, produced trades and final ledger.
type Run struct {
	ID        string     `json:"id"`
	Asset     string     `json:"asset"`
	Timeframe string     `json:"timeframe"`
	From      time.Time  `json:"from"`
	To        time.Time  `json:"to"`
	FeesPct   float64    `json:"fees_pct"`
	Risk      RiskConfig `json:"risk"`
	CreatedAt time.Time  `json:"created_at"`

	InitialCurrency decimal.Decimal `json:"initial_currency"`

	Trades  []Trade                `json:"trades"`
	Wealth  []portfolio.WealthItem `json:"wealth"`
	Skipped []SkippedSignal        `json:"skipped"`
	Summary Summary                `json:"summary"`
}
