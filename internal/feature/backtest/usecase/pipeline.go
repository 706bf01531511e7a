package usecase

import (
	"errors"
	"fmt"
	"log/slog"

	"backtest_backend/internal/feature/backtest/domain/entity"
	"backtest_backend/internal/feature/backtest/domain/portfolio"
	market "backtest_backend/internal/feature/candles/domain/entity"

	"github.com/shopspring/decimal"
)

// Result is the outcome of ProcessSignals.
type Result struct {
	Trades    []entity.Trade
	Portfolio *portfolio.Portfolio
	Skipped   []entity.SkippedSignal
}

// ProcessSignals simulates the signals against fl, starting from initial.
//
// Entries are handled in date order. An entry is skipped when no capital is
// available, when it falls on or after the last candle, or when its exit
// lands inside the entry candle. Any other failure aborts the run.
// initial is left untouched.
func ProcessSignals(
	signals []entity.Signal,
	risk entity.RiskConfig,
	feesPct float64,
	fl *market.Fluctuations,
	initial *portfolio.Portfolio,
) (*Result, error) {
	if err := risk.Validate(); err != nil {
		return nil, err
	}
	for _, s := range signals {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	lastOpen, err := fl.LastOpenTime()
	if err != nil {
		return nil, err
	}
	firstOpen, _ := fl.FirstOpenTime()

	res := &Result{Portfolio: initial.Clone()}
	skip := func(m entity.MatchedSignal, reason entity.SkipReason) {
		slog.Debug("signal skipped", "side", m.Entry.Side, "date", m.Entry.Date, "reason", reason)
		res.Skipped = append(res.Skipped, entity.SkippedSignal{Signal: m.Entry, Reason: reason})
	}

	size := decimal.NewFromFloat(risk.Size)
	for _, m := range MatchSignals(signals) {
		if !m.Entry.Date.Before(lastOpen) {
			skip(m, entity.SkipBeyondData)
			continue
		}
		if m.Entry.Date.Before(firstOpen) {
			return nil, fmt.Errorf("%s entry at %s: %w: market data starts at %s", m.Entry.Side, m.Entry.Date, market.ErrOutOfRange, firstOpen)
		}

		window := fl.Subset(m.Entry.Date, m.ExitDate())
		fillDate, _, err := EntryFill(window, m.Entry.Date)
		if err != nil {
			if m.Exit != nil && isOutOfData(err) {
				skip(m, entity.SkipExitWithinEntryCandle)
				continue
			}
			return nil, fmt.Errorf("%s entry at %s: %w", m.Entry.Side, m.Entry.Date, err)
		}

		// capital is read at the fill date, not the signal date: an order placed inside a
		// candle fills at its close, after trades closing in between have paid back
		capital, err := res.Portfolio.AvailableCapitalAt(fillDate)
		if err != nil {
			return nil, fmt.Errorf("%s entry at %s: %w", m.Entry.Side, m.Entry.Date, err)
		}
		if !capital.IsPositive() {
			skip(m, entity.SkipNoCapital)
			continue
		}

		investment := capital.Mul(size)
		trade, err := CalculateTrade(m.Entry.Date, investment.InexactFloat64(), feesPct, window, entity.NewTarget(risk, m.Entry.Side), m.Entry.Side)
		if err != nil {
			if m.Exit != nil && isOutOfData(err) {
				skip(m, entity.SkipExitWithinEntryCandle)
				continue
			}
			return nil, fmt.Errorf("%s entry at %s: %w", m.Entry.Side, m.Entry.Date, err)
		}

		if err := applyTrade(res.Portfolio, trade, investment); err != nil {
			return nil, fmt.Errorf("%s entry at %s: %w", m.Entry.Side, m.Entry.Date, err)
		}
		res.Trades = append(res.Trades, trade)
	}
	return res, nil
}

// applyTrade records both legs of trade in the ledger.
func applyTrade(p *portfolio.Portfolio, trade entity.Trade, investment decimal.Decimal) error {
	volume := decimal.NewFromFloat(trade.Volume)
	if err := p.Enter(trade.OpenDate, investment, volume); err != nil {
		return err
	}
	return p.Exit(trade.CloseDate, decimal.NewFromFloat(trade.NetReceipt()), volume)
}

func isOutOfData(err error) bool {
	return errors.Is(err, market.ErrOutOfRange) || errors.Is(err, market.ErrEmptyFluctuations)
}
