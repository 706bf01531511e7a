package usecase

import (
	"sort"

	"backtest_backend/internal/feature/backtest/domain/entity"

	"github.com/shopspring/decimal"
)

// Summarize computes run statistics from the pipeline result.
// The equity curve starts at initialCurrency and adds each trade's profit in close order.
func Summarize(res *Result, initialCurrency decimal.Decimal) entity.Summary {
	s := entity.Summary{Trades: len(res.Trades), Skipped: len(res.Skipped)}

	var gains, losses float64
	for _, t := range res.Trades {
		p := t.TotalProfit()
		s.TotalProfit += p
		s.TotalFees += t.TotalFees()
		if p > 0 {
			s.Wins++
			gains += p
		} else {
			s.Losses++
			losses -= p
		}
	}
	if s.Trades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Trades)
	}
	if losses > 0 {
		s.ProfitFactor = gains / losses
	}

	closed := append([]entity.Trade(nil), res.Trades...)
	sort.SliceStable(closed, func(i, j int) bool { return closed[i].CloseDate.Before(closed[j].CloseDate) })
	equity := initialCurrency.InexactFloat64()
	peak := equity
	for _, t := range closed {
		equity += t.TotalProfit()
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			if dd := (peak - equity) / peak * 100; dd > s.MaxDrawdownPct {
				s.MaxDrawdownPct = dd
			}
		}
	}

	if res.Portfolio != nil {
		last := res.Portfolio.Last()
		s.FinalCurrency, s.FinalAsset = last.Currency, last.Asset
		if initialCurrency.IsPositive() {
			s.ReturnPct = last.Currency.Sub(initialCurrency).Div(initialCurrency).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
	}
	return s
}
