package entity

import (
	"time"

	market "backtest_backend/internal/feature/candles/domain/entity"
)

// ExitMode classifies how a candle affects an open position.
type ExitMode string

const (
	ExitHold        ExitMode = "HOLD"
	ExitHighBarrier ExitMode = "HIGH_BARRIER"
	ExitLowBarrier  ExitMode = "LOW_BARRIER"
	ExitClose       ExitMode = "CLOSE"
)

// ExitDecision is the outcome of ResolveExit. Price and Date are zero on hold.
type ExitDecision struct {
	Mode  ExitMode
	Price float64
	Date  time.Time
}

// Holds reports whether the position stays open.
func (d ExitDecision) Holds() bool {
	return d.Mode == ExitHold
}

// ResolveExit decides whether p exits during candle c, and at which price and instant.
//
// When both barriers are inside the candle range, the earlier of HighTime and
// LowTime wins. Equal or unknown times fall back to the candle close.
// A single barrier exits at its own price, at its intrabar time when known
// and at the candle close time otherwise.
func ResolveExit(p Position, c market.Candle) ExitDecision {
	reachHigh := c.High >= p.HigherBarrier
	reachLow := c.Low <= p.LowerBarrier

	switch {
	case reachHigh && reachLow:
		if c.HasExtremaTimes() {
			switch {
			case c.HighTime.Before(*c.LowTime):
				return ExitDecision{Mode: ExitHighBarrier, Price: p.HigherBarrier, Date: *c.HighTime}
			case c.LowTime.Before(*c.HighTime):
				return ExitDecision{Mode: ExitLowBarrier, Price: p.LowerBarrier, Date: *c.LowTime}
			}
		}
		return ExitDecision{Mode: ExitClose, Price: c.Close, Date: c.CloseTime}
	case reachHigh:
		return ExitDecision{Mode: ExitHighBarrier, Price: p.HigherBarrier, Date: timeOr(c.HighTime, c.CloseTime)}
	case reachLow:
		return ExitDecision{Mode: ExitLowBarrier, Price: p.LowerBarrier, Date: timeOr(c.LowTime, c.CloseTime)}
	}
	return ExitDecision{Mode: ExitHold}
}

func timeOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil {
		return fallback
	}
	return *t
}
