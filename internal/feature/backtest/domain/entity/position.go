package entity

import (
	"fmt"
	"time"
)

// OpenParams describes the position to open.
type OpenParams struct {
	Side          Side
	OpenDate      time.Time
	OpenPrice     float64
	Investment    float64 // currency spent, fees included
	FeesPct       float64 // fee rate applied on both legs, e.g. 0.001
	HigherBarrier float64 // absolute price
	LowerBarrier  float64 // absolute price
}

// Position is an open market exposure.
//
// A Position is a value. Closing it returns a Trade and leaves it untouched.
type Position struct {
	Side              Side      `json:"side"`
	Volume            float64   `json:"volume"`
	OpenPrice         float64   `json:"open_price"`
	OpenDate          time.Time `json:"open_date"`
	InitialInvestment float64   `json:"initial_investment"`
	FeesPct           float64   `json:"fees_pct"`
	HigherBarrier     float64   `json:"higher_barrier"`
	LowerBarrier      float64   `json:"lower_barrier"`

	closed bool
}

// OpenPosition buys volume = (investment - fees) / price at the given price.
func OpenPosition(p OpenParams) (Position, error) {
	if p.Side != Long && p.Side != Short {
		return Position{}, fmt.Errorf("%w: unknown side %q", ErrInvalidPosition, p.Side)
	}
	if !(p.OpenPrice > 0) {
		return Position{}, fmt.Errorf("%w: open price must be positive, got %v", ErrInvalidPosition, p.OpenPrice)
	}
	if !(p.Investment > 0) {
		return Position{}, fmt.Errorf("%w: investment must be positive, got %v", ErrInvalidPosition, p.Investment)
	}
	if p.FeesPct < 0 || p.FeesPct >= 1 {
		return Position{}, fmt.Errorf("%w: fees pct must be in [0, 1), got %v", ErrInvalidPosition, p.FeesPct)
	}
	if !(p.LowerBarrier < p.OpenPrice && p.OpenPrice < p.HigherBarrier) {
		return Position{}, fmt.Errorf("%w: barriers [%v, %v] must surround open price %v",
			ErrInvalidPosition, p.LowerBarrier, p.HigherBarrier, p.OpenPrice)
	}

	openFees := p.Investment * p.FeesPct
	return Position{
		Side:              p.Side,
		Volume:            (p.Investment - openFees) / p.OpenPrice,
		OpenPrice:         p.OpenPrice,
		OpenDate:          p.OpenDate,
		InitialInvestment: p.Investment,
		FeesPct:           p.FeesPct,
		HigherBarrier:     p.HigherBarrier,
		LowerBarrier:      p.LowerBarrier,
	}, nil
}

// OpenFees returns the fees paid when opening.
func (p Position) OpenFees() float64 {
	return p.InitialInvestment * p.FeesPct
}

// IsClosed reports whether p belongs to a Trade.
func (p Position) IsClosed() bool {
	return p.closed
}

// Close materializes the trade exiting at price on date.
// date may equal the open date: an intrabar barrier time can coincide with the
// fill instant. Only a date before the open is rejected.
func (p Position) Close(date time.Time, price float64) (Trade, error) {
	if p.closed {
		return Trade{}, ErrPositionClosed
	}
	if !(price > 0) {
		return Trade{}, fmt.Errorf("%w: close price must be positive, got %v", ErrInvalidPosition, price)
	}
	if date.Before(p.OpenDate) {
		return Trade{}, fmt.Errorf("%w: close date %s before open date %s", ErrInvalidPosition, date, p.OpenDate)
	}
	closed := p
	closed.closed = true
	return Trade{Position: closed, CloseDate: date, ClosePrice: price, ExitMode: ExitClose}, nil
}

// CloseOn closes the position as decided by ResolveExit.
func (p Position) CloseOn(d ExitDecision) (Trade, error) {
	if d.Mode == ExitHold {
		return Trade{}, fmt.Errorf("%w: cannot close on a hold decision", ErrInvalidPosition)
	}
	t, err := p.Close(d.Date, d.Price)
	if err != nil {
		return Trade{}, err
	}
	t.ExitMode = d.Mode
	return t, nil
}

// Trade is a closed position. Its financial figures are derived on demand.
type Trade struct {
	Position
	CloseDate  time.Time `json:"close_date"`
	ClosePrice float64   `json:"close_price"`
	ExitMode   ExitMode  `json:"exit_mode"`
}

// Receipt is the currency returned by the exit leg before close fees.
// A short pays off symmetrically around the entry price and never below zero,
// so it loses at most its investment when the price more than doubles.
func (t Trade) Receipt() float64 {
	if t.Side == Short {
		return max(t.Volume*(2*t.OpenPrice-t.ClosePrice), 0)
	}
	return t.Volume * t.ClosePrice
}

// CloseFees returns the fees paid when closing.
func (t Trade) CloseFees() float64 {
	return t.Receipt() * t.FeesPct
}

// TotalFees returns open plus close fees.
func (t Trade) TotalFees() float64 {
	return t.OpenFees() + t.CloseFees()
}

// TotalProfit is what the portfolio gets back minus what it put in.
// It equals the price move times volume net of both fees, bounded below by -InitialInvestment.
func (t Trade) TotalProfit() float64 {
	return t.NetReceipt() - t.InitialInvestment
}

// NetReceipt is the currency credited back to the portfolio.
func (t Trade) NetReceipt() float64 {
	return t.Receipt() - t.CloseFees()
}

// TotalDuration returns how long the position stayed open.
func (t Trade) TotalDuration() time.Duration {
	return t.CloseDate.Sub(t.OpenDate)
}

// ReachedBarrier reports whether the trade closed on one of its barriers.
func (t Trade) ReachedBarrier() bool {
	return t.ExitMode == ExitHighBarrier || t.ExitMode == ExitLowBarrier
}

// RestoreTrade rebuilds a stored trade without re-running validation.
func RestoreTrade(p Position, closeDate time.Time, closePrice float64, mode ExitMode) Trade {
	p.closed = true
	return Trade{Position: p, CloseDate: closeDate, ClosePrice: closePrice, ExitMode: mode}
}
