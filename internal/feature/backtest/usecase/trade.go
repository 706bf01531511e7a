package usecase

import (
	"fmt"
	"sort"
	"time"

	"backtest_backend/internal/feature/backtest/domain/entity"
	market "backtest_backend/internal/feature/candles/domain/entity"
)

// EntryFill returns when and at which price an order placed at openAt is filled.
// An order placed on a candle's open fills at its open price, otherwise it
// fills at the close of the candle containing openAt. An order placed inside a
// gap fills at the open of the next candle, or at the last close when none follows.
func EntryFill(fl *market.Fluctuations, openAt time.Time) (time.Time, float64, error) {
	c, err := fl.CandleAt(openAt)
	if err != nil {
		return time.Time{}, 0, err
	}
	if !openAt.After(c.OpenTime) {
		return c.OpenTime, c.Open, nil
	}
	if openAt.Before(c.CloseTime) {
		return c.CloseTime, c.Close, nil
	}
	next := sort.Search(fl.Len(), func(i int) bool {
		return fl.Candle(i).OpenTime.After(openAt)
	})
	if next < fl.Len() {
		n := fl.Candle(next)
		return n.OpenTime, n.Open, nil
	}
	return c.CloseTime, c.Close, nil
}

// CalculateTrade opens a position at openAt and resolves it against fl.
func CalculateTrade(openAt time.Time, investment, feesPct float64, fl *market.Fluctuations, target entity.Target, side entity.Side) (entity.Trade, error) {
	openDate, openPrice, err := EntryFill(fl, openAt)
	if err != nil {
		return entity.Trade{}, err
	}
	pos, err := entity.OpenPosition(entity.OpenParams{
		Side:          side,
		OpenDate:      openDate,
		OpenPrice:     openPrice,
		Investment:    investment,
		FeesPct:       feesPct,
		HigherBarrier: target.HighValue(openPrice),
		LowerBarrier:  target.LowValue(openPrice),
	})
	if err != nil {
		return entity.Trade{}, err
	}
	return ClosePosition(pos, fl)
}

// ClosePosition scans the candles closing after the position opened and exits
// on the first barrier hit. When no barrier is hit the position is closed at
// the last candle.
func ClosePosition(pos entity.Position, fl *market.Fluctuations) (entity.Trade, error) {
	start := sort.Search(fl.Len(), func(i int) bool {
		return fl.Candle(i).CloseTime.After(pos.OpenDate)
	})
	if start == fl.Len() {
		return entity.Trade{}, fmt.Errorf("%w: position opened at %s, no candle closes after it", market.ErrOutOfRange, pos.OpenDate)
	}

	for i := start; i < fl.Len(); i++ {
		if d := entity.ResolveExit(pos, fl.Candle(i)); !d.Holds() {
			return pos.CloseOn(d)
		}
	}

	last := fl.Candle(fl.Len() - 1)
	return pos.Close(last.CloseTime, last.Close)
}
