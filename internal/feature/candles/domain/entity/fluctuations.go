package entity

import (
	"fmt"
	"iter"
	"sort"
	"time"
)

// Fluctuations is a time series of candles for one asset and period.
//
// Candles are ordered by strictly increasing OpenTime and gaps are allowed.
// A Fluctuations value is never mutated after construction, so sub-ranges
// may share the parent's backing array.
type Fluctuations struct {
	asset   string
	period  Period
	candles []Candle
}

// NewFluctuations validates every candle, orders them by OpenTime and drops
// candles whose OpenTime was already seen (the first occurrence wins).
func NewFluctuations(asset string, period Period, candles []Candle) (*Fluctuations, error) {
	sorted := make([]Candle, len(candles))
	copy(sorted, candles)
	for i, c := range sorted {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OpenTime.Before(sorted[j].OpenTime)
	})

	unique := sorted[:0]
	for _, c := range sorted {
		if len(unique) > 0 && unique[len(unique)-1].OpenTime.Equal(c.OpenTime) {
			continue
		}
		unique = append(unique, c)
	}
	return &Fluctuations{asset: asset, period: period, candles: unique}, nil
}

// Asset returns the asset the series belongs to.
func (f *Fluctuations) Asset() string { return f.asset }

// Period returns the nominal candle period.
func (f *Fluctuations) Period() Period { return f.period }

// Len returns the number of candles.
func (f *Fluctuations) Len() int { return len(f.candles) }

// IsEmpty reports whether the series holds no candle.
func (f *Fluctuations) IsEmpty() bool { return len(f.candles) == 0 }

// Candle returns the i-th candle. It panics if i is out of bounds.
func (f *Fluctuations) Candle(i int) Candle { return f.candles[i] }

// All iterates over the candles in OpenTime order.
func (f *Fluctuations) All() iter.Seq2[int, Candle] {
	return func(yield func(int, Candle) bool) {
		for i, c := range f.candles {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Candles returns a copy of the candles.
func (f *Fluctuations) Candles() []Candle {
	out := make([]Candle, len(f.candles))
	copy(out, f.candles)
	return out
}

// FirstOpenTime returns the open time of the first candle.
func (f *Fluctuations) FirstOpenTime() (time.Time, error) {
	if f.IsEmpty() {
		return time.Time{}, ErrEmptyFluctuations
	}
	return f.candles[0].OpenTime, nil
}

// LastOpenTime returns the open time of the last candle.
func (f *Fluctuations) LastOpenTime() (time.Time, error) {
	if f.IsEmpty() {
		return time.Time{}, ErrEmptyFluctuations
	}
	return f.candles[len(f.candles)-1].OpenTime, nil
}

// LastCloseTime returns the close time of the last candle.
func (f *Fluctuations) LastCloseTime() (time.Time, error) {
	if f.IsEmpty() {
		return time.Time{}, ErrEmptyFluctuations
	}
	return f.candles[len(f.candles)-1].CloseTime, nil
}

// LastCandle returns the last candle of the series.
func (f *Fluctuations) LastCandle() (Candle, error) {
	if f.IsEmpty() {
		return Candle{}, ErrEmptyFluctuations
	}
	return f.candles[len(f.candles)-1], nil
}

// CandleAt returns the latest candle whose OpenTime is at or before date.
//
// It fails with ErrOutOfRange when date is before the first candle or after
// the last close time.
func (f *Fluctuations) CandleAt(date time.Time) (Candle, error) {
	if f.IsEmpty() {
		return Candle{}, ErrEmptyFluctuations
	}
	first, last := f.candles[0], f.candles[len(f.candles)-1]
	if date.Before(first.OpenTime) {
		return Candle{}, fmt.Errorf("%w: %s is before first open time %s", ErrOutOfRange, date, first.OpenTime)
	}
	if date.After(last.CloseTime) {
		return Candle{}, fmt.Errorf("%w: %s is after last close time %s", ErrOutOfRange, date, last.CloseTime)
	}
	// date == last.CloseTime maps past the end; it still belongs to the last candle
	return f.candles[min(f.lowerBoundIndex(date), len(f.candles)-1)], nil
}

// lowerBoundIndex returns the index of the latest candle with OpenTime <= date.
// A date before the series maps to 0, a date at or after the last close maps to Len().
func (f *Fluctuations) lowerBoundIndex(date time.Time) int {
	n := len(f.candles)
	if n == 0 || !date.After(f.candles[0].OpenTime) {
		return 0
	}
	if !date.Before(f.candles[n-1].CloseTime) {
		return n
	}
	// first candle opening strictly after date, minus one
	return sort.Search(n, func(i int) bool {
		return f.candles[i].OpenTime.After(date)
	}) - 1
}

// Subset returns the candles from the one containing from up to the one
// containing to. The candle opening exactly at to is excluded.
// A zero from or to leaves that side unbounded; out-of-range bounds are clamped.
func (f *Fluctuations) Subset(from, to time.Time) *Fluctuations {
	n := len(f.candles)
	lo, hi := 0, n
	if !from.IsZero() {
		lo = f.lowerBoundIndex(from)
	}
	if !to.IsZero() {
		switch {
		case n == 0 || !to.After(f.candles[0].OpenTime):
			hi = 0
		default:
			hi = min(f.lowerBoundIndex(to)+1, n)
			if f.candles[hi-1].OpenTime.Equal(to) {
				hi--
			}
		}
	}
	if hi < lo {
		hi = lo
	}
	return &Fluctuations{asset: f.asset, period: f.period, candles: f.candles[lo:hi:hi]}
}
