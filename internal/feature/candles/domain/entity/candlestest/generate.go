// Package candlestest provides helpers to build candles in tests.
package candlestest

import (
	"math"
	"math/rand"
	"time"

	"backtest_backend/internal/feature/candles/domain/entity"
)

// Options configures Generate.
type Options struct {
	Size       int           // number of candles, defaults to 1000
	Period     time.Duration // candle duration, defaults to one minute
	From       time.Time     // first open time, defaults to 2020-01-01 UTC
	StartPrice float64       // first open price, defaults to 1000
	Seed       int64
	// WithExtrema stamps HighTime/LowTime at a random instant inside each candle.
	WithExtrema bool
	// DropRatio removes roughly that fraction of the candles, leaving gaps.
	// The first candle is always kept.
	DropRatio float64
}

// Generate returns a deterministic random walk of valid candles, contiguous
// unless DropRatio is set.
func Generate(opts Options) []entity.Candle {
	if opts.Size == 0 {
		opts.Size = 1000
	}
	if opts.Period == 0 {
		opts.Period = time.Minute
	}
	if opts.From.IsZero() {
		opts.From = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if opts.StartPrice == 0 {
		opts.StartPrice = 1000
	}
	r := rand.New(rand.NewSource(opts.Seed))
	// separate stream so gaps do not change the prices of the kept candles
	drop := rand.New(rand.NewSource(opts.Seed ^ 0x5eed))

	candles := make([]entity.Candle, 0, opts.Size)
	closePrice := opts.StartPrice
	for i := 0; i < opts.Size; i++ {
		openPrice := closePrice
		closePrice = openPrice * (1 + r.NormFloat64()*0.01)
		if closePrice <= 0 {
			closePrice = openPrice
		}
		high := math.Max(openPrice, closePrice) * (1 + r.Float64()/100)
		low := math.Min(openPrice, closePrice) * (1 - r.Float64()/100)

		openTime := opts.From.Add(time.Duration(i) * opts.Period)
		c := entity.Candle{
			Open:      openPrice,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    (r.Float64()/2 + 0.25) * 1000,
			OpenTime:  openTime,
			CloseTime: openTime.Add(opts.Period),
		}
		if opts.WithExtrema {
			ht := openTime.Add(time.Duration(r.Int63n(int64(opts.Period))))
			lt := openTime.Add(time.Duration(r.Int63n(int64(opts.Period))))
			c.HighTime, c.LowTime = &ht, &lt
		}
		if i > 0 && drop.Float64() < opts.DropRatio {
			continue
		}
		candles = append(candles, c)
	}
	return candles
}

// Hourly builds n flat hourly candles starting at from, all priced at price.
func Hourly(from time.Time, n int, price float64) []entity.Candle {
	candles := make([]entity.Candle, n)
	for i := range candles {
		openTime := from.Add(time.Duration(i) * time.Hour)
		candles[i] = entity.Candle{
			Open: price, High: price, Low: price, Close: price, Volume: 1,
			OpenTime: openTime, CloseTime: openTime.Add(time.Hour),
		}
	}
	return candles
}
