// Package entity defines the domain models for the candles feature.
package entity

import (
	"fmt"
	"time"
)

// Candle represents the price variation of an asset during a period of time.
// A Candle is a value: once validated it is never mutated.
//
// HighTime and LowTime record when the extreme prices were reached inside
// the candle. They are either both set or both nil.
type Candle struct {
	Open   float64 `json:"open"`   // Opening price
	High   float64 `json:"high"`   // Highest price during this period
	Low    float64 `json:"low"`    // Lowest price during this period
	Close  float64 `json:"close"`  // Closing price
	Volume float64 `json:"volume"` // Traded volume of the base asset

	OpenTime  time.Time `json:"open_time"`  // Start of this candle period
	CloseTime time.Time `json:"close_time"` // End of this candle period

	HighTime *time.Time `json:"high_time,omitempty"` // When High was reached, if known
	LowTime  *time.Time `json:"low_time,omitempty"`  // When Low was reached, if known
}

// NewCandle validates c and returns it.
func NewCandle(c Candle) (Candle, error) {
	if err := c.Validate(); err != nil {
		return Candle{}, err
	}
	return c, nil
}

// Validate checks the candle invariants.
func (c Candle) Validate() error {
	prices := [...]struct {
		name  string
		value float64
	}{{"open", c.Open}, {"high", c.High}, {"low", c.Low}, {"close", c.Close}}
	for _, p := range prices {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s price must be positive, got %v", ErrInvalidCandle, p.name, p.value)
		}
	}
	if c.Volume < 0 {
		return fmt.Errorf("%w: volume must not be negative", ErrInvalidCandle)
	}

	if c.Low > c.Open || c.Low > c.Close {
		return fmt.Errorf("%w: low %v above open %v or close %v", ErrInvalidCandle, c.Low, c.Open, c.Close)
	}
	if c.High < c.Open || c.High < c.Close {
		return fmt.Errorf("%w: high %v below open %v or close %v", ErrInvalidCandle, c.High, c.Open, c.Close)
	}

	if !c.OpenTime.Before(c.CloseTime) {
		return fmt.Errorf("%w: open_time %s must be before close_time %s", ErrInvalidCandle, c.OpenTime, c.CloseTime)
	}

	if (c.HighTime == nil) != (c.LowTime == nil) {
		return fmt.Errorf("%w: high_time and low_time must be both set or both empty", ErrInvalidCandle)
	}
	if c.HighTime != nil {
		if !c.within(*c.HighTime) {
			return fmt.Errorf("%w: high_time %s outside [%s, %s]", ErrInvalidCandle, *c.HighTime, c.OpenTime, c.CloseTime)
		}
		if !c.within(*c.LowTime) {
			return fmt.Errorf("%w: low_time %s outside [%s, %s]", ErrInvalidCandle, *c.LowTime, c.OpenTime, c.CloseTime)
		}
	}
	return nil
}

// HasExtremaTimes reports whether the candle carries intrabar high/low timestamps.
func (c Candle) HasExtremaTimes() bool {
	return c.HighTime != nil && c.LowTime != nil
}

// Duration returns the time span covered by the candle.
func (c Candle) Duration() time.Duration {
	return c.CloseTime.Sub(c.OpenTime)
}

func (c Candle) within(t time.Time) bool {
	return !t.Before(c.OpenTime) && !t.After(c.CloseTime)
}
