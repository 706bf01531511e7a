package entity

import "errors"

// Domain errors for candles and fluctuations.
var (
	// ErrInvalidCandle indicates a candle breaking its price or time invariants.
	ErrInvalidCandle = errors.New("invalid candle")

	// ErrEmptyFluctuations is returned by lookups on a series without candles.
	ErrEmptyFluctuations = errors.New("fluctuations are empty")

	// ErrOutOfRange indicates a date outside the span covered by a series.
	ErrOutOfRange = errors.New("date out of range")

	// ErrInvalidPeriod is returned when a timeframe string cannot be parsed.
	ErrInvalidPeriod = errors.New("invalid period")
)
