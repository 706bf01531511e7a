package entity

import (
	"fmt"
	"strconv"
	"time"
)

// Period is the nominal duration of the candles of a series, e.g. "1m", "4h" or "1d".
type Period struct {
	timeframe string
	duration  time.Duration
}

// ParsePeriod parses a timeframe made of a positive integer and a unit (m, h or d).
func ParsePeriod(timeframe string) (Period, error) {
	if len(timeframe) < 2 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, timeframe)
	}

	n, err := strconv.Atoi(timeframe[:len(timeframe)-1])
	if err != nil || n <= 0 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, timeframe)
	}

	var unit time.Duration
	switch timeframe[len(timeframe)-1] {
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	default:
		return Period{}, fmt.Errorf("%w: unknown unit in %q", ErrInvalidPeriod, timeframe)
	}
	return Period{timeframe: timeframe, duration: time.Duration(n) * unit}, nil
}

// MustParsePeriod is like ParsePeriod but panics on error. Intended for constants and tests.
func MustParsePeriod(timeframe string) Period {
	p, err := ParsePeriod(timeframe)
	if err != nil {
		panic(err)
	}
	return p
}

// Duration returns the period as a time.Duration.
func (p Period) Duration() time.Duration {
	return p.duration
}

// String returns the timeframe the period was parsed from.
func (p Period) String() string {
	return p.timeframe
}

// Equal compares durations, so "120m" equals "2h".
func (p Period) Equal(other Period) bool {
	return p.duration == other.duration
}

// IsZero reports whether p was never parsed.
func (p Period) IsZero() bool {
	return p.duration == 0
}
