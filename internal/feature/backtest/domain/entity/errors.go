package entity

import "errors"

var (
	// ErrInvalidRiskConfig indicates sizing or barrier percentages outside their bounds.
	ErrInvalidRiskConfig = errors.New("invalid risk configuration")

	// ErrInvalidPosition indicates a position that cannot be opened or closed as requested.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrPositionClosed is returned when closing a position that is already a trade.
	ErrPositionClosed = errors.New("position already closed")

	// ErrInvalidSignal indicates an unknown side or action.
	ErrInvalidSignal = errors.New("invalid signal")

	// ErrRunNotFound is returned when a backtest run does not exist.
	ErrRunNotFound = errors.New("backtest run not found")
)
