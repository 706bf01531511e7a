// Package entity defines the backtest domain: signals, risk settings,
// positions, trades and their exit resolution.
package entity

import (
	"fmt"
	"time"
)

// Side is the market direction of a signal or position.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// Action tells whether a signal opens or closes exposure.
type Action string

const (
	Enter Action = "ENTER"
	Exit  Action = "EXIT"
)

// Signal is a timestamped trading intent produced by a strategy.
type Signal struct {
	Date   time.Time `json:"date" yaml:"date" validate:"required"`
	Side   Side      `json:"side" yaml:"side" validate:"required,oneof=LONG SHORT"`
	Action Action    `json:"action" yaml:"action" validate:"required,oneof=ENTER EXIT"`
}

// Validate checks the side and action values.
func (s Signal) Validate() error {
	if s.Side != Long && s.Side != Short {
		return fmt.Errorf("%w: unknown side %q", ErrInvalidSignal, s.Side)
	}
	if s.Action != Enter && s.Action != Exit {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidSignal, s.Action)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidSignal)
	}
	return nil
}

// MatchedSignal pairs an entry with the exit that closes it.
// Exit is nil when no later exit of the same side exists.
type MatchedSignal struct {
	Entry Signal
	Exit  *Signal
}

// ExitDate returns the exit date, or the zero time when the exit is unknown.
func (m MatchedSignal) ExitDate() time.Time {
	if m.Exit == nil {
		return time.Time{}
	}
	return m.Exit.Date
}
