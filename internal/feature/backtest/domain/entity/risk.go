package entity

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// maxShortGain caps how far below entry a short take-profit may sit, since price cannot reach zero.
const maxShortGain = 0.999

// RiskConfig holds strategy-level sizing and barrier percentages.
type RiskConfig struct {
	Size       float64 `json:"size" yaml:"size" validate:"gt=0,lte=1"`          // fraction of available capital per trade
	TakeProfit float64 `json:"take_profit" yaml:"take_profit" validate:"gt=0"`  // e.g. 0.05 for +5%
	StopLoss   float64 `json:"stop_loss" yaml:"stop_loss" validate:"gt=0,lt=1"` // e.g. 0.02 for -2%
}

// Validate checks the configuration bounds.
func (r RiskConfig) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRiskConfig, err)
	}
	return nil
}

// Target holds relative barrier distances from an entry price.
type Target struct {
	High float64
	Low  float64
}

// NewTarget converts risk percentages into barrier distances for side.
func NewTarget(risk RiskConfig, side Side) Target {
	if side == Short {
		return Target{High: risk.StopLoss, Low: math.Min(risk.TakeProfit, maxShortGain)}
	}
	return Target{High: risk.TakeProfit, Low: risk.StopLoss}
}

// HighValue returns the higher barrier for an entry at price.
func (t Target) HighValue(price float64) float64 {
	return price * (1 + t.High)
}

// LowValue returns the lower barrier for an entry at price.
func (t Target) LowValue(price float64) float64 {
	return price * (1 - t.Low)
}
