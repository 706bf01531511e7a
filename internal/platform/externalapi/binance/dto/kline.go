// Package dto defines data transfer objects for the Binance API responses.
package dto

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Kline is one row of the /api/v3/klines response. Binance encodes it as a
// positional array: open time, open, high, low, close, volume, close time, ...
type Kline struct {
	OpenTime  int64 // milliseconds since epoch
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	CloseTime int64 // milliseconds since epoch, last millisecond of the candle
}

// UnmarshalJSON decodes the positional array form.
func (k *Kline) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) < 7 {
		return fmt.Errorf("kline: expected at least 7 fields, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &k.OpenTime); err != nil {
		return fmt.Errorf("kline open time: %w", err)
	}
	if err := json.Unmarshal(raw[6], &k.CloseTime); err != nil {
		return fmt.Errorf("kline close time: %w", err)
	}
	for i, dst := range []*float64{&k.Open, &k.High, &k.Low, &k.Close, &k.Volume} {
		var s string
		if err := json.Unmarshal(raw[i+1], &s); err != nil {
			return fmt.Errorf("kline field %d: %w", i+1, err)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("kline field %d %q: %w", i+1, s, err)
		}
		*dst = v
	}
	return nil
}

// APIError is the body Binance returns on failures.
type APIError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}
