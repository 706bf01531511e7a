package dto

import "time"

// CandleQuery は GET /candles/:symbol のクエリパラメータです。
type CandleQuery struct {
	Timeframe string    `form:"timeframe"`
	From      time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To        time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// CandleResponse はロウソク足データのレスポンスDTOです。
type CandleResponse struct {
	OpenTime  time.Time  `json:"open_time"`           // 開始時刻
	CloseTime time.Time  `json:"close_time"`          // 終了時刻
	Open      float64    `json:"open"`                // 始値
	High      float64    `json:"high"`                // 高値
	Low       float64    `json:"low"`                 // 安値
	Close     float64    `json:"close"`               // 終値
	Volume    float64    `json:"volume"`              // 出来高
	HighTime  *time.Time `json:"high_time,omitempty"` // 高値の時刻
	LowTime   *time.Time `json:"low_time,omitempty"`  // 安値の時刻
}

// FluctuationsResponse は価格系列全体のレスポンスDTOです。
type FluctuationsResponse struct {
	Symbol    string           `json:"symbol"`
	Timeframe string           `json:"timeframe"`
	Candles   []CandleResponse `json:"candles"`
}

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}
