// Package entity defines the domain models for the assetlist feature.
package entity

import (
	"strings"
	"time"
)

// Asset is a tracked trading pair, e.g. BTC quoted in USDT.
// Active assets are listed by the API and refreshed by the ingest job.
type Asset struct {
	ID        uint      `gorm:"primaryKey"`
	Coin      string    `gorm:"size:16;not null;uniqueIndex:asset_pair,priority:1"`
	Currency  string    `gorm:"size:16;not null;uniqueIndex:asset_pair,priority:2"`
	Name      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Symbol returns the exchange symbol of the pair, e.g. BTCUSDT.
func (a Asset) Symbol() string {
	return strings.ToUpper(a.Coin + a.Currency)
}
