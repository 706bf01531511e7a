// Package dto defines data transfer objects for the assetlist HTTP API.
package dto

// AssetItem represents a trading pair in the API response.
type AssetItem struct {
	Symbol   string `json:"symbol"`
	Coin     string `json:"coin"`
	Currency string `json:"currency"`
	Name     string `json:"name"`
}
