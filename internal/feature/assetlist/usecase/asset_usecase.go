// Package usecase implements the business logic for tracked trading pairs.
package usecase

import (
	"context"
	"strings"

	"backtest_backend/internal/feature/assetlist/domain/entity"
)

// AssetRepository abstracts the persistence layer for tracked trading pairs.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AssetRepository interface {
	ListActive(ctx context.Context) ([]entity.Asset, error)
	Upsert(ctx context.Context, a entity.Asset) error
}

// AssetUsecase provides business logic for trading pairs.
type AssetUsecase struct {
	repo AssetRepository
}

// NewAssetUsecase creates a new AssetUsecase with the given repository.
func NewAssetUsecase(r AssetRepository) *AssetUsecase {
	return &AssetUsecase{repo: r}
}

// ListActiveAssets returns all active trading pairs.
func (u *AssetUsecase) ListActiveAssets(ctx context.Context) ([]entity.Asset, error) {
	return u.repo.ListActive(ctx)
}

// ActiveSymbols returns the exchange symbols of the active pairs, in display order.
func (u *AssetUsecase) ActiveSymbols(ctx context.Context) ([]string, error) {
	assets, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(assets))
	for _, a := range assets {
		symbols = append(symbols, a.Symbol())
	}
	return symbols, nil
}

// Track registers a pair as active. Coin and currency are stored upper-case.
func (u *AssetUsecase) Track(ctx context.Context, coin, currency, name string, sortKey int) error {
	return u.repo.Upsert(ctx, entity.Asset{
		Coin:     strings.ToUpper(coin),
		Currency: strings.ToUpper(currency),
		Name:     name,
		IsActive: true,
		SortKey:  sortKey,
	})
}
