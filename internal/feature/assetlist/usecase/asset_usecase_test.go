package usecase_test

import (
	"context"
	"errors"
	"testing"

	"backtest_backend/internal/feature/assetlist/domain/entity"
	"backtest_backend/internal/feature/assetlist/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAssetRepository はAssetRepositoryインターフェースのモック実装です。
type mockAssetRepository struct {
	ListActiveFunc func(ctx context.Context) ([]entity.Asset, error)
	UpsertFunc     func(ctx context.Context, a entity.Asset) error
}

func (m *mockAssetRepository) ListActive(ctx context.Context) ([]entity.Asset, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockAssetRepository) Upsert(ctx context.Context, a entity.Asset) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, a)
	}
	return nil
}

func TestAssetUsecase_ActiveSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		list     func(ctx context.Context) ([]entity.Asset, error)
		expected []string
		wantErr  bool
	}{
		{
			name: "success: symbols in repository order",
			list: func(ctx context.Context) ([]entity.Asset, error) {
				return []entity.Asset{{Coin: "BTC", Currency: "USDT"}, {Coin: "eth", Currency: "btc"}}, nil
			},
			expected: []string{"BTCUSDT", "ETHBTC"},
		},
		{
			name:     "success: no assets",
			list:     func(ctx context.Context) ([]entity.Asset, error) { return nil, nil },
			expected: []string{},
		},
		{
			name: "failure: repository returns error",
			list: func(ctx context.Context) ([]entity.Asset, error) {
				return nil, errors.New("database connection failed")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewAssetUsecase(&mockAssetRepository{ListActiveFunc: tt.list})
			symbols, err := uc.ActiveSymbols(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, symbols)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, symbols)
		})
	}
}

func TestAssetUsecase_Track(t *testing.T) {
	t.Parallel()

	var got entity.Asset
	uc := usecase.NewAssetUsecase(&mockAssetRepository{UpsertFunc: func(ctx context.Context, a entity.Asset) error {
		got = a
		return nil
	}})

	require.NoError(t, uc.Track(context.Background(), "btc", "usdt", "Bitcoin", 1))
	assert.Equal(t, "BTC", got.Coin)
	assert.Equal(t, "USDT", got.Currency)
	assert.True(t, got.IsActive)
	assert.Equal(t, 1, got.SortKey)
}
