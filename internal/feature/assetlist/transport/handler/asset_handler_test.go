package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"backtest_backend/internal/feature/assetlist/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// mockAssetUsecase はAssetUsecaseインターフェースのモック実装です。
type mockAssetUsecase struct {
	ListActiveAssetsFunc func(ctx context.Context) ([]entity.Asset, error)
}

func (m *mockAssetUsecase) ListActiveAssets(ctx context.Context) ([]entity.Asset, error) {
	if m.ListActiveAssetsFunc != nil {
		return m.ListActiveAssetsFunc(ctx)
	}
	return nil, nil
}

// TestAssetHandler_List はListハンドラーの各種シナリオをテーブル駆動テストで検証します。
func TestAssetHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		listFunc       func(ctx context.Context) ([]entity.Asset, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: returns list of assets",
			listFunc: func(ctx context.Context) ([]entity.Asset, error) {
				return []entity.Asset{
					{ID: 7, Coin: "BTC", Currency: "USDT", Name: "Bitcoin", IsActive: true, SortKey: 1},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"symbol":"BTCUSDT","coin":"BTC","currency":"USDT","name":"Bitcoin"}]`,
		},
		{
			name:           "success: returns nil from usecase",
			listFunc:       func(ctx context.Context) ([]entity.Asset, error) { return nil, nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "failure: usecase returns error",
			listFunc: func(ctx context.Context) ([]entity.Asset, error) {
				return nil, errors.New("database connection failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"database connection failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewAssetHandler(&mockAssetUsecase{ListActiveAssetsFunc: tt.listFunc})

			router := gin.New()
			router.GET("/assets", handler.List)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/assets", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "sort_key")
		})
	}
}
