package handler

import (
	"context"
	"net/http"

	"backtest_backend/internal/feature/assetlist/domain/entity"
	"backtest_backend/internal/feature/assetlist/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// AssetUsecase は取引ペア情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AssetUsecase interface {
	ListActiveAssets(ctx context.Context) ([]entity.Asset, error)
}

// AssetHandler は取引ペア情報に関するHTTPリクエストを処理します。
type AssetHandler struct {
	uc AssetUsecase
}

// NewAssetHandler は新しい AssetHandler を作成します。
func NewAssetHandler(uc AssetUsecase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// List は有効な取引ペアの一覧を取得するAPIです。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.uc.ListActiveAssets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.AssetItem, 0, len(assets))
	for _, a := range assets {
		out = append(out, dto.AssetItem{Symbol: a.Symbol(), Coin: a.Coin, Currency: a.Currency, Name: a.Name})
	}
	c.JSON(http.StatusOK, out)
}
