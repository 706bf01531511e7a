// Package adapters はassetlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"backtest_backend/internal/feature/assetlist/domain/entity"
	"backtest_backend/internal/feature/assetlist/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// assetMySQL はAssetRepositoryインターフェースのgorm実装です。
type assetMySQL struct {
	db *gorm.DB
}

var _ usecase.AssetRepository = (*assetMySQL)(nil)

// NewAssetRepository は指定されたDB接続でassetMySQLリポジトリの新しいインスタンスを生成します。
func NewAssetRepository(db *gorm.DB) *assetMySQL {
	return &assetMySQL{db: db}
}

// ListActive はsort_key順にすべてのアクティブな取引ペアを返します。
func (r *assetMySQL) ListActive(ctx context.Context) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// Upsert は (coin, currency) をキーに取引ペアを登録または更新します。
func (r *assetMySQL) Upsert(ctx context.Context, a entity.Asset) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "coin"}, {Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "is_active", "sort_key", "updated_at"}),
	}).Create(&a).Error
}
