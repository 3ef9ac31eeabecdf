package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	assetDomain "github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/asset"
)

// AssetRepository is the gorm-backed asset.Directory. The asset table is
// owned by the surrounding service; this core only reads it and flips status
// at the loan activation/return boundaries.
type AssetRepository struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) *AssetRepository { return &AssetRepository{db: db} }

func (r *AssetRepository) Get(ctx context.Context, assetID string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, assetDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *AssetRepository) SetStatus(ctx context.Context, assetID string, status string) error {
	res := r.db.WithContext(ctx).
		Model(&assetDomain.Asset{}).
		Where("asset_id = ?", assetID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return assetDomain.ErrNotFound
	}
	return nil
}
