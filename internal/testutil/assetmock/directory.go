package assetmock

import (
	"context"
	"errors"

	domain "github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/asset"
)

var _ domain.Directory = (*Directory)(nil)

var errUnimplemented = errors.New("assetmock: method not implemented")

// Directory is a function-backed mock of the asset directory.
type Directory struct {
	GetFn       func(ctx context.Context, assetID string) (*domain.Asset, error)
	SetStatusFn func(ctx context.Context, assetID string, status string) error
}

func (m *Directory) Get(ctx context.Context, assetID string) (*domain.Asset, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, assetID)
	}
	return nil, errUnimplemented
}

func (m *Directory) SetStatus(ctx context.Context, assetID string, status string) error {
	if m.SetStatusFn != nil {
		return m.SetStatusFn(ctx, assetID, status)
	}
	return nil
}
