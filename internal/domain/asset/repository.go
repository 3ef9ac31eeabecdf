package asset

import "context"

// Directory is the read/mutate surface this core consumes from the asset
// subsystem. The loan workflow only ever flips status at the
// activation/return boundaries; everything else about assets belongs to the
// surrounding service.
type Directory interface {
	Get(ctx context.Context, assetID string) (*Asset, error)
	SetStatus(ctx context.Context, assetID string, status string) error
}
