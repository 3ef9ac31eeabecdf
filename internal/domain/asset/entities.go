package asset

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("asset not found")

// Well-known status names. The set is open: sibling subsystems (audits,
// maintenance tickets) may write names this core never sets; unknown names
// are treated as non-deployable.
const (
	StatusReady       = "ready"
	StatusInUse       = "in-use"
	StatusBroken      = "broken"
	StatusMaintenance = "maintenance"
	StatusLost        = "lost"
)

// Deployable reports whether an asset in the given status may be loaned out.
func Deployable(status string) bool {
	return status == StatusReady
}

type Asset struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"-"`
	AssetID   string         `gorm:"size:32;uniqueIndex:ux_assets_asset_id" json:"asset_id"`
	Name      string         `gorm:"size:128" json:"name"`
	UnitID    string         `gorm:"size:32;index:idx_assets_unit" json:"unit_id"`
	Status    string         `gorm:"size:20;default:'ready'" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Asset) TableName() string { return "assets" }

// Deployable reports whether the asset is currently eligible to be loaned.
func (a *Asset) Deployable() bool { return Deployable(a.Status) }
