package models

import "time"

// Preset is a named snapshot of which assets should be enabled. EntitySlug
// scopes the preset to one entity; empty means the whole library.
type Preset struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"type:text;not null;uniqueIndex"`
	EntitySlug string `gorm:"type:text;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Members []PresetMember `gorm:"foreignKey:PresetID;constraint:OnDelete:CASCADE"`
}

// PresetMember records the desired enable state for one asset.
type PresetMember struct {
	ID       uint   `gorm:"primaryKey"`
	PresetID uint   `gorm:"not null;index:idx_preset_asset,unique"`
	AssetID  string `gorm:"type:text;not null;index:idx_preset_asset,unique"`
	Enabled  bool   `gorm:"not null"`
}
