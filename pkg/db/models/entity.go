package models

import "time"

// DefaultCategory is assigned to entities discovered on disk without a
// matching definition.
const DefaultCategory = "other"

// Entity is one moddable in-game subject. Its slug doubles as the directory
// name under the library root; rows follow the directory's lifecycle.
type Entity struct {
	Slug        string `gorm:"primaryKey;type:text"`
	DisplayName string `gorm:"type:text;not null"`
	Category    string `gorm:"type:text;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Assets []Asset `gorm:"foreignKey:EntitySlug;constraint:OnDelete:CASCADE"`
}
