package models

import (
	"strings"
	"time"
)

const (
	tagDelimiter = ","
	iniDelimiter = "\n"
)

// Asset is one mod package: a directory under its entity plus user metadata.
// FolderName is stored without the disabled marker; the on-disk name is the
// source of truth for enable state and IsEnabled is only a scan-time cache.
type Asset struct {
	ID         string `gorm:"primaryKey;type:text"`
	EntitySlug string `gorm:"type:text;not null;index:idx_entity_folder,unique"`
	FolderName string `gorm:"type:text;not null;index:idx_entity_folder,unique"`

	Name        string `gorm:"type:text;not null"`
	Author      string `gorm:"type:text"`
	Description string `gorm:"type:text"`
	Tags        string `gorm:"type:text"`
	ImageFile   string `gorm:"type:text"`
	ConfigINIs  string `gorm:"type:text"`

	// No default tag: gorm omits zero-valued fields that carry one on
	// insert, which would silently store false as true.
	IsEnabled bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Entity Entity `gorm:"foreignKey:EntitySlug;references:Slug"`
}

// TagList splits the delimited tag field into a normalized slice.
func (a *Asset) TagList() []string {
	return splitDelimited(a.Tags, tagDelimiter)
}

// SetTagList stores tags back into the delimited field, dropping empties.
func (a *Asset) SetTagList(tags []string) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	a.Tags = strings.Join(cleaned, tagDelimiter)
}

// ConfigINIPaths returns the relative INI paths recorded for this asset.
func (a *Asset) ConfigINIPaths() []string {
	return splitDelimited(a.ConfigINIs, iniDelimiter)
}

// SetConfigINIPaths stores the relative INI paths found under the folder.
func (a *Asset) SetConfigINIPaths(paths []string) {
	a.ConfigINIs = strings.Join(paths, iniDelimiter)
}

func splitDelimited(raw, sep string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
