package store

import (
	"context"

	"github.com/Eidenz/GMM/pkg/db/models"
)

// MetadataStore defines the interface for database operations. The store is
// an advisory cache: it can be deleted and rebuilt from disk by a full
// rescan, losing only user-entered metadata.
type MetadataStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Entity operations
	UpsertEntity(ctx context.Context, entity *models.Entity) error
	GetEntity(ctx context.Context, slug string) (*models.Entity, error)
	ListEntities(ctx context.Context) ([]models.Entity, error)
	DeleteEntity(ctx context.Context, slug string) error

	// Asset operations
	CreateAsset(ctx context.Context, asset *models.Asset) error
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	ListAssets(ctx context.Context, entitySlug string) ([]models.Asset, error)
	ListAllAssets(ctx context.Context) ([]models.Asset, error)
	ListAssetsByTag(ctx context.Context, tag string) ([]models.Asset, error)
	UpdateAsset(ctx context.Context, asset *models.Asset) error
	DeleteAsset(ctx context.Context, id string) error
	DeleteAssetsByEntity(ctx context.Context, entitySlug string) error

	// Preset operations
	CreatePreset(ctx context.Context, preset *models.Preset) error
	GetPreset(ctx context.Context, id uint) (*models.Preset, error)
	ListPresets(ctx context.Context) ([]models.Preset, error)
	DeletePreset(ctx context.Context, id uint) error

	// Setting operations
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
