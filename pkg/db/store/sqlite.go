package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Eidenz/GMM/pkg/db/migrations"
	"github.com/Eidenz/GMM/pkg/db/models"
	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
)

// SQLiteStore implements MetadataStore using SQLite
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path         string
	MaxOpenConns int
	LogLevel     logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed metadata store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, gmmerrors.New(gmmerrors.KindConfig, "sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, gmmerrors.Wrap(err, gmmerrors.KindDB, "failed to open sqlite database")
	}

	return &SQLiteStore{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(1) // SQLite only supports 1 writer
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs database migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return migrations.NewMigrator(s.db).Migrate(ctx)
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// wrapDB converts gorm errors into the engine taxonomy: missing rows become
// NOT_FOUND, everything else DB.
func wrapDB(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gmmerrors.Newf(gmmerrors.KindNotFound, "%s not found", what)
	}
	return gmmerrors.Wrapf(err, gmmerrors.KindDB, "%s query failed", what)
}

// Entity operations

func (s *SQLiteStore) UpsertEntity(ctx context.Context, entity *models.Entity) error {
	return wrapDB(s.db.WithContext(ctx).Save(entity).Error, "entity")
}

func (s *SQLiteStore) GetEntity(ctx context.Context, slug string) (*models.Entity, error) {
	var entity models.Entity
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&entity).Error
	if err != nil {
		return nil, wrapDB(err, fmt.Sprintf("entity %q", slug))
	}
	return &entity, nil
}

func (s *SQLiteStore) ListEntities(ctx context.Context) ([]models.Entity, error) {
	var entities []models.Entity
	err := s.db.WithContext(ctx).Order("display_name").Find(&entities).Error
	return entities, wrapDB(err, "entities")
}

func (s *SQLiteStore) DeleteEntity(ctx context.Context, slug string) error {
	// Cascade is enforced here as well; sqlite foreign keys may be off.
	if err := s.DeleteAssetsByEntity(ctx, slug); err != nil {
		return err
	}
	return wrapDB(s.db.WithContext(ctx).Delete(&models.Entity{}, "slug = ?", slug).Error, "entity")
}

// Asset operations

func (s *SQLiteStore) CreateAsset(ctx context.Context, asset *models.Asset) error {
	return wrapDB(s.db.WithContext(ctx).Omit("Entity").Create(asset).Error, "asset")
}

func (s *SQLiteStore) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&asset).Error
	if err != nil {
		return nil, wrapDB(err, fmt.Sprintf("asset %q", id))
	}
	return &asset, nil
}

func (s *SQLiteStore) ListAssets(ctx context.Context, entitySlug string) ([]models.Asset, error) {
	var assets []models.Asset
	err := s.db.WithContext(ctx).
		Where("entity_slug = ?", entitySlug).
		Order("name").
		Find(&assets).Error
	return assets, wrapDB(err, "assets")
}

func (s *SQLiteStore) ListAllAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	err := s.db.WithContext(ctx).Order("entity_slug, name").Find(&assets).Error
	return assets, wrapDB(err, "assets")
}

func (s *SQLiteStore) ListAssetsByTag(ctx context.Context, tag string) ([]models.Asset, error) {
	var assets []models.Asset
	// Tags are a comma-delimited field; match the tag with delimiter padding
	// so "ui" does not match "guide".
	padded := "%," + tag + ",%"
	err := s.db.WithContext(ctx).
		Where("(',' || tags || ',') LIKE ?", padded).
		Order("entity_slug, name").
		Find(&assets).Error
	return assets, wrapDB(err, "assets")
}

func (s *SQLiteStore) UpdateAsset(ctx context.Context, asset *models.Asset) error {
	return wrapDB(s.db.WithContext(ctx).Omit("Entity").Save(asset).Error, "asset")
}

func (s *SQLiteStore) DeleteAsset(ctx context.Context, id string) error {
	return wrapDB(s.db.WithContext(ctx).Delete(&models.Asset{}, "id = ?", id).Error, "asset")
}

func (s *SQLiteStore) DeleteAssetsByEntity(ctx context.Context, entitySlug string) error {
	return wrapDB(s.db.WithContext(ctx).Where("entity_slug = ?", entitySlug).Delete(&models.Asset{}).Error, "assets")
}

// Preset operations

func (s *SQLiteStore) CreatePreset(ctx context.Context, preset *models.Preset) error {
	return wrapDB(s.db.WithContext(ctx).Create(preset).Error, "preset")
}

func (s *SQLiteStore) GetPreset(ctx context.Context, id uint) (*models.Preset, error) {
	var preset models.Preset
	err := s.db.WithContext(ctx).Preload("Members").Where("id = ?", id).First(&preset).Error
	if err != nil {
		return nil, wrapDB(err, fmt.Sprintf("preset %d", id))
	}
	return &preset, nil
}

func (s *SQLiteStore) ListPresets(ctx context.Context) ([]models.Preset, error) {
	var presets []models.Preset
	err := s.db.WithContext(ctx).Preload("Members").Order("name").Find(&presets).Error
	return presets, wrapDB(err, "presets")
}

func (s *SQLiteStore) DeletePreset(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Where("preset_id = ?", id).Delete(&models.PresetMember{}).Error; err != nil {
		return wrapDB(err, "preset members")
	}
	return wrapDB(s.db.WithContext(ctx).Delete(&models.Preset{}, id).Error, "preset")
}

// Setting operations

func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return "", wrapDB(err, fmt.Sprintf("setting %q", key))
	}
	return setting.Value, nil
}

func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return wrapDB(s.db.WithContext(ctx).Save(&setting).Error, "setting")
}
