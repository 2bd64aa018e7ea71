package library

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/Eidenz/GMM/pkg/db/models"
	"github.com/Eidenz/GMM/pkg/db/store"
	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
	"github.com/Eidenz/GMM/pkg/keybind"
	"github.com/Eidenz/GMM/pkg/log"
)

// Config carries the disk-facing knobs of the library engine.
type Config struct {
	Root             string
	DisabledMarker   string
	KeySectionPrefix string
}

// Library is the mod-library engine: the filesystem is the source of truth
// for which mods exist and whether they are enabled, the metadata store
// caches everything users typed in.
type Library struct {
	cfg     Config
	store   store.MetadataStore
	logger  log.LoggerService
	scanner *Scanner

	mu      sync.RWMutex
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func New(cfg Config, st store.MetadataStore, logger log.LoggerService) *Library {
	return &Library{
		cfg:     cfg,
		store:   st,
		logger:  logger,
		scanner: NewScanner(cfg.Root, cfg.DisabledMarker),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Root returns the configured library root directory.
func (l *Library) Root() string {
	return l.cfg.Root
}

// Entities lists all known entities with their cached metadata.
func (l *Library) Entities(ctx context.Context) ([]models.Entity, error) {
	return l.store.ListEntities(ctx)
}

// Assets lists the cached assets of one entity.
func (l *Library) Assets(ctx context.Context, entitySlug string) ([]models.Asset, error) {
	if _, err := l.store.GetEntity(ctx, entitySlug); err != nil {
		return nil, err
	}
	return l.store.ListAssets(ctx, entitySlug)
}

// Asset fetches a single asset row by ID.
func (l *Library) Asset(ctx context.Context, assetID string) (*models.Asset, error) {
	return l.store.GetAsset(ctx, assetID)
}

// AssetsByTag lists all assets carrying the given tag, across entities.
func (l *Library) AssetsByTag(ctx context.Context, tag string) ([]models.Asset, error) {
	return l.store.ListAssetsByTag(ctx, tag)
}

// Keybinds parses the key-section bindings of an asset's config INIs.
// Parsing is best effort: unreadable files become warnings, not errors.
func (l *Library) Keybinds(ctx context.Context, assetID string) ([]keybind.Record, []keybind.FileWarning, error) {
	asset, err := l.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, nil, err
	}

	dir, _, err := l.locateAsset(asset)
	if err != nil {
		return nil, nil, err
	}

	relPaths := asset.ConfigINIPaths()
	if len(relPaths) == 0 {
		relPaths = findConfigINIs(dir)
	}
	paths := make([]string, 0, len(relPaths))
	for _, rel := range relPaths {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(rel)))
	}

	parser := keybind.NewParser(l.cfg.KeySectionPrefix)
	records, warnings := parser.ParseAll(paths)
	return records, warnings, nil
}

// EditMetadataPatch updates only the fields whose pointers are set.
type EditMetadataPatch struct {
	Name        *string
	Author      *string
	Description *string
	Tags        *[]string
	ImageFile   *string
}

// EditMetadata patches user-entered fields of an asset row. It never touches
// the disk and never invents values for fields the caller left nil.
func (l *Library) EditMetadata(ctx context.Context, assetID string, patch EditMetadataPatch) (*models.Asset, error) {
	asset, err := l.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		asset.Name = *patch.Name
	}
	if patch.Author != nil {
		asset.Author = *patch.Author
	}
	if patch.Description != nil {
		asset.Description = *patch.Description
	}
	if patch.Tags != nil {
		asset.SetTagList(*patch.Tags)
	}
	if patch.ImageFile != nil {
		asset.ImageFile = *patch.ImageFile
	}
	if err := l.store.UpdateAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Delete removes an asset's folder from disk and its row from the store.
func (l *Library) Delete(ctx context.Context, assetID string) error {
	asset, err := l.store.GetAsset(ctx, assetID)
	if err != nil {
		return err
	}
	return l.withEntityLock(asset.EntitySlug, func() error {
		dir, _, err := l.locateAsset(asset)
		if err == nil {
			if err := os.RemoveAll(dir); err != nil {
				return gmmerrors.Wrapf(err, gmmerrors.KindIO, "deleting %s", dir)
			}
		} else if !gmmerrors.IsKind(err, gmmerrors.KindNotFound) {
			return err
		}
		return l.store.DeleteAsset(ctx, assetID)
	})
}

// locateAsset resolves the current on-disk directory of an asset, tolerating
// a stale is_enabled cache by probing both the enabled and disabled names.
func (l *Library) locateAsset(asset *models.Asset) (string, bool, error) {
	entityDir := filepath.Join(l.cfg.Root, asset.EntitySlug)

	enabledPath := filepath.Join(entityDir, asset.FolderName)
	if dirExists(enabledPath) {
		return enabledPath, true, nil
	}
	disabledPath := filepath.Join(entityDir, l.scanner.DiskName(asset.FolderName, false))
	if dirExists(disabledPath) {
		return disabledPath, false, nil
	}
	return "", false, gmmerrors.Newf(gmmerrors.KindNotFound,
		"asset folder %q missing under entity %q", asset.FolderName, asset.EntitySlug)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
