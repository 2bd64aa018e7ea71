package library

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Eidenz/GMM/pkg/db/models"
)

// RescanResult summarizes one reconciliation pass.
type RescanResult struct {
	Created  int
	Updated  int
	Removed  int
	Warnings []string
}

// Rescan walks the library root and reconciles the metadata store with what
// is actually on disk. Disk wins: rows for vanished folders are removed, new
// folders get freshly deduced rows, and user-entered metadata on surviving
// rows is left alone. The pass holds the global write lock, so no toggle or
// install runs concurrently.
func (l *Library) Rescan(ctx context.Context) (RescanResult, error) {
	var result RescanResult
	err := l.withScanLock(func() error {
		scanned, failed, warnings, err := l.scanner.Scan()
		if err != nil {
			return err
		}
		result.Warnings = warnings
		return l.reconcile(ctx, scanned, failed, &result)
	})
	if err != nil {
		return RescanResult{}, err
	}
	l.logger.Info("Rescan complete: %d created, %d updated, %d removed, %d warnings",
		result.Created, result.Updated, result.Removed, len(result.Warnings))
	return result, nil
}

func (l *Library) reconcile(ctx context.Context, scanned []ScannedAsset, failed []string, result *RescanResult) error {
	existing, err := l.store.ListAllAssets(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]*models.Asset, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	failedEntities := make(map[string]bool, len(failed))
	for _, slug := range failed {
		failedEntities[slug] = true
	}

	seenEntities := make(map[string]bool)
	seenAssets := make(map[string]bool)

	for _, disk := range scanned {
		if !seenEntities[disk.EntitySlug] {
			if err := l.ensureEntity(ctx, disk.EntitySlug); err != nil {
				return err
			}
			seenEntities[disk.EntitySlug] = true
		}

		id := AssetID(disk.EntitySlug, disk.FolderName)
		if seenAssets[id] {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"entity %q has both enabled and disabled copies of %q; ignoring %q",
				disk.EntitySlug, disk.FolderName, disk.DiskName))
			continue
		}
		seenAssets[id] = true

		if row, ok := byID[id]; ok {
			if l.refreshAsset(row, disk) {
				if err := l.store.UpdateAsset(ctx, row); err != nil {
					return err
				}
				result.Updated++
			}
			continue
		}

		row := l.newAssetRow(disk)
		if err := l.store.CreateAsset(ctx, row); err != nil {
			return err
		}
		result.Created++
	}

	// Prune rows whose folders vanished. An entity that failed to scan was
	// not observed at all, so its rows are kept rather than treated as gone.
	for id, row := range byID {
		if seenAssets[id] || failedEntities[row.EntitySlug] {
			continue
		}
		if err := l.store.DeleteAsset(ctx, id); err != nil {
			return err
		}
		result.Removed++
	}

	// Prune entities with no directory left on disk.
	entities, err := l.store.ListEntities(ctx)
	if err != nil {
		return err
	}
	for _, entity := range entities {
		if failedEntities[entity.Slug] {
			continue
		}
		if !seenEntities[entity.Slug] && !dirExists(l.entityDir(entity.Slug)) {
			if err := l.store.DeleteEntity(ctx, entity.Slug); err != nil {
				return err
			}
		}
	}
	return nil
}

// refreshAsset folds the scanned disk state into an existing row. Only
// derived fields are touched; returns true when anything changed.
func (l *Library) refreshAsset(row *models.Asset, disk ScannedAsset) bool {
	changed := false
	if row.IsEnabled != disk.Enabled {
		row.IsEnabled = disk.Enabled
		changed = true
	}
	if row.FolderName != disk.FolderName {
		row.FolderName = disk.FolderName
		changed = true
	}

	meta := DeduceMetadata(disk.Path, disk.FolderName)
	inis := strings.Join(meta.ConfigINIs, "\n")
	if row.ConfigINIs != inis {
		row.SetConfigINIPaths(meta.ConfigINIs)
		changed = true
	}
	if row.ImageFile == "" && meta.ImageFile != "" {
		row.ImageFile = meta.ImageFile
		changed = true
	}
	return changed
}

func (l *Library) newAssetRow(disk ScannedAsset) *models.Asset {
	meta := DeduceMetadata(disk.Path, disk.FolderName)
	row := &models.Asset{
		ID:          AssetID(disk.EntitySlug, disk.FolderName),
		EntitySlug:  disk.EntitySlug,
		FolderName:  disk.FolderName,
		Name:        meta.Name,
		Author:      meta.Author,
		Description: meta.Description,
		ImageFile:   meta.ImageFile,
		IsEnabled:   disk.Enabled,
	}
	row.SetConfigINIPaths(meta.ConfigINIs)
	return row
}

// ensureEntity upserts a minimal entity row if none exists yet, deriving a
// display name from the slug. Seeded definitions are never overwritten.
func (l *Library) ensureEntity(ctx context.Context, slug string) error {
	if _, err := l.store.GetEntity(ctx, slug); err == nil {
		return nil
	}
	return l.store.UpsertEntity(ctx, &models.Entity{
		Slug:        slug,
		DisplayName: DeriveDisplayName(slug),
		Category:    models.DefaultCategory,
	})
}

func (l *Library) entityDir(slug string) string {
	return filepath.Join(l.cfg.Root, slug)
}
