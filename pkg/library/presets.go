package library

import (
	"context"

	"github.com/Eidenz/GMM/pkg/db/models"
	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
)

// CreatePreset snapshots the current enabled/disabled state of a set of
// assets. An empty entitySlug makes a global preset covering every entity;
// otherwise only that entity's assets are captured. Enable state is read
// from the folder name on disk, never from the cached is_enabled column, so
// out-of-band renames cannot leak a stale state into the snapshot.
func (l *Library) CreatePreset(ctx context.Context, name, entitySlug string) (*models.Preset, error) {
	if name == "" {
		return nil, gmmerrors.New(gmmerrors.KindConfig, "preset name must not be empty")
	}

	var assets []models.Asset
	var err error
	if entitySlug == "" {
		assets, err = l.store.ListAllAssets(ctx)
	} else {
		assets, err = l.store.ListAssets(ctx, entitySlug)
	}
	if err != nil {
		return nil, err
	}

	preset := &models.Preset{Name: name, EntitySlug: entitySlug}
	for i := range assets {
		asset := assets[i]
		var enabled bool
		err := l.withEntityLock(asset.EntitySlug, func() error {
			_, on, err := l.locateAsset(&asset)
			if err != nil {
				return err
			}
			enabled = on
			return nil
		})
		if err != nil {
			// A folder that vanished since the last scan has no state to record.
			if gmmerrors.IsKind(err, gmmerrors.KindNotFound) {
				continue
			}
			return nil, err
		}
		preset.Members = append(preset.Members, models.PresetMember{
			AssetID: asset.ID,
			Enabled: enabled,
		})
	}
	if err := l.store.CreatePreset(ctx, preset); err != nil {
		return nil, err
	}

	l.logger.Info("Created preset %q capturing %d assets", name, len(preset.Members))
	return preset, nil
}

// Presets lists all stored presets with their members.
func (l *Library) Presets(ctx context.Context) ([]models.Preset, error) {
	return l.store.ListPresets(ctx)
}

// DeletePreset removes a preset and its members. Asset folders and rows are
// untouched.
func (l *Library) DeletePreset(ctx context.Context, presetID uint) error {
	return l.store.DeletePreset(ctx, presetID)
}

// PresetItemResult reports the outcome of applying one preset member.
type PresetItemResult struct {
	AssetID string
	Changed bool
	Err     error
}

// ApplyPreset drives every member asset to its recorded state. Application
// is best effort per member: a missing or colliding asset is reported in
// its item result and the rest of the preset still applies.
func (l *Library) ApplyPreset(ctx context.Context, presetID uint) ([]PresetItemResult, error) {
	preset, err := l.store.GetPreset(ctx, presetID)
	if err != nil {
		return nil, err
	}

	results := make([]PresetItemResult, 0, len(preset.Members))
	for _, member := range preset.Members {
		changed, err := l.SetEnabled(ctx, member.AssetID, member.Enabled)
		results = append(results, PresetItemResult{
			AssetID: member.AssetID,
			Changed: changed,
			Err:     err,
		})
	}

	l.logger.Info("Applied preset %q to %d assets", preset.Name, len(results))
	return results, nil
}
