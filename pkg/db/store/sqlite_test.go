package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eidenz/GMM/pkg/db/models"
	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	st, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.sqlite")})
	require.NoError(t, err)
	require.NoError(t, st.Connect(ctx))
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore(SQLiteConfig{})
	require.Error(t, err)
	assert.True(t, gmmerrors.IsKind(err, gmmerrors.KindConfig))
}

func TestEntityLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertEntity(ctx, &models.Entity{
		Slug: "raiden", DisplayName: "Raiden Shogun", Category: "characters",
	}))

	entity, err := st.GetEntity(ctx, "raiden")
	require.NoError(t, err)
	assert.Equal(t, "Raiden Shogun", entity.DisplayName)

	// Upsert refreshes in place instead of duplicating.
	entity.DisplayName = "Raiden"
	require.NoError(t, st.UpsertEntity(ctx, entity))
	entities, err := st.ListEntities(ctx)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Raiden", entities[0].DisplayName)

	require.NoError(t, st.DeleteEntity(ctx, "raiden"))
	_, err = st.GetEntity(ctx, "raiden")
	assert.True(t, gmmerrors.IsKind(err, gmmerrors.KindNotFound))
}

func TestDeleteEntityCascadesAssets(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertEntity(ctx, &models.Entity{Slug: "raiden", DisplayName: "Raiden"}))
	require.NoError(t, st.CreateAsset(ctx, &models.Asset{
		ID: "a1", EntitySlug: "raiden", FolderName: "NeonOutfit", Name: "Neon Outfit",
	}))

	require.NoError(t, st.DeleteEntity(ctx, "raiden"))

	_, err := st.GetAsset(ctx, "a1")
	assert.True(t, gmmerrors.IsKind(err, gmmerrors.KindNotFound))
}

func TestAssetCRUD(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertEntity(ctx, &models.Entity{Slug: "raiden", DisplayName: "Raiden"}))

	asset := &models.Asset{
		ID: "a1", EntitySlug: "raiden", FolderName: "NeonOutfit",
		Name: "Neon Outfit", IsEnabled: true,
	}
	asset.SetTagList([]string{"outfit", "neon"})
	require.NoError(t, st.CreateAsset(ctx, asset))

	got, err := st.GetAsset(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"outfit", "neon"}, got.TagList())

	got.Author = "someone"
	got.IsEnabled = false
	require.NoError(t, st.UpdateAsset(ctx, got))

	got, err = st.GetAsset(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "someone", got.Author)
	assert.False(t, got.IsEnabled)

	require.NoError(t, st.DeleteAsset(ctx, "a1"))
	_, err = st.GetAsset(ctx, "a1")
	assert.True(t, gmmerrors.IsKind(err, gmmerrors.KindNotFound))
}

func TestCreateAssetPersistsDisabledState(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertEntity(ctx, &models.Entity{Slug: "raiden", DisplayName: "Raiden"}))

	// A mod discovered already disabled must round-trip as disabled.
	require.NoError(t, st.CreateAsset(ctx, &models.Asset{
		ID: "a1", EntitySlug: "raiden", FolderName: "OldOutfit",
		Name: "Old Outfit", IsEnabled: false,
	}))

	got, err := st.GetAsset(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, got.IsEnabled)
}

func TestUniqueFolderPerEntity(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertEntity(ctx, &models.Entity{Slug: "raiden", DisplayName: "Raiden"}))
	require.NoError(t, st.UpsertEntity(ctx, &models.Entity{Slug: "ayaka", DisplayName: "Ayaka"}))

	require.NoError(t, st.CreateAsset(ctx, &models.Asset{
		ID: "a1", EntitySlug: "raiden", FolderName: "Outfit", Name: "Outfit",
	}))

	// Same folder under another entity is fine.
	require.NoError(t, st.CreateAsset(ctx, &models.Asset{
		ID: "a2", EntitySlug: "ayaka", FolderName: "Outfit", Name: "Outfit",
	}))

	// Same folder under the same entity is not.
	err := st.CreateAsset(ctx, &models.Asset{
		ID: "a3", EntitySlug: "raiden", FolderName: "Outfit", Name: "Copy",
	})
	require.Error(t, err)
	assert.True(t, gmmerrors.IsKind(err, gmmerrors.KindDB))
}

func TestListAssetsByTag(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertEntity(ctx, &models.Entity{Slug: "raiden", DisplayName: "Raiden"}))

	a := &models.Asset{ID: "a1", EntitySlug: "raiden", FolderName: "F1", Name: "UI Tweak"}
	a.SetTagList([]string{"ui", "hud"})
	require.NoError(t, st.CreateAsset(ctx, a))

	b := &models.Asset{ID: "a2", EntitySlug: "raiden", FolderName: "F2", Name: "Guide Pack"}
	b.SetTagList([]string{"guide"})
	require.NoError(t, st.CreateAsset(ctx, b))

	// "ui" must not match the "guide" tag by substring.
	matches, err := st.ListAssetsByTag(ctx, "ui")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a1", matches[0].ID)

	matches, err = st.ListAssetsByTag(ctx, "hud")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	matches, err = st.ListAssetsByTag(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestPresetLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertEntity(ctx, &models.Entity{Slug: "raiden", DisplayName: "Raiden"}))
	require.NoError(t, st.CreateAsset(ctx, &models.Asset{
		ID: "a1", EntitySlug: "raiden", FolderName: "F1", Name: "One", IsEnabled: true,
	}))

	preset := &models.Preset{
		Name:       "tournament",
		EntitySlug: "raiden",
		Members:    []models.PresetMember{{AssetID: "a1", Enabled: true}},
	}
	require.NoError(t, st.CreatePreset(ctx, preset))
	require.NotZero(t, preset.ID)

	got, err := st.GetPreset(ctx, preset.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "a1", got.Members[0].AssetID)

	require.NoError(t, st.DeletePreset(ctx, preset.ID))
	_, err = st.GetPreset(ctx, preset.ID)
	assert.True(t, gmmerrors.IsKind(err, gmmerrors.KindNotFound))
}

func TestSettingsRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.GetSetting(ctx, models.SettingKeyLibraryRoot)
	assert.True(t, gmmerrors.IsKind(err, gmmerrors.KindNotFound))

	require.NoError(t, st.SetSetting(ctx, models.SettingKeyLibraryRoot, "/data/mods"))
	value, err := st.GetSetting(ctx, models.SettingKeyLibraryRoot)
	require.NoError(t, err)
	assert.Equal(t, "/data/mods", value)

	require.NoError(t, st.SetSetting(ctx, models.SettingKeyLibraryRoot, "/other"))
	value, err = st.GetSetting(ctx, models.SettingKeyLibraryRoot)
	require.NoError(t, err)
	assert.Equal(t, "/other", value)
}
