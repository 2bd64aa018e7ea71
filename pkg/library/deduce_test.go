package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetIDIsStable(t *testing.T) {
	first := AssetID("raiden", "NeonOutfit")
	second := AssetID("raiden", "NeonOutfit")
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, AssetID("ayaka", "NeonOutfit"))
	assert.NotEqual(t, first, AssetID("raiden", "OldOutfit"))
}

func TestDeriveDisplayName(t *testing.T) {
	cases := map[string]string{
		"Neon_Outfit_v1.2":       "Neon Outfit",
		"NeonOutfit":             "NeonOutfit",
		"DISABLED_Neon_Outfit":   "Neon Outfit",
		"Neon_Outfit_(disabled)": "Neon Outfit",
		"Outfit_v2":              "Outfit",
		"_v1":                    "_v1",
	}
	for input, want := range cases {
		assert.Equal(t, want, DeriveDisplayName(input), "input %q", input)
	}
}

func TestDeduceMetadataFromINI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mod.ini"),
		[]byte("[Mod]\nName = Fancy Outfit\nAuthor = someone\nDescription = glows in the dark\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preview.png"), []byte("png"), 0o644))

	meta := DeduceMetadata(dir, "Fancy_Outfit_v3")
	assert.Equal(t, "Fancy Outfit", meta.Name)
	assert.Equal(t, "someone", meta.Author)
	assert.Equal(t, "glows in the dark", meta.Description)
	assert.Equal(t, "preview.png", meta.ImageFile)
	assert.Equal(t, []string{"mod.ini"}, meta.ConfigINIs)
}

func TestDeduceMetadataFallsBackToFolderName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merged.ini"),
		[]byte("[TextureOverride]\nhash = abc123\n"), 0o644))

	meta := DeduceMetadata(dir, "Plain_Mod")
	assert.Equal(t, "Plain Mod", meta.Name)
	assert.Empty(t, meta.Author)
	assert.Empty(t, meta.ImageFile)
}

func TestDeduceMetadataProbesRootINIsFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "deep.ini"),
		[]byte("[Mod]\nName = Wrong\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "root.ini"),
		[]byte("[Mod]\nName = Right\n"), 0o644))

	meta := DeduceMetadata(dir, "Some_Mod")
	assert.Equal(t, "Right", meta.Name)
	assert.Equal(t, []string{"root.ini", "nested/deep.ini"}, meta.ConfigINIs)
}

func TestScannerSplitsMarker(t *testing.T) {
	s := NewScanner("/tmp", "DISABLED_")

	name, enabled := s.SplitMarker("NeonOutfit")
	assert.Equal(t, "NeonOutfit", name)
	assert.True(t, enabled)

	name, enabled = s.SplitMarker("DISABLED_NeonOutfit")
	assert.Equal(t, "NeonOutfit", name)
	assert.False(t, enabled)

	assert.Equal(t, "NeonOutfit", s.DiskName("NeonOutfit", true))
	assert.Equal(t, "DISABLED_NeonOutfit", s.DiskName("NeonOutfit", false))
}

func TestScannerSkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "raiden", "NeonOutfit"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "raiden", ".staging-123"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	assets, failed, warnings, err := NewScanner(root, "DISABLED_").Scan()
	require.NoError(t, err)
	assert.Empty(t, failed)
	assert.Empty(t, warnings)
	require.Len(t, assets, 1)
	assert.Equal(t, "NeonOutfit", assets[0].FolderName)
}
