package keybind

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gmmerrors "github.com/Eidenz/GMM/pkg/errors"
)

const sampleINI = `[Constants]
global $swapvar = 0

; Cycle outfit variants
[KeySwap]
condition = $active == 1
key = ctrl alt p
type = cycle

[KeyToggleGlow]
; Toggle glow effect
key = VK_F9

[Present]
post $active = 0
`

func TestParseExtractsKeySections(t *testing.T) {
	p := NewParser("")
	records, err := p.Parse([]byte(sampleINI))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "KeySwap", records[0].SectionTitle)
	assert.Equal(t, "ctrl alt p", records[0].KeyCombo)
	assert.Equal(t, "Toggle glow effect", records[1].Description)
	assert.Equal(t, "VK_F9", records[1].KeyCombo)
}

func TestParseSectionCommentIsNotKeyDescription(t *testing.T) {
	src := `; Cycle outfit variants
[KeySwap]
key = no_modifiers VK_RIGHT
`
	p := NewParser("")
	records, err := p.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "no_modifiers VK_RIGHT", records[0].KeyCombo)
	assert.Empty(t, records[0].Description)
}

func TestParseDuplicatesKeptInFileOrder(t *testing.T) {
	src := `[KeySwap]
key = VK_RIGHT
key = VK_LEFT

[KeySwap]
key = VK_UP
`
	p := NewParser("")
	records, err := p.Parse([]byte(src))
	require.NoError(t, err)

	combos := make([]string, len(records))
	for i, r := range records {
		combos[i] = r.KeyCombo
	}
	assert.Equal(t, []string{"VK_RIGHT", "VK_LEFT", "VK_UP"}, combos)
}

func TestParseIgnoresNonKeySections(t *testing.T) {
	src := `[TextureOverride]
key = VK_F2
hash = abcd1234
`
	p := NewParser("")
	records, err := p.Parse([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseCustomPrefix(t *testing.T) {
	src := `[HotkeySwap]
key = VK_F1
`
	records, err := NewParser("Hotkey").Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = NewParser("Key").Parse([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseAllBestEffort(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "mod.ini")
	require.NoError(t, os.WriteFile(good, []byte(sampleINI), 0o644))
	missing := filepath.Join(dir, "nope.ini")

	p := NewParser("")
	records, warnings := p.ParseAll([]string{good, missing})

	assert.Len(t, records, 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, missing, warnings[0].Path)
	assert.True(t, gmmerrors.IsKind(warnings[0].Err, gmmerrors.KindParse))
}

func TestParseFileMissing(t *testing.T) {
	_, err := NewParser("").ParseFile(filepath.Join(t.TempDir(), "absent.ini"))
	require.Error(t, err)
	assert.Equal(t, gmmerrors.KindParse, gmmerrors.GetKind(err))
}
