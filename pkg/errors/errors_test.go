package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormat(t *testing.T) {
	err := New(KindNotFound, "asset not found")
	assert.Equal(t, "[NOT_FOUND] asset not found", err.Error())

	wrapped := Wrap(os.ErrPermission, KindIO, "rename failed")
	assert.Contains(t, wrapped.Error(), "[IO] rename failed")
	assert.Contains(t, wrapped.Error(), os.ErrPermission.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindIO, "nope"))
	assert.Nil(t, Wrapf(nil, KindIO, "nope %d", 1))
}

func TestUnwrapChain(t *testing.T) {
	cause := os.ErrNotExist
	err := Wrapf(cause, KindIO, "reading %q", "mods")
	require.ErrorIs(t, err, cause)

	// another layer of plain wrapping keeps the kind discoverable
	outer := fmt.Errorf("rescan: %w", err)
	assert.True(t, IsKind(outer, KindIO))
	assert.Equal(t, KindIO, GetKind(outer))
}

func TestIsMatchesByKind(t *testing.T) {
	a := Newf(KindNameCollision, "folder %q exists", "ModA")
	b := New(KindNameCollision, "")
	assert.True(t, errors.Is(a, b))

	c := New(KindParse, "")
	assert.False(t, errors.Is(a, c))
}

func TestGetKindForeign(t *testing.T) {
	assert.Equal(t, KindUnknown, GetKind(errors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(KindArchiveFormat, "unsafe entry").
		WithDetail("entry", "../escape").
		WithDetail("archive", "mod.zip")
	assert.Equal(t, "../escape", err.Details["entry"])
	assert.Len(t, err.Details, 2)
}
