package permission

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixed struct {
	ok    bool
	err   error
	calls int
}

func (f *fixed) Request(context.Context, string, string) (bool, error) {
	f.calls++
	return f.ok, f.err
}

func TestDirectoryGrantsWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	ok, err := Directory{Path: dir}.Request(context.Background(), "Save", "")
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file is cleaned up")
}

func TestDirectoryUnderFileFails(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	ok, err := Directory{Path: filepath.Join(file, "sub")}.Request(context.Background(), "Save", "")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestAllStopsAtFirstRefusal(t *testing.T) {
	yes := &fixed{ok: true}
	no := &fixed{}
	last := &fixed{ok: true}

	ok, err := All(yes, no, last).Request(context.Background(), "t", "m")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, yes.calls)
	assert.Equal(t, 1, no.calls)
	assert.Zero(t, last.calls)
}

func TestAllPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	ok, err := All(&fixed{ok: true}, &fixed{err: boom}).Request(context.Background(), "t", "m")
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestAllEmptyGrants(t *testing.T) {
	ok, err := All().Request(context.Background(), "t", "m")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDialogHonoursContext(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w := test.NewWindow(nil)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err := (&Dialog{Window: w}).Request(ctx, "Storage", "Allow saving?")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestDialogRemembersGrant(t *testing.T) {
	d := &Dialog{granted: true}
	ok, err := d.Request(context.Background(), "Storage", "Allow saving?")
	require.NoError(t, err)
	assert.True(t, ok)
}
