package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathBy(drawer string, id int) PathData {
	return PathData{Drawer: drawer, Path: Path{ID: id, Color: "#000000FF", Width: 3}}
}

func TestPathStoreAddIgnoresDuplicates(t *testing.T) {
	ps := NewPathStore()
	require.True(t, ps.Add(pathBy("me", 1)))
	assert.False(t, ps.Add(pathBy("other", 1)))
	assert.Equal(t, 1, ps.Len())
	assert.Equal(t, "me", ps.All()[0].Drawer)
}

func TestPathStoreNextIDSkipsObserved(t *testing.T) {
	ps := NewPathStore()
	ps.Add(pathBy("remote", 41))
	assert.Equal(t, 42, ps.NextID())
	assert.Equal(t, 43, ps.NextID())
}

func TestPathStoreUndoByDrawer(t *testing.T) {
	ps := NewPathStore()
	ps.Add(pathBy("me", 1))
	ps.Add(pathBy("other", 2))
	ps.Add(pathBy("me", 3))
	ps.Add(pathBy("other", 4))

	assert.Equal(t, 3, ps.UndoBy("me"))
	assert.Equal(t, 1, ps.UndoBy("me"))
	assert.Equal(t, -1, ps.UndoBy("me"))

	ids := []int{}
	for _, p := range ps.All() {
		ids = append(ids, p.Path.ID)
	}
	assert.Equal(t, []int{2, 4}, ids)
}

func TestPathStoreRemoveAndClear(t *testing.T) {
	ps := NewPathStore()
	ps.Add(pathBy("me", 1))
	ps.Add(pathBy("me", 2))

	assert.True(t, ps.Remove(1))
	assert.False(t, ps.Remove(1))
	assert.Equal(t, 1, ps.Len())

	ps.Clear()
	assert.Equal(t, 0, ps.Len())
	assert.Empty(t, ps.All())
}
