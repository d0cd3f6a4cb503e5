package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillArea(t *testing.T) {
	assert.Equal(t, Area{X: 0, Y: 25, Width: 100, Height: 50}, FillArea(200, 100, 100, 100, ModeAspectFit))
	assert.Equal(t, Area{X: -50, Y: 0, Width: 200, Height: 100}, FillArea(200, 100, 100, 100, ModeAspectFill))
	assert.Equal(t, Area{Width: 100, Height: 100}, FillArea(200, 100, 100, 100, ModeScaleToFill))
	assert.Equal(t, FillArea(200, 100, 100, 100, ModeAspectFit), FillArea(200, 100, 100, 100, ""))
	assert.Equal(t, Area{Width: 100, Height: 80}, FillArea(0, 0, 100, 80, ModeAspectFit))
}

func TestBounds(t *testing.T) {
	assert.Equal(t, Area{}, Bounds(nil))
	got := Bounds([]Point{{X: 5, Y: 9}, {X: 1, Y: 12}, {X: 7, Y: 2}})
	assert.Equal(t, Area{X: 1, Y: 2, Width: 6, Height: 10}, got)
}

func TestIntersect(t *testing.T) {
	a := Area{X: 0, Y: 0, Width: 10, Height: 10}
	assert.Equal(t, Area{X: 5, Y: 5, Width: 5, Height: 5}, Intersect(a, Area{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.Equal(t, Area{}, Intersect(a, Area{X: 20, Y: 20, Width: 1, Height: 1}))
}
