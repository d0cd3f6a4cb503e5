package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"SketchBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", Extension("png"))
	assert.Equal(t, ".png", Extension(" PNG "))
	assert.Equal(t, ".pdf", Extension("pdf"))
	assert.Equal(t, ".jpg", Extension("jpeg"))
	assert.Equal(t, ".jpg", Extension(""))
}

func TestRasterPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, Raster(&buf, "png", img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), decoded.Bounds())
	r, _, _, a := decoded.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestRasterJPG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, Raster(&buf, "jpg", img))
	assert.Equal(t, []byte{0xff, 0xd8}, buf.Bytes()[:2])
}

func TestRasterRejectsPDF(t *testing.T) {
	err := Raster(&bytes.Buffer{}, "pdf", image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	assert.Error(t, err)
}

func TestPDF(t *testing.T) {
	paths := []state.PathData{
		{Drawer: "me", Path: state.Path{ID: 1, Color: "#FF0000AA", Width: 4, Points: []state.Point{{X: 1, Y: 1}, {X: 20, Y: 30}}}},
		{Drawer: "me", Path: state.Path{ID: 2, Color: state.EraseColor, Width: 8, Points: []state.Point{{X: 5, Y: 5}, {X: 6, Y: 6}}}},
		{Drawer: "me", Path: state.Path{ID: 3, Color: "#0000FF", Width: 2, Points: []state.Point{{X: 50, Y: 50}}}},
	}
	bg := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	below := []Layer{{Image: bg, Area: state.Area{Width: 100, Height: 80}}}

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, state.Size{Width: 100, Height: 80}, paths, below, nil, true))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
