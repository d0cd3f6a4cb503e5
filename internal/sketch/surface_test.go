package sketch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"SketchBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	starts  []state.Point
	changes []state.Point
	ends    []state.PathData
	counts  []int
	saved   []string
	ok      []bool
}

func (r *recorder) events() Events {
	return Events{
		OnStrokeStart:   func(x, y float32) { r.starts = append(r.starts, state.Point{X: x, Y: y}) },
		OnStrokeChanged: func(x, y float32) { r.changes = append(r.changes, state.Point{X: x, Y: y}) },
		OnStrokeEnd:     func(d state.PathData) { r.ends = append(r.ends, d) },
		OnPathsChange:   func(n int) { r.counts = append(r.counts, n) },
		OnSketchSaved: func(ok bool, path string) {
			r.ok = append(r.ok, ok)
			r.saved = append(r.saved, path)
		},
	}
}

func newTestSurface(t *testing.T, rec *recorder) *Surface {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	s := NewSurface(t.TempDir(), rec.events())
	s.Resize(fyne.NewSize(200, 100))
	s.SetProps(Props{StrokeColor: "#FF0000FF", StrokeWidth: 4, User: "me"})
	return s
}

func drag(s *Surface, from, to fyne.Position) {
	s.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: to},
		Dragged:    fyne.NewDelta(to.X-from.X, to.Y-from.Y),
	})
}

func TestSurfaceDragCreatesPath(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)

	drag(s, fyne.NewPos(10, 10), fyne.NewPos(20, 15))
	drag(s, fyne.NewPos(20, 15), fyne.NewPos(30, 25))
	s.DragEnd()

	require.Len(t, rec.ends, 1)
	end := rec.ends[0]
	assert.Equal(t, "me", end.Drawer)
	assert.Equal(t, "#FF0000FF", end.Path.Color)
	assert.Equal(t, float32(4), end.Path.Width)
	assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 20, Y: 15}, {X: 30, Y: 25}}, end.Path.Points)
	assert.Equal(t, state.Size{Width: 200, Height: 100}, end.Size)

	assert.Equal(t, []state.Point{{X: 10, Y: 10}}, rec.starts)
	assert.Len(t, rec.changes, 2)
	assert.Equal(t, []int{1}, rec.counts)
	assert.Len(t, s.Paths(), 1)
}

func TestSurfaceTapDrawsDot(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)

	test.Tap(s)
	require.Len(t, rec.ends, 1)
	assert.Len(t, rec.ends[0].Path.Points, 1)
}

func TestSurfaceDragEndWithoutDrag(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)
	s.DragEnd()
	assert.Empty(t, rec.ends)
	assert.Empty(t, rec.counts)
}

func TestSurfaceUndoOnlyOwnPaths(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)

	s.AddPath(state.PathData{Drawer: "other", Path: state.Path{ID: 7, Color: "#000000FF", Width: 2, Points: []state.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}}})
	drag(s, fyne.NewPos(0, 0), fyne.NewPos(5, 5))
	s.DragEnd()
	mine := rec.ends[0].Path.ID
	assert.Greater(t, mine, 7, "local ids continue after observed ones")

	assert.Equal(t, mine, s.Undo())
	assert.Equal(t, -1, s.Undo())
	assert.Len(t, s.Paths(), 1)
	assert.Equal(t, []int{1, 2, 1}, rec.counts)
}

func TestSurfaceAddDeleteClear(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)

	p := state.PathData{Drawer: "x", Path: state.Path{ID: 3, Color: "#00FF00", Width: 1, Points: []state.Point{{X: 1, Y: 1}}}}
	s.AddPath(p)
	s.AddPath(p)
	s.DeletePath(99)
	s.DeletePath(3)
	s.AddPath(p)
	s.Clear()

	assert.Equal(t, []int{1, 0, 1, 0}, rec.counts)
	assert.Empty(t, s.Paths())
}

func TestSurfaceSavePNG(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)
	drag(s, fyne.NewPos(10, 10), fyne.NewPos(100, 50))
	s.DragEnd()

	s.Save(state.SaveRequest{ImageType: "png", Folder: "shots", Filename: "one", Transparent: true})

	require.Equal(t, []bool{true}, rec.ok)
	want := filepath.Join(s.saveDir, "shots", "one.png")
	assert.Equal(t, want, rec.saved[0])

	f, err := os.Open(want)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
	_, _, _, a := img.At(199, 99).RGBA()
	assert.Zero(t, a, "untouched pixels stay transparent")
}

func TestSurfaceSaveOpaqueJPG(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)

	img := s.Snapshot(state.SaveRequest{ImageType: "jpg", Transparent: true})
	r, g, b, a := img.At(5, 5).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0xffff, 0xffff, 0xffff}, [4]uint32{r, g, b, a}, "jpg is always painted on paper")
}

func TestSurfaceSavePDF(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)
	drag(s, fyne.NewPos(10, 10), fyne.NewPos(100, 50))
	s.DragEnd()

	s.Save(state.SaveRequest{ImageType: "pdf", Filename: "doc", IncludeImage: true})
	require.Equal(t, []bool{true}, rec.ok)

	data, err := os.ReadFile(rec.saved[0])
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestSurfaceSaveFailureReported(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)

	blocker := filepath.Join(s.saveDir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	s.Save(state.SaveRequest{ImageType: "png", Folder: "file", Filename: "x"})

	assert.Equal(t, []bool{false}, rec.ok)
	assert.Equal(t, []string{""}, rec.saved)
}

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestSurfaceOpenImagesAndCrop(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "bg.png"), 50, 50, color.NRGBA{B: 255, A: 255})
	require.NoError(t, s.OpenImages(LocalSourceImage{BackgroundImage: "bg.png", Directory: dir, Mode: state.ModeAspectFit}))
	assert.Equal(t, []int{0}, rec.counts)

	img := s.Snapshot(state.SaveRequest{ImageType: "png", IncludeImage: true, CropToBackgroundSize: true})
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
	_, _, b, _ := img.At(img.Bounds().Min.X+50, 50).RGBA()
	assert.Equal(t, uint32(0xffff), b)

	img = s.Snapshot(state.SaveRequest{ImageType: "png", IncludeImage: true, CropToImageSize: true})
	assert.Equal(t, image.Rect(0, 0, 50, 50), img.Bounds())
}

func TestSurfaceOpenImagesMissingFile(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)
	err := s.OpenImages(LocalSourceImage{BackgroundImage: "nope.png", Directory: t.TempDir()})
	assert.Error(t, err)
	assert.Empty(t, rec.counts)
}

func TestResolveDirectory(t *testing.T) {
	assert.Equal(t, os.TempDir(), ResolveDirectory(Temporary))
	assert.Equal(t, "/some/dir", ResolveDirectory("/some/dir"))
	assert.NotEmpty(t, ResolveDirectory(MainBundle))
}

func TestSurfaceSkipsPathsOutsideView(t *testing.T) {
	rec := &recorder{}
	s := newTestSurface(t, rec)

	s.AddPath(state.PathData{Drawer: "x", Path: state.Path{ID: 1, Color: "#000000FF", Width: 2, Points: []state.Point{{X: 500, Y: 500}, {X: 600, Y: 520}}}})
	assert.Empty(t, s.strokeObjects())

	s.AddPath(state.PathData{Drawer: "x", Path: state.Path{ID: 2, Color: "#000000FF", Width: 2, Points: []state.Point{{X: 10, Y: 10}, {X: 20, Y: 20}}}})
	assert.Len(t, s.strokeObjects(), 1)
}
