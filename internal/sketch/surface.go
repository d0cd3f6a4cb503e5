package sketch

import (
	"context"
	"image/color"
	"sync"

	"SketchBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Relay receives a copy of every saved image.
type Relay interface {
	Send(ctx context.Context, name string, data []byte) error
}

// paperColor fills the surface and is what eraser strokes paint with.
var paperColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Surface is a Fyne widget implementing Canvas. Strokes are collected from
// drag gestures and rendered as line segments.
type Surface struct {
	widget.BaseWidget

	store   *state.PathStore
	events  Events
	saveDir string
	relay   Relay

	mu      sync.RWMutex
	props   Props
	current *state.Path
	drawing bool
	images  sourceImages
}

var _ fyne.Widget = (*Surface)(nil)
var _ fyne.Draggable = (*Surface)(nil)
var _ fyne.Tappable = (*Surface)(nil)
var _ Canvas = (*Surface)(nil)

// NewSurface creates a surface that saves below saveDir.
func NewSurface(saveDir string, events Events) *Surface {
	s := &Surface{
		store:   state.NewPathStore(),
		events:  events,
		saveDir: saveDir,
	}
	s.ExtendBaseWidget(s)
	return s
}

// SetRelay forwards saved PNGs to r. A nil relay disables forwarding.
func (s *Surface) SetRelay(r Relay) {
	s.relay = r
}

func (s *Surface) SetProps(p Props) {
	s.mu.Lock()
	s.props = p
	s.mu.Unlock()
}

func (s *Surface) Props() Props {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.props
}

// Paths returns every stored path in drawing order.
func (s *Surface) Paths() []state.PathData {
	return s.store.All()
}

func (s *Surface) Clear() {
	s.store.Clear()
	s.changed()
}

func (s *Surface) Undo() int {
	id := s.store.UndoBy(s.Props().User)
	if id >= 0 {
		s.changed()
	}
	return id
}

func (s *Surface) AddPath(data state.PathData) {
	if s.store.Add(data) {
		s.changed()
	}
}

func (s *Surface) DeletePath(id int) {
	if s.store.Remove(id) {
		s.changed()
	}
}

func (s *Surface) changed() {
	s.Refresh()
	if s.events.OnPathsChange != nil {
		s.events.OnPathsChange(s.store.Len())
	}
}

func (s *Surface) Dragged(e *fyne.DragEvent) {
	pos := state.Point{X: e.Position.X, Y: e.Position.Y}

	s.mu.Lock()
	if !s.drawing {
		start := state.Point{X: e.Position.X - e.Dragged.DX, Y: e.Position.Y - e.Dragged.DY}
		s.drawing = true
		s.current = s.newPathLocked(start)
		s.current.Points = append(s.current.Points, pos)
		s.mu.Unlock()

		if s.events.OnStrokeStart != nil {
			s.events.OnStrokeStart(start.X, start.Y)
		}
	} else {
		s.current.Points = append(s.current.Points, pos)
		s.mu.Unlock()
	}

	if s.events.OnStrokeChanged != nil {
		s.events.OnStrokeChanged(pos.X, pos.Y)
	}
	s.Refresh()
}

func (s *Surface) DragEnd() {
	s.mu.Lock()
	if !s.drawing || s.current == nil {
		s.mu.Unlock()
		return
	}
	data := s.finishLocked()
	s.mu.Unlock()

	s.commit(data)
}

// Tapped draws a single dot.
func (s *Surface) Tapped(e *fyne.PointEvent) {
	pos := state.Point{X: e.Position.X, Y: e.Position.Y}

	s.mu.Lock()
	if s.drawing {
		s.mu.Unlock()
		return
	}
	s.current = s.newPathLocked(pos)
	data := s.finishLocked()
	s.mu.Unlock()

	if s.events.OnStrokeStart != nil {
		s.events.OnStrokeStart(pos.X, pos.Y)
	}
	s.commit(data)
}

func (s *Surface) newPathLocked(start state.Point) *state.Path {
	return &state.Path{
		ID:     s.store.NextID(),
		Color:  s.props.StrokeColor,
		Width:  float32(s.props.StrokeWidth),
		Points: []state.Point{start},
	}
}

func (s *Surface) finishLocked() state.PathData {
	size := s.Size()
	data := state.PathData{
		Drawer: s.props.User,
		Size:   state.Size{Width: size.Width, Height: size.Height},
		Path:   *s.current,
	}
	s.current = nil
	s.drawing = false
	return data
}

func (s *Surface) commit(data state.PathData) {
	s.store.Add(data)
	s.Refresh()
	if s.events.OnStrokeEnd != nil {
		s.events.OnStrokeEnd(data)
	}
	if s.events.OnPathsChange != nil {
		s.events.OnPathsChange(s.store.Len())
	}
}

func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	r := &surfaceRenderer{surface: s}
	r.paper = canvas.NewRectangle(paperColor)
	return r
}

type surfaceRenderer struct {
	surface *Surface
	paper   *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	if r.objects == nil {
		r.rebuild(r.surface.Size())
	}
	return r.objects
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.rebuild(size)
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *surfaceRenderer) Refresh() {
	r.rebuild(r.surface.Size())
	canvas.Refresh(r.surface)
}

func (r *surfaceRenderer) Destroy() {}

func (r *surfaceRenderer) rebuild(size fyne.Size) {
	r.paper.Resize(size)
	objects := []fyne.CanvasObject{r.paper}

	images := r.surface.loadedImages()
	objects = append(objects, images.background.object(size, images.mode)...)
	objects = append(objects, r.surface.strokeObjects()...)
	objects = append(objects, images.foreground.object(size, images.mode)...)
	r.objects = objects
}

// strokeObjects returns every stored path plus the one in progress as
// drawable objects, in drawing order.
func (s *Surface) strokeObjects() []fyne.CanvasObject {
	paths := s.store.All()

	s.mu.RLock()
	var current *state.Path
	if s.drawing && s.current != nil {
		p := *s.current
		p.Points = append([]state.Point(nil), s.current.Points...)
		current = &p
	}
	s.mu.RUnlock()

	size := s.canvasSize()
	view := state.Area{Width: size.Width, Height: size.Height}

	var objects []fyne.CanvasObject
	for _, d := range paths {
		if !visible(d.Path, view) {
			continue
		}
		objects = append(objects, pathObjects(d.Path)...)
	}
	if current != nil {
		objects = append(objects, pathObjects(*current)...)
	}
	return objects
}

// visible reports whether any part of p, including its stroke width, falls
// inside view. Paths received from larger surfaces may lie entirely outside.
func visible(p state.Path, view state.Area) bool {
	b := state.Bounds(p.Points)
	pad := p.Width/2 + 1
	b = state.Area{X: b.X - pad, Y: b.Y - pad, Width: b.Width + 2*pad, Height: b.Height + 2*pad}
	return state.Intersect(b, view).Width > 0
}

func pathObjects(p state.Path) []fyne.CanvasObject {
	c := color.Color(state.TokenColor(p.Color))
	if p.Color == state.EraseColor {
		c = paperColor
	}

	switch len(p.Points) {
	case 0:
		return nil
	case 1:
		dot := canvas.NewCircle(c)
		r := p.Width / 2
		dot.Move(fyne.NewPos(p.Points[0].X-r, p.Points[0].Y-r))
		dot.Resize(fyne.NewSize(p.Width, p.Width))
		return []fyne.CanvasObject{dot}
	}

	objects := make([]fyne.CanvasObject, 0, len(p.Points)-1)
	for i := 1; i < len(p.Points); i++ {
		segment := canvas.NewLine(c)
		segment.StrokeWidth = p.Width
		segment.Position1 = fyne.NewPos(p.Points[i-1].X, p.Points[i-1].Y)
		segment.Position2 = fyne.NewPos(p.Points[i].X, p.Points[i].Y)
		objects = append(objects, segment)
	}
	return objects
}
