package ui

import (
	"image/color"

	"SketchBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// touchable wraps a slot's content and reports taps, like a plain button
// without chrome.
type touchable struct {
	widget.BaseWidget
	content  fyne.CanvasObject
	OnTapped func()
}

var _ fyne.Tappable = (*touchable)(nil)

func newTouchable(content fyne.CanvasObject, tapped func()) *touchable {
	t := &touchable{content: content, OnTapped: tapped}
	t.ExtendBaseWidget(t)
	return t
}

func (t *touchable) CreateRenderer() fyne.WidgetRenderer {
	if t.content == nil {
		return widget.NewSimpleRenderer(container.NewStack())
	}
	return widget.NewSimpleRenderer(t.content)
}

func (t *touchable) Tapped(_ *fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped()
	}
}

const swatchSize = 28

// colorSwatch draws a colour token as a filled square. Selected swatches get
// a thicker border.
type colorSwatch struct {
	widget.BaseWidget
	Token    string
	Selected bool
}

func newColorSwatch(token string, selected bool) *colorSwatch {
	s := &colorSwatch{Token: token, Selected: selected}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(state.TokenColor(s.Token))
	rect.SetMinSize(fyne.NewSize(swatchSize, swatchSize))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	if s.Selected {
		border.StrokeColor = color.Black
		border.StrokeWidth = 3
	}

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

// SwatchComponent renders an unselected swatch. It is the stock
// Options.StrokeComponent.
func SwatchComponent(c string) fyne.CanvasObject {
	return newColorSwatch(c, false)
}

// SelectedSwatchComponent renders the active swatch with its alpha applied. It
// is the stock Options.StrokeSelectedComponent.
func SelectedSwatchComponent(token string, _ int, _ bool) fyne.CanvasObject {
	return newColorSwatch(token, true)
}
