package ui

import (
	"fmt"
	"image"
	"image/color"

	"SketchBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const pickerSize = 180

// huePlane is the hue/saturation square of the colour picker. Hue runs left to
// right over 0..360 degrees, saturation from 1 at the top to 0 at the bottom.
type huePlane struct {
	widget.BaseWidget
	OnPicked func(rgb string)

	cache *image.NRGBA
}

var _ fyne.Tappable = (*huePlane)(nil)
var _ fyne.Draggable = (*huePlane)(nil)

func newHuePlane(picked func(rgb string)) *huePlane {
	p := &huePlane{OnPicked: picked}
	p.ExtendBaseWidget(p)
	return p
}

func (p *huePlane) CreateRenderer() fyne.WidgetRenderer {
	raster := canvas.NewRaster(p.draw)
	raster.SetMinSize(fyne.NewSize(pickerSize, pickerSize))
	return widget.NewSimpleRenderer(raster)
}

func (p *huePlane) draw(w, h int) image.Image {
	if p.cache != nil && p.cache.Bounds().Dx() == w && p.cache.Bounds().Dy() == h {
		return p.cache
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hue, sat := planeAt(float32(x), float32(y), float32(w), float32(h))
			img.SetNRGBA(x, y, state.TokenColor(state.HueColor(hue, sat)))
		}
	}
	p.cache = img
	return img
}

// planeAt maps a position inside a w x h plane to hue and saturation.
func planeAt(x, y, w, h float32) (hue, sat float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	fx := min(max(x/w, 0), 1)
	fy := min(max(y/h, 0), 1)
	return float64(fx) * 360, 1 - float64(fy)
}

func (p *huePlane) pick(pos fyne.Position) {
	size := p.Size()
	hue, sat := planeAt(pos.X, pos.Y, size.Width, size.Height)
	if p.OnPicked != nil {
		p.OnPicked(state.HueColor(hue, sat))
	}
}

func (p *huePlane) Tapped(ev *fyne.PointEvent) { p.pick(ev.Position) }

func (p *huePlane) Dragged(ev *fyne.DragEvent) { p.pick(ev.Position) }

func (p *huePlane) DragEnd() {}

// picker is the overlay shown by the Show/Hide button: the hue plane, a
// preview of the picked colour and the channel slider.
type picker struct {
	plane   *huePlane
	preview *canvas.Rectangle
	label   *widget.Label
	channel *widget.Slider
	panel   *fyne.Container
}

func newPicker(onPick func(rgb string), onChannel func(v int)) *picker {
	p := &picker{
		plane:   newHuePlane(onPick),
		preview: canvas.NewRectangle(color.Transparent),
		label:   widget.NewLabel(""),
		channel: widget.NewSlider(state.MinChannel, state.MaxChannel),
	}
	p.preview.SetMinSize(fyne.NewSize(swatchSize, swatchSize))
	p.channel.Step = 1
	p.channel.SetValue(state.MaxChannel)
	p.channel.OnChanged = func(v float64) { onChannel(int(v)) }

	bg := canvas.NewRectangle(color.NRGBA{R: 173, G: 216, B: 230, A: 255})
	bg.CornerRadius = 10
	p.panel = container.NewStack(bg, container.NewPadded(container.NewVBox(
		p.plane,
		container.NewHBox(p.preview, p.label),
		p.channel,
	)))
	p.panel.Hide()
	return p
}

// update syncs the overlay with the toolbar without firing callbacks.
func (p *picker) update(t *state.Toolbar) {
	if t.PickerVisible() {
		p.panel.Show()
	} else {
		p.panel.Hide()
	}
	p.preview.FillColor = state.TokenColor(t.StrokeColor())
	p.preview.Refresh()
	p.label.SetText(fmt.Sprintf("%s  %d", t.StrokeColor(), t.Channel()))

	if int(p.channel.Value) != t.Channel() {
		onChanged := p.channel.OnChanged
		p.channel.OnChanged = nil
		p.channel.SetValue(float64(t.Channel()))
		p.channel.OnChanged = onChanged
	}
}
