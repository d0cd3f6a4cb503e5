// Package ui holds the drawing toolbar that drives a sketch surface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"SketchBoard/internal/permission"
	"SketchBoard/internal/sketch"
	"SketchBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var (
	// ErrPermissionDenied aborts a save when storage access was refused.
	ErrPermissionDenied = errors.New("storage permission denied")
	// ErrNoSavePreference is returned after a default save because the
	// confirmation reads folder and filename from the preference supplier.
	ErrNoSavePreference = errors.New("no save preference to describe the saved file")
)

// SketchView is a surface the toolbar can both drive and lay out.
type SketchView interface {
	sketch.Canvas
	fyne.CanvasObject
}

type imageOpener interface {
	OpenImages(src sketch.LocalSourceImage) error
}

// Options configure a DrawingCanvas. Nil slots skip their control.
type Options struct {
	ContainerMinSize fyne.Size
	CanvasMinSize    fyne.Size

	CloseComponent fyne.CanvasObject
	EraseComponent fyne.CanvasObject
	UndoComponent  fyne.CanvasObject
	ClearComponent fyne.CanvasObject
	SaveComponent  fyne.CanvasObject

	StrokeComponent         func(color string) fyne.CanvasObject
	StrokeSelectedComponent func(token string, index int, changed bool) fyne.CanvasObject
	// StrokeWidthComponent enables the width slider and renders next to it.
	StrokeWidthComponent func(width float64) fyne.CanvasObject

	Toolbar                 state.ToolbarConfig
	SavePreference          func() state.SavePreference
	PermissionDialogTitle   string
	PermissionDialogMessage string
	LocalSourceImage        *sketch.LocalSourceImage
	User                    string

	Permission permission.Requester
	Notifier   Notifier
	Now        func() time.Time

	OnClosePressed func()
	OnUndoPressed  func(id int)
	OnClearPressed func()
}

// DrawingCanvas is the toolbar plus the surface it drives. Every state change
// re-renders the toolbar and pushes the composed stroke colour and width down
// to the surface.
type DrawingCanvas struct {
	widget.BaseWidget

	opts    Options
	toolbar *state.Toolbar
	canvas  SketchView

	swatches     *fyne.Container
	eraseBtn     *widget.Button
	brushBtn     *widget.Button
	pickerBtn    *widget.Button
	widthSlider  *widget.Slider
	widthPreview *fyne.Container
	picker       *picker
	content      fyne.CanvasObject
}

func NewDrawingCanvas(view SketchView, opts Options) *DrawingCanvas {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	d := &DrawingCanvas{
		opts:    opts,
		toolbar: state.NewToolbar(opts.Toolbar),
		canvas:  view,
	}
	d.ExtendBaseWidget(d)
	d.build()
	d.render()
	return d
}

// Toolbar exposes the controller state, mainly for embedding code that wants
// to read the active colour.
func (d *DrawingCanvas) Toolbar() *state.Toolbar { return d.toolbar }

func (d *DrawingCanvas) build() {
	d.swatches = container.NewHBox()

	d.eraseBtn = widget.NewButton("Eraser", d.erase)
	d.brushBtn = widget.NewButton("Brush", d.brush)
	left := container.NewHBox()
	if d.opts.CloseComponent != nil {
		left.Add(newTouchable(d.opts.CloseComponent, d.closePressed))
	}
	left.Add(d.eraseBtn)
	left.Add(d.brushBtn)
	if d.opts.EraseComponent != nil {
		left.Add(newTouchable(d.opts.EraseComponent, d.toggleErase))
	}

	right := container.NewHBox()
	if d.opts.StrokeWidthComponent != nil {
		cfg := d.opts.Toolbar
		d.widthSlider = widget.NewSlider(cfg.MinStrokeWidth, cfg.MaxStrokeWidth)
		d.widthSlider.Step = cfg.StrokeWidthStep
		d.widthSlider.SetValue(d.toolbar.StrokeWidth())
		d.widthSlider.OnChanged = d.setStrokeWidth
		d.widthPreview = container.NewStack()
		right.Add(container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), d.widthSlider))
		right.Add(d.widthPreview)
	}
	d.pickerBtn = widget.NewButton("Show", d.togglePicker)
	right.Add(d.pickerBtn)
	if d.opts.UndoComponent != nil {
		right.Add(newTouchable(d.opts.UndoComponent, d.undoPressed))
	}
	if d.opts.ClearComponent != nil {
		right.Add(newTouchable(d.opts.ClearComponent, d.clearPressed))
	}
	if d.opts.SaveComponent != nil {
		right.Add(newTouchable(d.opts.SaveComponent, d.savePressed))
	}

	bar := container.NewHBox(
		left,
		widget.NewSeparator(),
		container.NewHScroll(d.swatches),
		layout.NewSpacer(),
		right,
	)

	d.picker = newPicker(d.pick, d.setChannel)
	overlay := container.NewVBox(container.NewHBox(layout.NewSpacer(), d.picker.panel))

	canvasSizer := canvas.NewRectangle(color.Transparent)
	canvasSizer.SetMinSize(d.opts.CanvasMinSize)
	board := container.NewStack(canvasSizer, d.canvas, overlay)

	containerSizer := canvas.NewRectangle(color.Transparent)
	containerSizer.SetMinSize(d.opts.ContainerMinSize)
	d.content = container.NewStack(containerSizer, container.NewBorder(bar, nil, nil, nil, board))
}

func (d *DrawingCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.content)
}

// render syncs every control with the toolbar state, pushes the surface props
// and ends the render pass.
func (d *DrawingCanvas) render() {
	t := d.toolbar

	d.renderSwatches()

	if t.CanErase() {
		d.eraseBtn.Enable()
	} else {
		d.eraseBtn.Disable()
	}
	if t.CanBrush() {
		d.brushBtn.Enable()
	} else {
		d.brushBtn.Disable()
	}

	if t.PickerVisible() {
		d.pickerBtn.SetText("Hide")
	} else {
		d.pickerBtn.SetText("Show")
	}
	d.picker.update(t)

	if d.widthSlider != nil {
		if d.widthSlider.Value != t.StrokeWidth() {
			d.widthSlider.OnChanged = nil
			d.widthSlider.SetValue(t.StrokeWidth())
			d.widthSlider.OnChanged = d.setStrokeWidth
		}
		d.widthPreview.Objects = nil
		if preview := d.opts.StrokeWidthComponent(t.StrokeWidth()); preview != nil {
			d.widthPreview.Objects = []fyne.CanvasObject{preview}
		}
		d.widthPreview.Refresh()
	}

	d.canvas.SetProps(sketch.Props{
		StrokeColor:             t.StrokeColor(),
		StrokeWidth:             t.StrokeWidth(),
		User:                    d.opts.User,
		PermissionDialogTitle:   d.opts.PermissionDialogTitle,
		PermissionDialogMessage: d.opts.PermissionDialogMessage,
	})
	t.Rendered()
}

func (d *DrawingCanvas) renderSwatches() {
	t := d.toolbar
	items := make([]fyne.CanvasObject, 0, len(t.Swatches()))
	for i, sw := range t.Swatches() {
		var content fyne.CanvasObject
		if t.IsActive(sw.Color) {
			if d.opts.StrokeSelectedComponent != nil {
				content = d.opts.StrokeSelectedComponent(t.SwatchToken(sw.Color), i, t.ColorChanged())
			}
		} else if d.opts.StrokeComponent != nil {
			content = d.opts.StrokeComponent(sw.Color)
		}
		c := sw.Color
		items = append(items, newTouchable(content, func() { d.tapSwatch(c) }))
	}
	d.swatches.Objects = items
	d.swatches.Refresh()
}

func (d *DrawingCanvas) tapSwatch(c string) {
	d.toolbar.TapSwatch(c)
	d.render()
}

func (d *DrawingCanvas) erase() {
	d.toolbar.Erase()
	d.render()
}

func (d *DrawingCanvas) brush() {
	d.toolbar.Brush()
	d.render()
}

func (d *DrawingCanvas) toggleErase() {
	if d.toolbar.CanErase() {
		d.erase()
	} else {
		d.brush()
	}
}

func (d *DrawingCanvas) setStrokeWidth(v float64) {
	d.toolbar.SetStrokeWidth(v)
	d.render()
}

func (d *DrawingCanvas) togglePicker() {
	d.toolbar.TogglePicker()
	d.render()
}

func (d *DrawingCanvas) pick(rgb string) {
	d.toolbar.SetPickerColor(rgb)
	d.render()
}

func (d *DrawingCanvas) setChannel(v int) {
	d.toolbar.SetChannel(v)
	d.render()
}

// NextStrokeWidth steps the width for callers without a slider.
func (d *DrawingCanvas) NextStrokeWidth() float64 {
	w := d.toolbar.NextStrokeWidth()
	d.render()
	return w
}

func (d *DrawingCanvas) Clear() { d.canvas.Clear() }

func (d *DrawingCanvas) Undo() int { return d.canvas.Undo() }

func (d *DrawingCanvas) AddPath(data state.PathData) { d.canvas.AddPath(data) }

func (d *DrawingCanvas) DeletePath(id int) { d.canvas.DeletePath(id) }

func (d *DrawingCanvas) closePressed() {
	if d.opts.OnClosePressed != nil {
		d.opts.OnClosePressed()
	}
}

func (d *DrawingCanvas) undoPressed() {
	id := d.Undo()
	if d.opts.OnUndoPressed != nil {
		d.opts.OnUndoPressed(id)
	}
}

func (d *DrawingCanvas) clearPressed() {
	d.Clear()
	if d.opts.OnClearPressed != nil {
		d.opts.OnClearPressed()
	}
}

func (d *DrawingCanvas) savePressed() {
	go func() {
		if err := d.Save(context.Background()); err != nil {
			log.Printf("[SAVE] %v", err)
		}
	}()
}

func (d *DrawingCanvas) requestPermission(ctx context.Context) (bool, error) {
	if d.opts.Permission == nil {
		return true, nil
	}
	return d.opts.Permission.Request(ctx, d.opts.PermissionDialogTitle, d.opts.PermissionDialogMessage)
}

// Mount asks for storage permission and loads the configured source images.
// A refused permission is only logged; the save path asks again.
func (d *DrawingCanvas) Mount(ctx context.Context) error {
	ok, err := d.requestPermission(ctx)
	switch {
	case err != nil:
		log.Printf("[PERMISSION] Request failed: %v", err)
	case !ok:
		log.Printf("[PERMISSION] Storage permission denied")
	}

	if d.opts.LocalSourceImage == nil {
		return nil
	}
	opener, ok := d.canvas.(imageOpener)
	if !ok {
		log.Printf("[MOUNT] Surface cannot open source images")
		return nil
	}
	fyne.DoAndWait(func() {
		err = opener.OpenImages(*d.opts.LocalSourceImage)
	})
	if err != nil {
		return fmt.Errorf("open source images: %w", err)
	}
	return nil
}

// Save asks for permission, hands the save to the surface and shows a
// confirmation. It blocks on the permission request, so it must not run on
// the UI goroutine.
func (d *DrawingCanvas) Save(ctx context.Context) error {
	ok, err := d.requestPermission(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	if !ok {
		return ErrPermissionDenied
	}

	var req state.SaveRequest
	if d.opts.SavePreference != nil {
		req = d.opts.SavePreference().Request()
	} else {
		req = state.DefaultSaveRequest(d.opts.Now())
	}
	fyne.DoAndWait(func() {
		d.canvas.Save(req)
	})
	log.Printf("[SAVE] Dispatched %s to folder %q as %s", req.Filename, req.Folder, req.ImageType)

	if d.opts.SavePreference == nil {
		return ErrNoSavePreference
	}
	p := d.opts.SavePreference()
	if d.opts.Notifier != nil {
		d.opts.Notifier.Notify("Saved", fmt.Sprintf("Folder : %s \nFileName : %s", p.Folder, p.Filename))
	}
	return nil
}
