package ui

import (
	"context"
	"fmt"
	"log"

	"SketchBoard/internal/config"
	"SketchBoard/internal/permission"
	"SketchBoard/internal/sketch"
	"SketchBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewOptions builds the stock toolbar for cfg, asking permissions and showing
// confirmations on w.
func NewOptions(cfg config.Config, w fyne.Window) Options {
	return Options{
		ContainerMinSize: fyne.NewSize(cfg.Window.Width/2, cfg.Window.Height/2),
		CanvasMinSize:    fyne.NewSize(cfg.Window.CanvasWidth, cfg.Window.CanvasHeight),

		CloseComponent: widget.NewIcon(theme.CancelIcon()),
		UndoComponent:  widget.NewIcon(theme.ContentUndoIcon()),
		ClearComponent: widget.NewIcon(theme.DeleteIcon()),
		SaveComponent:  widget.NewIcon(theme.DocumentSaveIcon()),

		StrokeComponent:         SwatchComponent,
		StrokeSelectedComponent: SelectedSwatchComponent,
		StrokeWidthComponent: func(width float64) fyne.CanvasObject {
			return widget.NewLabel(fmt.Sprintf("%.1f", width))
		},

		Toolbar:                 cfg.ToolbarConfig(),
		SavePreference:          cfg.SavePreference(),
		PermissionDialogTitle:   cfg.Permission.Title,
		PermissionDialogMessage: cfg.Permission.Message,
		LocalSourceImage:        cfg.Image,
		User:                    cfg.User,

		Permission: permission.All(permission.Directory{Path: cfg.SaveDir}, &permission.Dialog{Window: w}),
		Notifier:   DialogNotifier{Window: w},
	}
}

// RunApp opens the drawing window and blocks until it is closed. A non-nil
// relay receives a copy of every raster save.
func RunApp(cfg config.Config, relay sketch.Relay) {
	myApp := app.NewWithID("io.sketchboard")
	myWindow := myApp.NewWindow("SketchBoard")
	myWindow.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	surface := sketch.NewSurface(cfg.SaveDir, sketch.Events{
		OnStrokeEnd: func(d state.PathData) {
			log.Printf("[SURFACE] Stroke %d by %s with %d points", d.Path.ID, d.Drawer, len(d.Path.Points))
		},
		OnSketchSaved: func(success bool, path string) {
			log.Printf("[SAVE] Sketch saved: %v %s", success, path)
		},
		OnPathsChange: func(count int) {
			log.Printf("[SURFACE] %d paths", count)
		},
	})
	if relay != nil {
		surface.SetRelay(relay)
	}

	opts := NewOptions(cfg, myWindow)
	opts.OnClosePressed = myWindow.Close
	opts.OnUndoPressed = func(id int) {
		log.Printf("[SURFACE] Undo removed path %d", id)
	}
	drawing := NewDrawingCanvas(surface, opts)
	myWindow.SetContent(drawing)

	go func() {
		if err := drawing.Mount(context.Background()); err != nil {
			log.Printf("[MOUNT] %v", err)
		}
	}()
	myWindow.ShowAndRun()
}
