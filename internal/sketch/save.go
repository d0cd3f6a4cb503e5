package sketch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"time"

	"SketchBoard/internal/export"
	"SketchBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/software"
	"fyne.io/fyne/v2/theme"
	xdraw "golang.org/x/image/draw"
)

const relayTimeout = 10 * time.Second

// Save writes the sketch to <saveDir>/<folder>/<filename>.<ext> and reports
// the outcome through OnSketchSaved.
func (s *Surface) Save(req state.SaveRequest) {
	path, err := s.save(req)
	if err != nil {
		log.Printf("[SURFACE] Save failed: %v", err)
		s.saved(false, "")
		return
	}
	log.Printf("[SURFACE] Saved %s", path)
	s.saved(true, path)
}

func (s *Surface) saved(success bool, path string) {
	if s.events.OnSketchSaved != nil {
		s.events.OnSketchSaved(success, path)
	}
}

func (s *Surface) save(req state.SaveRequest) (string, error) {
	dir := filepath.Join(s.saveDir, req.Folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create folder %s: %w", dir, err)
	}
	path := filepath.Join(dir, req.Filename+export.Extension(req.ImageType))

	var buf bytes.Buffer
	if export.Normalize(req.ImageType) == export.TypePDF {
		if err := s.writePDF(&buf, req); err != nil {
			return "", err
		}
	} else {
		img := s.Snapshot(req)
		if err := export.Raster(&buf, req.ImageType, img); err != nil {
			return "", err
		}
		s.forward(req.Filename, img)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// forward hands a PNG copy of img to the relay without blocking the caller.
func (s *Surface) forward(name string, img image.Image) {
	if s.relay == nil {
		return
	}
	var buf bytes.Buffer
	if err := export.Raster(&buf, export.TypePNG, img); err != nil {
		log.Printf("[SURFACE] Relay encode failed: %v", err)
		return
	}
	go func(r Relay, data []byte) {
		ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
		defer cancel()
		if err := r.Send(ctx, name+export.Extension(export.TypePNG), data); err != nil {
			log.Printf("[SURFACE] Relay failed: %v", err)
		}
	}(s.relay, buf.Bytes())
}

func (s *Surface) canvasSize() fyne.Size {
	size := s.Size()
	if size.Width <= 0 || size.Height <= 0 {
		size = s.MinSize()
	}
	return size
}

// Snapshot renders the sketch as an image according to req: optional paper
// fill, background and foreground images, the strokes clipped by the mask and
// finally a crop to the background or foreground rectangle.
func (s *Surface) Snapshot(req state.SaveRequest) image.Image {
	size := s.canvasSize()
	images := s.loadedImages()

	w, h := size.Width, size.Height
	cropToImage := req.CropToImageSize && images.background != nil
	if cropToImage {
		w, h = images.background.size()
	}
	bounds := image.Rect(0, 0, int(w), int(h))
	dst := image.NewNRGBA(bounds)

	transparent := req.Transparent && export.Normalize(req.ImageType) == export.TypePNG
	if !transparent {
		draw.Draw(dst, bounds, image.NewUniform(paperColor), image.Point{}, draw.Src)
	}

	if req.IncludeImage && images.background != nil {
		placeImage(dst, images.background.img, images.background.area(w, h, state.ModeAspectFit))
	}

	strokes := s.renderStrokes(size)
	strokeArea := state.Area{Width: size.Width, Height: size.Height}
	if cropToImage {
		strokeArea = state.FillArea(size.Width, size.Height, w, h, state.ModeAspectFill)
	}
	if images.mask != nil {
		layer := image.NewNRGBA(bounds)
		placeImage(layer, strokes, strokeArea)
		mask := image.NewNRGBA(bounds)
		placeImage(mask, images.mask.img, images.mask.area(w, h, state.ModeAspectFit))
		draw.DrawMask(dst, bounds, layer, image.Point{}, mask, image.Point{}, draw.Over)
	} else {
		placeImage(dst, strokes, strokeArea)
	}

	if req.IncludeImage && images.foreground != nil {
		placeImage(dst, images.foreground.img, images.foreground.area(w, h, state.ModeAspectFit))
	}

	var crop *sourceImage
	if req.CropToBackgroundSize && images.background != nil {
		crop = images.background
	} else if req.CropToForegroundSize && images.foreground != nil {
		crop = images.foreground
	}
	if crop != nil {
		a := crop.area(w, h, state.ModeAspectFit)
		r := image.Rect(int(a.X), int(a.Y), int(a.X+a.Width+0.5), int(a.Y+a.Height+0.5)).Intersect(bounds)
		return dst.SubImage(r)
	}
	return dst
}

// renderStrokes rasterizes the strokes alone on a transparent layer.
func (s *Surface) renderStrokes(size fyne.Size) image.Image {
	sizer := canvas.NewRectangle(color.Transparent)
	sizer.SetMinSize(size)
	content := container.NewStack(sizer, container.NewWithoutLayout(s.strokeObjects()...))
	content.Resize(size)

	current := theme.DefaultTheme()
	var settings fyne.Settings
	if app := fyne.CurrentApp(); app != nil {
		settings = app.Settings()
		current = settings.Theme()
	}
	img := software.Render(content, &exportTheme{Theme: current})
	if settings != nil {
		// Render installs the theme it is given on the running app.
		settings.SetTheme(current)
	}
	return img
}

func placeImage(dst draw.Image, src image.Image, a state.Area) {
	r := image.Rect(int(a.X), int(a.Y), int(a.X+a.Width+0.5), int(a.Y+a.Height+0.5))
	xdraw.CatmullRom.Scale(dst, r, src, src.Bounds(), xdraw.Over, nil)
}

func (s *Surface) writePDF(buf *bytes.Buffer, req state.SaveRequest) error {
	size := s.canvasSize()
	images := s.loadedImages()

	var below, above []export.Layer
	if req.IncludeImage && images.background != nil {
		below = append(below, export.Layer{Image: images.background.img, Area: images.background.area(size.Width, size.Height, images.mode)})
	}
	if req.IncludeImage && images.foreground != nil {
		above = append(above, export.Layer{Image: images.foreground.img, Area: images.foreground.area(size.Width, size.Height, images.mode)})
	}
	return export.PDF(buf, state.Size{Width: size.Width, Height: size.Height}, s.store.All(), below, above, !req.Transparent)
}

// exportTheme renders on a transparent background so strokes can be
// composited over the paper and images.
type exportTheme struct {
	fyne.Theme
}

func (t *exportTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return color.Transparent
	}
	return t.Theme.Color(name, variant)
}
