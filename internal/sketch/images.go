package sketch

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"SketchBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

type sourceImage struct {
	name string
	img  image.Image
	obj  *canvas.Image
}

type sourceImages struct {
	background *sourceImage
	foreground *sourceImage
	mask       *sourceImage
	mode       string
}

func (si *sourceImage) size() (float32, float32) {
	b := si.img.Bounds()
	return float32(b.Dx()), float32(b.Dy())
}

// area is where the image lands on a w x h surface for the given mode.
func (si *sourceImage) area(w, h float32, mode string) state.Area {
	iw, ih := si.size()
	return state.FillArea(iw, ih, w, h, mode)
}

func (si *sourceImage) object(size fyne.Size, mode string) []fyne.CanvasObject {
	if si == nil {
		return nil
	}
	a := si.area(size.Width, size.Height, mode)
	si.obj.Move(fyne.NewPos(a.X, a.Y))
	si.obj.Resize(fyne.NewSize(a.Width, a.Height))
	return []fyne.CanvasObject{si.obj}
}

// OpenImages loads the images described by src. Missing names are skipped;
// a name that cannot be decoded is an error and leaves the surface unchanged.
func (s *Surface) OpenImages(src LocalSourceImage) error {
	dir := ResolveDirectory(src.Directory)

	var loaded sourceImages
	var err error
	if loaded.background, err = loadSourceImage(dir, src.BackgroundImage); err != nil {
		return err
	}
	if loaded.foreground, err = loadSourceImage(dir, src.ForegroundImage); err != nil {
		return err
	}
	if loaded.mask, err = loadSourceImage(dir, src.Maskname); err != nil {
		return err
	}
	loaded.mode = src.Mode

	s.mu.Lock()
	s.images = loaded
	s.mu.Unlock()
	s.changed()
	return nil
}

func (s *Surface) loadedImages() sourceImages {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.images
}

func loadSourceImage(dir, name string) (*sourceImage, error) {
	if name == "" {
		return nil, nil
	}
	path := name
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, name)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	log.Printf("[SURFACE] Loaded %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())

	obj := canvas.NewImageFromImage(img)
	obj.FillMode = canvas.ImageFillStretch
	return &sourceImage{name: name, img: img, obj: obj}, nil
}
