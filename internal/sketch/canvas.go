// Package sketch holds the contract between the drawing toolbar and the
// surface that actually renders strokes, plus a Fyne implementation of it.
package sketch

import (
	"os"
	"path/filepath"

	"SketchBoard/internal/state"
)

// Canvas is the imperative surface driven by the toolbar.
type Canvas interface {
	Clear()
	// Undo removes the local user's most recent path and returns its id,
	// or -1 when there is nothing to undo.
	Undo() int
	AddPath(data state.PathData)
	DeletePath(id int)
	Save(req state.SaveRequest)
	SetProps(p Props)
}

// Props is the state the toolbar pushes down to the surface on every change.
type Props struct {
	StrokeColor             string
	StrokeWidth             float64
	User                    string
	PermissionDialogTitle   string
	PermissionDialogMessage string
}

// Events are the callbacks a surface reports through. Nil entries are skipped.
type Events struct {
	OnStrokeStart   func(x, y float32)
	OnStrokeChanged func(x, y float32)
	OnStrokeEnd     func(data state.PathData)
	OnSketchSaved   func(success bool, path string)
	OnPathsChange   func(count int)
}

// LocalSourceImage describes images pre-seeded behind, above or masking the strokes.
type LocalSourceImage struct {
	BackgroundImage string `toml:"background_image"`
	ForegroundImage string `toml:"foreground_image"`
	Directory       string `toml:"directory"`
	Mode            string `toml:"mode"`
	Maskname        string `toml:"maskname"`
}

// Directory scopes accepted in LocalSourceImage.Directory.
const (
	MainBundle = "MainBundle"
	Document   = "Document"
	Library    = "Library"
	Caches     = "Caches"
	Temporary  = "Temporary"
	Roaming    = "Roaming"
	Local      = "Local"
)

// ResolveDirectory maps a directory scope to a filesystem path. Anything that
// is not a known scope is returned as is.
func ResolveDirectory(dir string) string {
	switch dir {
	case MainBundle:
		if exe, err := os.Executable(); err == nil {
			return filepath.Dir(exe)
		}
	case Document:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Documents")
		}
	case Library, Roaming:
		if cfg, err := os.UserConfigDir(); err == nil {
			return cfg
		}
	case Caches, Local:
		if cache, err := os.UserCacheDir(); err == nil {
			return cache
		}
	case Temporary:
		return os.TempDir()
	default:
		return dir
	}
	return ""
}
