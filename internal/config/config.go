// Package config loads the toolbar and application settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"SketchBoard/internal/sketch"
	"SketchBoard/internal/state"

	"github.com/BurntSushi/toml"
)

// Environment overrides applied after the file is decoded.
const (
	EnvUser    = "SKETCHBOARD_USER"
	EnvSaveDir = "SKETCHBOARD_SAVE_DIR"
	EnvRelay   = "SKETCHBOARD_RELAY"
)

// RelayDiscover asks the app to find a receiver over mDNS.
const RelayDiscover = "discover"

type Config struct {
	User        string `toml:"user"`
	SaveDir     string `toml:"save_dir"`
	Relay       string `toml:"relay"`
	ReceivePort int    `toml:"receive_port"`

	Window     Window                   `toml:"window"`
	Toolbar    Toolbar                  `toml:"toolbar"`
	Permission Permission               `toml:"permission"`
	Image      *sketch.LocalSourceImage `toml:"image"`
	Save       *state.SavePreference    `toml:"save"`
}

type Window struct {
	Width        float32 `toml:"width"`
	Height       float32 `toml:"height"`
	CanvasWidth  float32 `toml:"canvas_width"`
	CanvasHeight float32 `toml:"canvas_height"`
}

type Toolbar struct {
	Swatches           []state.Swatch `toml:"swatches"`
	AlphaRamp          []string       `toml:"alpha_ramp"`
	DefaultStrokeIndex int            `toml:"default_stroke_index"`
	DefaultStrokeWidth float64        `toml:"default_stroke_width"`
	MinStrokeWidth     float64        `toml:"min_stroke_width"`
	MaxStrokeWidth     float64        `toml:"max_stroke_width"`
	StrokeWidthStep    float64        `toml:"stroke_width_step"`
}

type Permission struct {
	Title   string `toml:"title"`
	Message string `toml:"message"`
}

// Default returns the stock settings. SaveDir is the user's Pictures folder
// when the home directory is known.
func Default() Config {
	saveDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		saveDir = filepath.Join(home, "Pictures")
	}
	return Config{
		SaveDir:     saveDir,
		ReceivePort: 8090,
		Window: Window{
			Width:        1024,
			Height:       768,
			CanvasWidth:  640,
			CanvasHeight: 480,
		},
		Toolbar: Toolbar{
			Swatches:           state.DefaultSwatches(),
			AlphaRamp:          state.DefaultAlphaRamp(),
			DefaultStrokeIndex: 0,
			DefaultStrokeWidth: 3,
			MinStrokeWidth:     3,
			MaxStrokeWidth:     60,
			StrokeWidthStep:    0.1,
		},
		Permission: Permission{
			Title:   "Storage permission",
			Message: "SketchBoard needs to write images to your save folder.",
		},
	}
}

// Load decodes path on top of Default and applies environment overrides. An
// empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("decode %s: unknown keys %v", path, undecoded)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvUser); v != "" {
		c.User = v
	}
	if v := os.Getenv(EnvSaveDir); v != "" {
		c.SaveDir = v
	}
	if v := os.Getenv(EnvRelay); v != "" {
		c.Relay = v
	}
}

var (
	ErrNoSwatches   = errors.New("at least one swatch is required")
	ErrStrokeBounds = errors.New("invalid stroke width bounds")
)

func (c Config) Validate() error {
	t := c.Toolbar
	if len(t.Swatches) == 0 {
		return ErrNoSwatches
	}
	for i, s := range t.Swatches {
		if !isHexToken(s.Color, 6) && !isHexToken(s.Color, 8) {
			return fmt.Errorf("swatch %d: %q is not #RRGGBB", i, s.Color)
		}
	}
	for i, a := range t.AlphaRamp {
		if !isHexDigits(a, 2) {
			return fmt.Errorf("alpha ramp %d: %q is not two hex digits", i, a)
		}
	}
	if t.DefaultStrokeIndex < 0 || t.DefaultStrokeIndex >= len(t.Swatches) {
		return fmt.Errorf("default stroke index %d out of range [0,%d)", t.DefaultStrokeIndex, len(t.Swatches))
	}
	if t.MinStrokeWidth <= 0 || t.MaxStrokeWidth < t.MinStrokeWidth {
		return fmt.Errorf("%w: min %v max %v", ErrStrokeBounds, t.MinStrokeWidth, t.MaxStrokeWidth)
	}
	if t.DefaultStrokeWidth < t.MinStrokeWidth || t.DefaultStrokeWidth > t.MaxStrokeWidth {
		return fmt.Errorf("%w: default %v outside [%v,%v]", ErrStrokeBounds, t.DefaultStrokeWidth, t.MinStrokeWidth, t.MaxStrokeWidth)
	}
	if t.StrokeWidthStep <= 0 {
		return fmt.Errorf("%w: step %v", ErrStrokeBounds, t.StrokeWidthStep)
	}
	if c.SaveDir == "" {
		return errors.New("save_dir is required")
	}
	return nil
}

// ToolbarConfig converts the toolbar section for state.NewToolbar.
func (c Config) ToolbarConfig() state.ToolbarConfig {
	t := c.Toolbar
	return state.ToolbarConfig{
		Swatches:           t.Swatches,
		AlphaRamp:          t.AlphaRamp,
		DefaultStrokeIndex: t.DefaultStrokeIndex,
		DefaultStrokeWidth: t.DefaultStrokeWidth,
		MinStrokeWidth:     t.MinStrokeWidth,
		MaxStrokeWidth:     t.MaxStrokeWidth,
		StrokeWidthStep:    t.StrokeWidthStep,
	}
}

// SavePreference returns a supplier for the [save] section, or nil when the
// file has none.
func (c Config) SavePreference() func() state.SavePreference {
	if c.Save == nil {
		return nil
	}
	pref := *c.Save
	return func() state.SavePreference { return pref }
}

func isHexToken(s string, digits int) bool {
	return len(s) == digits+1 && s[0] == '#' && isHexDigits(s[1:], digits)
}

func isHexDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
