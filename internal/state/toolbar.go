package state

// ToolbarConfig seeds a Toolbar. Zero values are not replaced with defaults;
// callers load them from config.Default or their own settings.
type ToolbarConfig struct {
	Swatches           []Swatch
	AlphaRamp          []string
	DefaultStrokeIndex int
	DefaultStrokeWidth float64
	MinStrokeWidth     float64
	MaxStrokeWidth     float64
	StrokeWidthStep    float64
}

// Toolbar owns the drawing state behind the toolbar: active colour token,
// alpha, stroke width, eraser mode and picker visibility. All methods are
// meant to be called from the UI goroutine.
type Toolbar struct {
	cfg ToolbarConfig

	color            string
	alpha            string
	strokeWidth      float64
	erasing          bool
	beforeEraseColor string
	pickerVisible    bool
	pickColor        string
	channel          int

	colorChanged    bool
	alphaStep       int
	strokeWidthStep float64
}

func NewToolbar(cfg ToolbarConfig) *Toolbar {
	t := &Toolbar{
		cfg:             cfg,
		alpha:           "FF",
		strokeWidth:     cfg.DefaultStrokeWidth,
		channel:         MaxChannel,
		alphaStep:       -1,
		strokeWidthStep: cfg.StrokeWidthStep,
	}
	if idx := cfg.DefaultStrokeIndex; idx >= 0 && idx < len(cfg.Swatches) {
		t.color = cfg.Swatches[idx].Color
	}
	if len(cfg.AlphaRamp) > 0 && t.alphaIndex() < 0 {
		t.alpha = cfg.AlphaRamp[len(cfg.AlphaRamp)-1]
	}
	return t
}

func (t *Toolbar) Swatches() []Swatch { return t.cfg.Swatches }

func (t *Toolbar) Color() string { return t.color }

func (t *Toolbar) Alpha() string { return t.alpha }

func (t *Toolbar) StrokeWidth() float64 { return t.strokeWidth }

func (t *Toolbar) Erasing() bool { return t.erasing }

func (t *Toolbar) PickerVisible() bool { return t.pickerVisible }

func (t *Toolbar) PickColor() string { return t.pickColor }

func (t *Toolbar) Channel() int { return t.channel }

// ColorChanged reports whether the last swatch tap changed the colour and no
// render pass has happened since.
func (t *Toolbar) ColorChanged() bool { return t.colorChanged }

// Rendered marks the end of a render pass.
func (t *Toolbar) Rendered() { t.colorChanged = false }

// StrokeColor is the composed token handed to the sketch surface.
func (t *Toolbar) StrokeColor() string {
	return ComposeStroke(t.color, t.alpha)
}

// SwatchToken is what the selected-swatch renderer receives for c.
func (t *Toolbar) SwatchToken(c string) string {
	return c + t.alpha
}

// IsActive reports whether c is the active colour.
func (t *Toolbar) IsActive(c string) bool {
	return t.color == c
}

// TapSwatch selects c, or cycles alpha when c is already active.
func (t *Toolbar) TapSwatch(c string) {
	if t.color == c {
		t.CycleAlpha()
		return
	}
	t.SelectColor(c)
}

func (t *Toolbar) SelectColor(c string) {
	t.color = c
	t.colorChanged = true
}

// CycleAlpha steps through the alpha ramp, reversing at either end.
func (t *Toolbar) CycleAlpha() {
	ramp := t.cfg.AlphaRamp
	if len(ramp) < 2 {
		return
	}
	index := t.alphaIndex()
	if index < 0 {
		index = len(ramp) - 1
	}
	if t.alphaStep < 0 {
		if index == 0 {
			t.alphaStep = 1
		} else {
			t.alphaStep = -1
		}
	} else {
		if index == len(ramp)-1 {
			t.alphaStep = -1
		} else {
			t.alphaStep = 1
		}
	}
	t.alpha = ramp[index+t.alphaStep]
}

func (t *Toolbar) alphaIndex() int {
	for i, a := range t.cfg.AlphaRamp {
		if a == t.alpha {
			return i
		}
	}
	return -1
}

func (t *Toolbar) CanErase() bool { return !t.erasing }

func (t *Toolbar) CanBrush() bool { return t.erasing }

// Erase switches to eraser mode, remembering the colour to restore later.
func (t *Toolbar) Erase() {
	if t.erasing {
		return
	}
	t.erasing = true
	t.beforeEraseColor = t.color
	t.color = EraseColor
}

// Brush leaves eraser mode and restores the remembered colour. With nothing
// remembered yet the current colour is remembered first, so the first brush
// activation never strands the toolbar on the eraser token.
func (t *Toolbar) Brush() {
	if !t.erasing {
		return
	}
	t.erasing = false
	if t.beforeEraseColor == "" {
		t.beforeEraseColor = t.color
	}
	t.color = t.beforeEraseColor
}

// SetStrokeWidth is the slider path; the slider enforces the bounds.
func (t *Toolbar) SetStrokeWidth(v float64) {
	t.strokeWidth = v
}

// NextStrokeWidth advances the width by the signed step, turning around when a
// bound is reached in the direction of travel.
func (t *Toolbar) NextStrokeWidth() float64 {
	if (t.strokeWidth >= t.cfg.MaxStrokeWidth && t.strokeWidthStep > 0) ||
		(t.strokeWidth <= t.cfg.MinStrokeWidth && t.strokeWidthStep < 0) {
		t.strokeWidthStep = -t.strokeWidthStep
	}
	w := t.strokeWidth + t.strokeWidthStep
	t.strokeWidth = max(t.cfg.MinStrokeWidth, min(t.cfg.MaxStrokeWidth, w))
	return t.strokeWidth
}

func (t *Toolbar) TogglePicker() {
	t.pickerVisible = !t.pickerVisible
}

// SetPickerColor applies an "#RRGGBB" value from the hue/saturation picker.
func (t *Toolbar) SetPickerColor(rgb string) {
	t.pickColor = rgb
	t.color = SpliceRGB(t.color, rgb)
}

// SetChannel applies the channel slider value to the token's trailing digits.
func (t *Toolbar) SetChannel(v int) {
	t.channel = max(MinChannel, min(MaxChannel, v))
	t.color = SpliceChannel(t.color, t.channel)
}
