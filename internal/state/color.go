package state

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
)

// EraseColor is the fully transparent token the surface treats as an eraser.
const EraseColor = "#00000000"

// Channel slider bounds.
const (
	MinChannel = 17
	MaxChannel = 255
)

// rgbLen is the length of a "#RRGGBB" token; a full token adds two alpha digits.
const (
	rgbLen  = 7
	fullLen = 9
)

// SpliceRGB replaces the RGB digits of token with those of rgb ("#RRGGBB") and
// keeps whatever alpha digits token carries.
func SpliceRGB(token, rgb string) string {
	if len(rgb) > rgbLen {
		rgb = rgb[:rgbLen]
	}
	tail := ""
	if len(token) > rgbLen {
		tail = token[rgbLen:min(len(token), fullLen)]
	}
	return rgb + tail
}

// SpliceChannel keeps the "#RRGGBB" prefix of token and sets the trailing two
// digits to v, clamped to [MinChannel, MaxChannel], in lowercase hex.
func SpliceChannel(token string, v int) string {
	v = max(MinChannel, min(MaxChannel, v))
	prefix := token
	if len(prefix) > rgbLen {
		prefix = prefix[:rgbLen]
	}
	return prefix + fmt.Sprintf("%02x", v)
}

// ComposeStroke returns the colour handed to the surface. Tokens that already
// carry alpha digits pass through; RGB-only tokens get alpha appended.
func ComposeStroke(token, alpha string) string {
	if len(token) == fullLen {
		return token
	}
	return token + alpha
}

// TokenColor converts a "#RRGGBB" or "#RRGGBBAA" token to a colour.
// Malformed tokens yield opaque black.
func TokenColor(token string) color.NRGBA {
	c := gg.Hex(token)
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// HueColor returns the "#RRGGBB" token for a hue in degrees and a saturation
// in [0, 1] at half lightness, the plane shown by the colour picker.
func HueColor(hue, saturation float64) string {
	c := gg.HSL(hue, saturation, 0.5)
	return fmt.Sprintf("#%02X%02X%02X",
		uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5))
}
