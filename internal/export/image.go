// Package export encodes a rendered sketch into the formats a save request
// can ask for.
package export

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
)

const (
	TypePNG = "png"
	TypeJPG = "jpg"
	TypePDF = "pdf"
)

// Normalize folds the accepted spellings of an image type onto one constant.
// Anything unknown is treated as jpg.
func Normalize(imageType string) string {
	switch strings.ToLower(strings.TrimSpace(imageType)) {
	case TypePNG:
		return TypePNG
	case TypePDF:
		return TypePDF
	default:
		return TypeJPG
	}
}

// Extension returns the file extension for imageType, including the dot.
func Extension(imageType string) string {
	return "." + Normalize(imageType)
}

// Raster encodes img as png or jpg.
func Raster(w io.Writer, imageType string, img image.Image) error {
	var err error
	switch Normalize(imageType) {
	case TypePNG:
		err = png.Encode(w, img)
	case TypeJPG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	default:
		return fmt.Errorf("%s is not a raster format", imageType)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", imageType, err)
	}
	return nil
}
