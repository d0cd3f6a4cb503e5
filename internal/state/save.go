package state

import (
	"fmt"
	"time"
)

// DefaultSaveFolder is used when no save preference is supplied.
const DefaultSaveFolder = "SketchBoard"

// SavePreference is what a caller-supplied preference function returns.
// IncludeImage is a pointer because an unset value means "include".
type SavePreference struct {
	ImageType            string `toml:"image_type"`
	Folder               string `toml:"folder"`
	Filename             string `toml:"filename"`
	Transparent          bool   `toml:"transparent"`
	IncludeImage         *bool  `toml:"include_image"`
	CropToImageSize      bool   `toml:"crop_to_image_size"`
	CropToBackgroundSize bool   `toml:"crop_to_background_size"`
	CropToForegroundSize bool   `toml:"crop_to_foreground_size"`
}

// SaveRequest is the fully resolved argument list of a surface save.
type SaveRequest struct {
	ImageType            string
	Folder               string
	Filename             string
	Transparent          bool
	IncludeImage         bool
	CropToImageSize      bool
	CropToBackgroundSize bool
	CropToForegroundSize bool
}

// Request resolves p into a SaveRequest applying the documented fallbacks.
func (p SavePreference) Request() SaveRequest {
	return SaveRequest{
		ImageType:            p.ImageType,
		Folder:               p.Folder,
		Filename:             p.Filename,
		Transparent:          p.Transparent,
		IncludeImage:         p.IncludeImage == nil || *p.IncludeImage,
		CropToImageSize:      p.CropToImageSize,
		CropToBackgroundSize: p.CropToBackgroundSize,
		CropToForegroundSize: p.CropToForegroundSize,
	}
}

// DefaultSaveRequest is used when no preference function is configured.
func DefaultSaveRequest(now time.Time) SaveRequest {
	return SaveRequest{
		ImageType:   "png",
		Folder:      DefaultSaveFolder,
		Filename:    DefaultFilename(now),
		Transparent: true,
	}
}

// DefaultFilename formats t as "YYYY-M-DD HH-MM-SS". The month is not padded.
func DefaultFilename(t time.Time) string {
	return fmt.Sprintf("%d-%d-%02d %02d-%02d-%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}
