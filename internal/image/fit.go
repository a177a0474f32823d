package imagepkg

import (
	"errors"
	"fmt"
	"math"
)

// FitMode selects how a user image is scaled into a slot.
type FitMode string

const (
	// FitCover fills the slot and crops the overflow.
	FitCover FitMode = "cover"
	// FitContain shows the whole image and may leave empty space.
	FitContain FitMode = "contain"
)

// ParseFitMode maps "" to FitCover.
func ParseFitMode(s string) (FitMode, error) {
	switch FitMode(s) {
	case "", FitCover:
		return FitCover, nil
	case FitContain:
		return FitContain, nil
	}
	return "", fmt.Errorf("unknown fit mode %q", s)
}

// FitGeometry places a scaled image relative to the slot's top-left corner.
// Offsets are negative when a cover fit overflows the slot.
type FitGeometry struct {
	DrawWidth  float64 `json:"draw_width"`
	DrawHeight float64 `json:"draw_height"`
	OffsetX    float64 `json:"offset_x"`
	OffsetY    float64 `json:"offset_y"`
}

var errEmptyImage = errors.New("image has zero width or height")

// Fit scales an iw x ih image into an sw x sh slot, preserving aspect ratio.
// The image is centred on the axis that does not match the slot.
func Fit(iw, ih, sw, sh float64, mode FitMode) (FitGeometry, error) {
	if iw <= 0 || ih <= 0 || math.IsNaN(iw) || math.IsNaN(ih) {
		return FitGeometry{}, &ImageLoadError{Role: RoleUser, Source: fmt.Sprintf("%gx%g", iw, ih), Err: errEmptyImage}
	}
	if sw <= 0 || sh <= 0 {
		return FitGeometry{}, fmt.Errorf("slot must have positive size, got %gx%g", sw, sh)
	}

	wider := iw/ih > sw/sh
	var g FitGeometry
	switch mode {
	case FitContain:
		if wider {
			g.DrawWidth = sw
			g.DrawHeight = sw * ih / iw
			g.OffsetY = (sh - g.DrawHeight) / 2
		} else {
			g.DrawHeight = sh
			g.DrawWidth = sh * iw / ih
			g.OffsetX = (sw - g.DrawWidth) / 2
		}
	case FitCover, "":
		if wider {
			g.DrawHeight = sh
			g.DrawWidth = sh * iw / ih
			g.OffsetX = (sw - g.DrawWidth) / 2
		} else {
			g.DrawWidth = sw
			g.DrawHeight = sw * ih / iw
			g.OffsetY = (sh - g.DrawHeight) / 2
		}
	default:
		return FitGeometry{}, fmt.Errorf("unknown fit mode %q", mode)
	}
	return g, nil
}

// ClampRadius limits a corner radius to half the smaller slot side so the
// corner arcs never overlap.
func ClampRadius(r, sw, sh float64) float64 {
	if r <= 0 || math.IsNaN(r) {
		return 0
	}
	return math.Min(r, math.Min(sw, sh)/2)
}
