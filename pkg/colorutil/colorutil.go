// Package colorutil provides shared color utilities for the room painter application.
package colorutil

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// HSV is a color in hue/saturation/value space. H is in degrees [0, 360),
// S and V are in [0, 1].
type HSV struct {
	H, S, V float64
}

// RGBToHSV converts 8-bit RGB to HSV (H 0-360, S 0-1, V 0-1).
func RGBToHSV(r, g, b uint8) HSV {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	diff := maxC - minC

	v := maxC

	var s float64
	if maxC > 0 {
		s = diff / maxC
	}

	var h float64
	if diff == 0 {
		h = 0
	} else if maxC == rf {
		h = 60 * math.Mod((gf-bf)/diff, 6)
	} else if maxC == gf {
		h = 60 * ((bf-rf)/diff + 2)
	} else {
		h = 60 * ((rf-gf)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	return HSV{H: h, S: s, V: v}
}

// HSVToRGB converts HSV (H 0-360, S 0-1, V 0-1) back to 8-bit RGB.
// Round-tripping any 8-bit RGB triplet through RGBToHSV reproduces the
// original channels within one unit of rounding.
func HSVToRGB(hsv HSV) (r, g, b uint8) {
	h := math.Mod(hsv.H, 360)
	if h < 0 {
		h += 360
	}
	s := clamp01(hsv.S)
	v := clamp01(hsv.V)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}

	r = uint8(math.Round((rf + m) * 255))
	g = uint8(math.Round((gf + m) * 255))
	b = uint8(math.Round((bf + m) * 255))
	return r, g, b
}

// ParseHex parses a "#RRGGBB" or "RRGGBB" color string. All six characters
// must be hex digits.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", s)
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: b[0], G: b[1], B: b[2], A: 255}, nil
}

// FormatHex renders a color as "#RRGGBB".
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
