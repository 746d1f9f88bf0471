package compositor

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"roompainter/pkg/colorutil"
)

// Fill is the paint to apply to a region: either a solid color or a tiled
// wallpaper pattern. At most one fill is associated with a region at
// composite time; applying a new fill replaces the previous one.
type Fill struct {
	Color   color.RGBA
	Pattern image.Image
}

// IsPattern reports whether the fill is a wallpaper pattern.
func (f Fill) IsPattern() bool {
	return f.Pattern != nil
}

// SolidHex builds a solid-color fill from a "#RRGGBB" string.
func SolidHex(spec string) (Fill, error) {
	c, err := colorutil.ParseHex(spec)
	if err != nil {
		return Fill{}, &InvalidFillError{Spec: spec, Reason: err.Error()}
	}
	return Fill{Color: c}, nil
}

// Solid builds a solid-color fill.
func Solid(c color.RGBA) Fill {
	return Fill{Color: c}
}

// PatternFromImage builds a wallpaper fill from an already-decoded image.
func PatternFromImage(img image.Image) Fill {
	return Fill{Pattern: img}
}

// LoadPattern decodes a wallpaper image from disk.
func LoadPattern(path string) (Fill, error) {
	file, err := os.Open(path)
	if err != nil {
		return Fill{}, &PatternLoadError{Source: path, Err: err}
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return Fill{}, &PatternLoadError{Source: path, Err: err}
	}
	return Fill{Pattern: img}, nil
}
