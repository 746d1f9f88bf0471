// Package canvas provides the room photo canvas with pan, zoom, and region
// overlays.
package canvas

import (
	"image/color"

	"roompainter/internal/region"
)

// Overlay is a set of region outlines drawn over the photo.
type Overlay struct {
	Regions []RegionOverlay
}

// RegionOverlay draws one wall region boundary, optionally with a
// translucent fill. Fill is used for the detection preview; the outline
// alone marks selectable and selected regions.
type RegionOverlay struct {
	Boundary region.Path
	Color    color.RGBA
	Filled   bool
	// FillAlpha is the fill opacity in [0,255]; the outline is always
	// drawn fully opaque.
	FillAlpha uint8
}
