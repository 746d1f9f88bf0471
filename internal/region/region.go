// Package region provides the wall segment model and the adapter that
// normalizes the segmentation service's heterogeneous mask encodings into a
// single path representation.
package region

import (
	"roompainter/pkg/geometry"
)

// Contour is one closed loop of a region boundary, in image pixel space with
// origin (0,0) at the image top-left.
type Contour []geometry.Point2D

// Path is a closed, possibly multi-contour boundary. Insideness follows the
// even-odd rule, so a contour nested inside another cuts a hole (e.g. a
// window inside a wall).
type Path []Contour

// Bounds returns the bounding box of all contours.
func (p Path) Bounds() geometry.Rect {
	var all []geometry.Point2D
	for _, c := range p {
		all = append(all, c...)
	}
	return geometry.BoundingBox(all)
}

// Contains reports whether the point is inside the path under the even-odd
// rule. Crossing parity accumulates across contours, so holes test as
// outside.
func (p Path) Contains(pt geometry.Point2D) bool {
	inside := false
	for _, c := range p {
		if geometry.PointInPolygon(pt, c) {
			inside = !inside
		}
	}
	return inside
}

// Region is one paintable wall surface. Boundaries are produced externally
// and are immutable once received; a new detection replaces the whole set.
type Region struct {
	ID         string  `json:"id"`
	Boundary   Path    `json:"boundary"`
	Area       float64 `json:"area,omitempty"`       // informational
	Confidence float64 `json:"confidence,omitempty"` // informational, [0,1]
}

// Degenerate reports whether the region has too few points to enclose any
// area. Degenerate regions are kept but never match a hit test.
func (r Region) Degenerate() bool {
	for _, c := range r.Boundary {
		if len(c) >= 3 {
			return false
		}
	}
	return true
}

// HitTest reports whether the image-space point (x, y) falls inside the
// region boundary.
func (r Region) HitTest(x, y float64) bool {
	return r.Boundary.Contains(geometry.Point2D{X: x, Y: y})
}

// HitTestNormalized tests the point against the boundary in [0,1]x[0,1]
// space, so the caller can work in display coordinates scaled by the image
// dimensions.
func (r Region) HitTestNormalized(p geometry.Point2D, imageWidth, imageHeight float64) bool {
	if imageWidth == 0 || imageHeight == 0 {
		return false
	}
	inside := false
	for _, c := range r.Boundary {
		if geometry.PointInPolygonNormalized(p, c, imageWidth, imageHeight) {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the region's bounding box in image pixel space.
func (r Region) Bounds() geometry.Rect {
	return r.Boundary.Bounds()
}

// FindAt returns the first region in the set containing the image-space
// point, preserving detection order.
func FindAt(regions []Region, x, y float64) (Region, bool) {
	for _, r := range regions {
		if r.HitTest(x, y) {
			return r, true
		}
	}
	return Region{}, false
}
