package canvas

import (
	"image"
	"image/color"
	"sort"

	"roompainter/internal/region"
)

// drawOverlay renders every region overlay at the current zoom.
func (wc *WallCanvas) drawOverlay(output *image.RGBA, overlay *Overlay) {
	for _, ro := range overlay.Regions {
		if ro.Filled {
			wc.fillRegion(output, ro.Boundary, ro.Color, ro.FillAlpha)
		}
		for _, contour := range ro.Boundary {
			wc.drawContour(output, contour, ro.Color)
		}
	}
}

// drawContour draws the closed outline of one contour, 2 pixels thick.
func (wc *WallCanvas) drawContour(output *image.RGBA, contour region.Contour, col color.RGBA) {
	if len(contour) < 2 {
		return
	}
	for i := range contour {
		a := contour[i]
		b := contour[(i+1)%len(contour)]
		wc.drawLine(output,
			int(a.X*wc.zoom), int(a.Y*wc.zoom),
			int(b.X*wc.zoom), int(b.Y*wc.zoom),
			col, 2)
	}
}

// fillRegion paints the region interior with a translucent wash. Even-odd
// scanline fill across all contours, so holes stay clear.
func (wc *WallCanvas) fillRegion(output *image.RGBA, boundary region.Path, col color.RGBA, alpha uint8) {
	bounds := output.Bounds()
	if alpha == 0 {
		return
	}

	minY, maxY := bounds.Max.Y, bounds.Min.Y
	for _, contour := range boundary {
		for _, pt := range contour {
			y := int(pt.Y * wc.zoom)
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxY >= bounds.Max.Y {
		maxY = bounds.Max.Y - 1
	}

	t := float64(alpha) / 255.0
	for y := minY; y <= maxY; y++ {
		cy := (float64(y) + 0.5) / wc.zoom

		var crossings []float64
		for _, contour := range boundary {
			n := len(contour)
			if n < 3 {
				continue
			}
			for i := 0; i < n; i++ {
				a := contour[i]
				b := contour[(i+1)%n]
				if (a.Y <= cy) == (b.Y <= cy) {
					continue
				}
				x := a.X + (cy-a.Y)/(b.Y-a.Y)*(b.X-a.X)
				crossings = append(crossings, x*wc.zoom)
			}
		}
		if len(crossings) < 2 {
			continue
		}
		sort.Float64s(crossings)

		for i := 0; i+1 < len(crossings); i += 2 {
			x1 := int(crossings[i])
			x2 := int(crossings[i+1])
			if x1 < bounds.Min.X {
				x1 = bounds.Min.X
			}
			if x2 >= bounds.Max.X {
				x2 = bounds.Max.X - 1
			}
			for x := x1; x <= x2; x++ {
				di := output.PixOffset(x, y)
				output.Pix[di] = blend8(output.Pix[di], col.R, t)
				output.Pix[di+1] = blend8(output.Pix[di+1], col.G, t)
				output.Pix[di+2] = blend8(output.Pix[di+2], col.B, t)
			}
		}
	}
}

// drawLine draws a thick line using Bresenham's algorithm.
func (wc *WallCanvas) drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					output.Set(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func blend8(dst, src uint8, t float64) uint8 {
	return uint8(float64(dst)*(1-t) + float64(src)*t + 0.5)
}
