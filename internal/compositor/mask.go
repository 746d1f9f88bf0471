package compositor

import (
	"image"

	"roompainter/internal/region"
)

// rasterizeMask renders the region boundary into a single-channel alpha
// buffer using even-odd scanline filling, so nested contours cut holes.
// Pixels inside the boundary get 255, everything else 0.
func rasterizeMask(boundary region.Path, width, height int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		cy := float64(y) + 0.5

		// Collect crossings against every edge of every contour; sorting
		// and filling between pairs realizes the even-odd rule across the
		// whole multi-contour path.
		var xs []float64
		for _, contour := range boundary {
			n := len(contour)
			if n < 3 {
				continue
			}
			for i := 0; i < n; i++ {
				p1 := contour[i]
				p2 := contour[(i+1)%n]
				if (p1.Y <= cy && p2.Y > cy) || (p2.Y <= cy && p1.Y > cy) {
					t := (cy - p1.Y) / (p2.Y - p1.Y)
					xs = append(xs, p1.X+t*(p2.X-p1.X))
				}
			}
		}
		if len(xs) < 2 {
			continue
		}

		// Insertion sort; crossing counts per scanline are small.
		for i := 1; i < len(xs); i++ {
			for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
				xs[j], xs[j-1] = xs[j-1], xs[j]
			}
		}

		row := y * mask.Stride
		for i := 0; i+1 < len(xs); i += 2 {
			x1 := int(xs[i] + 0.5)
			x2 := int(xs[i+1] - 0.5)
			if x1 < 0 {
				x1 = 0
			}
			if x2 >= width {
				x2 = width - 1
			}
			for x := x1; x <= x2; x++ {
				mask.Pix[row+x] = 255
			}
		}
	}

	return mask
}

// softenMask turns the binary mask into a smoothly-falling-off alpha field
// by running a few passes of a 3x3 box blur, then clamping the result back
// to the original footprint. Pixels outside the boundary stay at zero, so
// compositing never touches anything beyond the region; pixels just inside
// the edge ramp up from a partial value instead of jumping to full opacity.
func softenMask(mask *image.Alpha, passes int) *image.Alpha {
	w := mask.Rect.Dx()
	h := mask.Rect.Dy()

	src := make([]uint16, w*h)
	for i, v := range mask.Pix {
		src[i] = uint16(v)
	}
	dst := make([]uint16, w*h)

	for pass := 0; pass < passes; pass++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				var sum, count uint32
				for dy := -1; dy <= 1; dy++ {
					yy := y + dy
					if yy < 0 || yy >= h {
						continue
					}
					for dx := -1; dx <= 1; dx++ {
						xx := x + dx
						if xx < 0 || xx >= w {
							continue
						}
						sum += uint32(src[yy*w+xx])
						count++
					}
				}
				dst[y*w+x] = uint16(sum / count)
			}
		}
		src, dst = dst, src
	}

	out := image.NewAlpha(mask.Rect)
	for i := range out.Pix {
		if mask.Pix[i] == 0 {
			continue
		}
		out.Pix[i] = uint8(src[i])
	}
	return out
}
