package compositor

import (
	"image"

	"roompainter/internal/region"
	"roompainter/pkg/colorutil"

	"gonum.org/v1/gonum/stat"
)

// LightingStats summarizes the luminance distribution inside a region,
// before any paint is applied. The UI surfaces this as a rough "how evenly
// lit is this wall" indicator.
type LightingStats struct {
	MeanValue   float64 // mean HSV value in [0,1]
	StdDevValue float64
	Pixels      int
}

// RegionLighting samples every pixel inside the region boundary and returns
// its luminance statistics. Degenerate regions yield zero stats.
func RegionLighting(img *image.RGBA, reg region.Region) LightingStats {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	mask := rasterizeMask(reg.Boundary, w, h)

	var values []float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Pix[y*mask.Stride+x] == 0 {
				continue
			}
			i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			hsv := colorutil.RGBToHSV(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			values = append(values, hsv.V)
		}
	}
	if len(values) == 0 {
		return LightingStats{}
	}

	mean, std := stat.MeanStdDev(values, nil)
	return LightingStats{
		MeanValue:   mean,
		StdDevValue: std,
		Pixels:      len(values),
	}
}
