// Package palette derives paint color recommendations from the room photo
// itself: the dominant colors of the furnishings drive complementary and
// analogous wall color suggestions.
package palette

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"sort"

	"roompainter/internal/region"
	"roompainter/pkg/colorutil"

	"gonum.org/v1/gonum/floats"
)

// Swatch is one recommended wall color.
type Swatch struct {
	Hex    string
	Source string // "dominant", "complement", or "analogous"
	Weight float64
}

// maxSample caps the number of pixels fed to clustering. Room photos are
// large and k-means converges the same on a subsample.
const maxSample = 8192

// Recommend clusters the photo's colors outside the candidate wall regions
// and derives wall color suggestions from the dominant furnishing tones.
// Returns up to n swatches, most relevant first.
func Recommend(img *image.RGBA, regions []region.Region, n int) []Swatch {
	samples := samplePixels(img, regions)
	if len(samples) == 0 || n <= 0 {
		return nil
	}

	k := 4
	if len(samples) < k {
		k = len(samples)
	}
	centers, sizes := kmeans(samples, k, 12)

	order := make([]int, len(centers))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return sizes[order[a]] > sizes[order[b]] })

	total := 0
	for _, s := range sizes {
		total += s
	}

	var out []Swatch
	for _, ci := range order {
		c := centers[ci]
		weight := float64(sizes[ci]) / float64(total)
		hsv := colorutil.RGBToHSV(clamp8(c[0]), clamp8(c[1]), clamp8(c[2]))

		// Near-grey dominants carry no hue information worth echoing.
		if hsv.S < 0.12 {
			continue
		}

		out = append(out, wallTone(hsv, "dominant", weight))
		out = append(out, wallTone(colorutil.HSV{H: math.Mod(hsv.H+180, 360), S: hsv.S, V: hsv.V}, "complement", weight*0.8))
		out = append(out, wallTone(colorutil.HSV{H: math.Mod(hsv.H+30, 360), S: hsv.S, V: hsv.V}, "analogous", weight*0.6))
	}

	// A fully neutral room still deserves suggestions.
	if len(out) == 0 {
		for _, h := range []float64{40, 200, 100} {
			out = append(out, wallTone(colorutil.HSV{H: h, S: 0.3, V: 0.8}, "analogous", 0.1))
		}
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Weight > out[b].Weight })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// wallTone softens a reference color into something paintable: muted
// saturation, high value.
func wallTone(hsv colorutil.HSV, source string, weight float64) Swatch {
	hsv.S = math.Min(hsv.S*0.6, 0.45)
	hsv.V = math.Max(hsv.V, 0.75)
	r, g, b := colorutil.HSVToRGB(hsv)
	return Swatch{
		Hex:    colorutil.FormatHex(color.RGBA{R: r, G: g, B: b, A: 255}),
		Source: source,
		Weight: weight,
	}
}

// samplePixels gathers RGB triples from pixels outside every region, striding
// to stay under maxSample.
func samplePixels(img *image.RGBA, regions []region.Region) [][3]float64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	stride := int(math.Sqrt(float64(w*h)/float64(maxSample))) + 1

	var samples [][3]float64
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			if insideAny(regions, float64(x), float64(y)) {
				continue
			}
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			samples = append(samples, [3]float64{
				float64(img.Pix[i]),
				float64(img.Pix[i+1]),
				float64(img.Pix[i+2]),
			})
		}
	}
	return samples
}

func insideAny(regions []region.Region, x, y float64) bool {
	for _, reg := range regions {
		if reg.HitTest(x, y) {
			return true
		}
	}
	return false
}

// kmeans runs Lloyd's algorithm in RGB space with deterministic seeding, so
// the same photo always yields the same palette.
func kmeans(samples [][3]float64, k, iterations int) (centers [][3]float64, sizes []int) {
	rng := rand.New(rand.NewSource(1))

	centers = make([][3]float64, k)
	for i := range centers {
		centers[i] = samples[rng.Intn(len(samples))]
	}

	assign := make([]int, len(samples))
	for iter := 0; iter < iterations; iter++ {
		changed := false
		for si, s := range samples {
			best, bestDist := 0, math.MaxFloat64
			for ci, c := range centers {
				d := floats.Distance(s[:], c[:], 2)
				if d < bestDist {
					best, bestDist = ci, d
				}
			}
			if assign[si] != best {
				assign[si] = best
				changed = true
			}
		}

		sums := make([][3]float64, k)
		counts := make([]int, k)
		for si, s := range samples {
			ci := assign[si]
			for d := 0; d < 3; d++ {
				sums[ci][d] += s[d]
			}
			counts[ci]++
		}
		for ci := range centers {
			if counts[ci] == 0 {
				centers[ci] = samples[rng.Intn(len(samples))]
				continue
			}
			for d := 0; d < 3; d++ {
				centers[ci][d] = sums[ci][d] / float64(counts[ci])
			}
		}

		if !changed {
			break
		}
	}

	sizes = make([]int, k)
	for _, ci := range assign {
		sizes[ci]++
	}
	return centers, sizes
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
