package compositor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"roompainter/internal/region"
	"roompainter/pkg/colorutil"
)

func greyImage(w, h int, lum uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = lum, lum, lum, 255
	}
	return img
}

func squareRegion(id string, x, y, size float64) region.Region {
	return region.Region{
		ID: id,
		Boundary: region.Path{{
			{X: x, Y: y},
			{X: x + size, Y: y},
			{X: x + size, Y: y + size},
			{X: x, Y: y + size},
		}},
	}
}

func TestApplyLeavesBaseUntouched(t *testing.T) {
	base := greyImage(60, 60, 150)
	snapshot := CloneRGBA(base)

	c := New(nil)
	out, err := c.Apply(base, squareRegion("w", 10, 10, 30), Solid(color.RGBA{R: 200, G: 40, B: 40, A: 255}))
	require.NoError(t, err)
	require.NotSame(t, base, out)
	require.Equal(t, snapshot.Pix, base.Pix, "base must never be modified")
}

// Pixels outside the region footprint are byte-identical to the base; the
// soft edge only ramps inside the boundary.
func TestApplyOutsideRegionIdentity(t *testing.T) {
	base := greyImage(60, 60, 150)
	reg := squareRegion("w", 15, 15, 25)

	c := New(nil)
	out, err := c.Apply(base, reg, Solid(color.RGBA{R: 200, G: 40, B: 40, A: 255}))
	require.NoError(t, err)

	mask := rasterizeMask(reg.Boundary, 60, 60)
	changed := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			i := out.PixOffset(x, y)
			if mask.Pix[y*mask.Stride+x] == 0 {
				require.Equal(t, base.Pix[i:i+4], out.Pix[i:i+4],
					"pixel (%d,%d) outside the region changed", x, y)
			} else if out.Pix[i] != base.Pix[i] || out.Pix[i+1] != base.Pix[i+1] || out.Pix[i+2] != base.Pix[i+2] {
				changed++
			}
		}
	}
	require.Greater(t, changed, 0, "some interior pixels must change")
}

// Painting a grey wall red shifts the hue to red while the original
// luminance differences (shadows vs highlights) survive.
func TestApplySolidPreservesShading(t *testing.T) {
	base := greyImage(60, 60, 0)
	// Left half of the region darker than the right half.
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			lum := uint8(80)
			if x >= 30 {
				lum = 200
			}
			i := base.PixOffset(x, y)
			base.Pix[i], base.Pix[i+1], base.Pix[i+2], base.Pix[i+3] = lum, lum, lum, 255
		}
	}

	c := New(nil)
	out, err := c.Apply(base, squareRegion("w", 10, 10, 40), Solid(color.RGBA{R: 220, G: 30, B: 30, A: 255}))
	require.NoError(t, err)

	darkIdx := out.PixOffset(20, 30)
	lightIdx := out.PixOffset(40, 30)

	// Red dominates both samples.
	require.Greater(t, out.Pix[darkIdx], out.Pix[darkIdx+1])
	require.Greater(t, out.Pix[darkIdx], out.Pix[darkIdx+2])
	require.Greater(t, out.Pix[lightIdx], out.Pix[lightIdx+1])

	// The formerly-brighter area is still brighter.
	darkHSV := colorutil.RGBToHSV(out.Pix[darkIdx], out.Pix[darkIdx+1], out.Pix[darkIdx+2])
	lightHSV := colorutil.RGBToHSV(out.Pix[lightIdx], out.Pix[lightIdx+1], out.Pix[lightIdx+2])
	require.Greater(t, lightHSV.V, darkHSV.V)
}

// A wall with a window hole: the hole interior stays byte-identical.
func TestApplyRespectsHoles(t *testing.T) {
	base := greyImage(100, 100, 160)
	reg := region.Region{
		ID: "wall-window",
		Boundary: region.Path{
			{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 90, Y: 90}, {X: 10, Y: 90}},
			{{X: 40, Y: 40}, {X: 60, Y: 40}, {X: 60, Y: 60}, {X: 40, Y: 60}},
		},
	}

	c := New(nil)
	out, err := c.Apply(base, reg, Solid(color.RGBA{R: 40, G: 120, B: 200, A: 255}))
	require.NoError(t, err)

	// Center of the hole is untouched.
	i := out.PixOffset(50, 50)
	require.Equal(t, base.Pix[i:i+4], out.Pix[i:i+4])

	// Wall body around the hole is painted.
	i = out.PixOffset(25, 50)
	require.NotEqual(t, base.Pix[i:i+3], out.Pix[i:i+3])
}

func TestApplyRejectsInvalidFills(t *testing.T) {
	base := greyImage(20, 20, 100)
	reg := squareRegion("w", 2, 2, 16)
	c := New(nil)

	_, err := c.Apply(base, reg, Fill{Color: color.RGBA{}})
	var fillErr *InvalidFillError
	require.ErrorAs(t, err, &fillErr)

	_, err = c.Apply(base, reg, Fill{Pattern: image.NewRGBA(image.Rect(0, 0, 0, 0))})
	var patErr *PatternLoadError
	require.ErrorAs(t, err, &patErr)
}

func TestSolidHexErrors(t *testing.T) {
	_, err := SolidHex("not-a-color")
	var fillErr *InvalidFillError
	require.ErrorAs(t, err, &fillErr)

	fill, err := SolidHex("#20A060")
	require.NoError(t, err)
	require.Equal(t, uint8(0x20), fill.Color.R)
	require.False(t, fill.IsPattern())
}

func TestApplyPatternTiles(t *testing.T) {
	base := greyImage(60, 60, 150)

	// 2x2 checker pattern, smaller than the region so it repeats.
	pattern := image.NewRGBA(image.Rect(0, 0, 2, 2))
	pattern.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	pattern.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})
	pattern.SetRGBA(1, 0, color.RGBA{B: 255, A: 255})
	pattern.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})

	reg := squareRegion("w", 10, 10, 40)
	c := New(nil)
	out, err := c.Apply(base, reg, PatternFromImage(pattern))
	require.NoError(t, err)

	// Interior changed, exterior identical.
	i := out.PixOffset(30, 30)
	require.NotEqual(t, base.Pix[i:i+3], out.Pix[i:i+3])
	i = out.PixOffset(2, 2)
	require.Equal(t, base.Pix[i:i+4], out.Pix[i:i+4])

	// The tiling alternates: adjacent interior pixels pull toward
	// different pattern texels.
	a := out.PixOffset(30, 30)
	b := out.PixOffset(31, 30)
	require.NotEqual(t, out.Pix[a:a+3], out.Pix[b:b+3])
}

func TestApplyAllRecomposites(t *testing.T) {
	base := greyImage(100, 60, 140)
	left := squareRegion("left", 5, 5, 40)
	right := squareRegion("right", 55, 5, 40)

	c := New(nil)

	red := Solid(color.RGBA{R: 220, G: 30, B: 30, A: 255})
	blue := Solid(color.RGBA{R: 30, G: 60, B: 220, A: 255})

	both, err := c.ApplyAll(base, []region.Region{left, right},
		map[string]Fill{"left": red, "right": blue})
	require.NoError(t, err)

	// Dropping one fill reproduces the base exactly in that region.
	onlyRight, err := c.ApplyAll(base, []region.Region{left, right},
		map[string]Fill{"right": blue})
	require.NoError(t, err)

	i := onlyRight.PixOffset(25, 25) // inside left
	require.Equal(t, base.Pix[i:i+4], onlyRight.Pix[i:i+4])

	i = onlyRight.PixOffset(75, 25) // inside right
	require.Equal(t, both.Pix[i:i+4], onlyRight.Pix[i:i+4])
}

func TestApplyAllRejectsInvalidFill(t *testing.T) {
	base := greyImage(40, 40, 140)
	reg := squareRegion("w", 5, 5, 30)

	c := New(nil)

	// Zero-alpha solid.
	_, err := c.ApplyAll(base, []region.Region{reg}, map[string]Fill{"w": {}})
	var fillErr *InvalidFillError
	require.ErrorAs(t, err, &fillErr)

	// Empty pattern.
	empty := PatternFromImage(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	_, err = c.ApplyAll(base, []region.Region{reg}, map[string]Fill{"w": empty})
	var patErr *PatternLoadError
	require.ErrorAs(t, err, &patErr)
}

func TestRegionLighting(t *testing.T) {
	base := greyImage(40, 40, 128)
	reg := squareRegion("w", 5, 5, 30)

	stats := RegionLighting(base, reg)
	require.Greater(t, stats.Pixels, 0)
	require.InDelta(t, 128.0/255.0, stats.MeanValue, 0.01)
	require.InDelta(t, 0.0, stats.StdDevValue, 0.001)

	// Degenerate region yields zero stats.
	empty := region.Region{ID: "d", Boundary: region.Path{{{X: 0, Y: 0}, {X: 1, Y: 1}}}}
	require.Zero(t, RegionLighting(base, empty).Pixels)
}
