package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"roompainter/pkg/geometry"
)

func TestNormalizePathDataMask(t *testing.T) {
	raw := RawRegion{
		ID:         "wall-1",
		Mask:       "M 0,0 L 100,0 L 100,80 L 0,80 Z",
		Confidence: 0.9,
	}

	reg, err := Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, "wall-1", reg.ID)
	require.Len(t, reg.Boundary, 1)
	require.Len(t, reg.Boundary[0], 4)
	require.True(t, reg.HitTest(50, 40))
	require.False(t, reg.HitTest(150, 40))
	require.InDelta(t, 8000.0, reg.Area, 1e-9)
}

func TestNormalizeCoordinateListXY(t *testing.T) {
	raw := RawRegion{
		ID:   "wall-2",
		Mask: [][2]float64{{0, 0}, {100, 0}, {100, 80}, {0, 80}},
	}

	reg, err := Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, geometry.Point2D{X: 100, Y: 80}, reg.Boundary[0][2])
}

func TestNormalizeCoordinateListRowCol(t *testing.T) {
	// Same rectangle delivered as [row, col] pairs.
	raw := RawRegion{
		ID:     "wall-3",
		Mask:   [][2]float64{{0, 0}, {0, 100}, {80, 100}, {80, 0}},
		RowCol: true,
	}

	reg, err := Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, geometry.Point2D{X: 100, Y: 80}, reg.Boundary[0][2])
	require.True(t, reg.HitTest(50, 40))
}

func TestNormalizeKeepsExplicitArea(t *testing.T) {
	raw := RawRegion{
		ID:   "wall-4",
		Mask: [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Area: 12345,
	}

	reg, err := Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, 12345.0, reg.Area)
}

func TestNormalizeDegenerateKept(t *testing.T) {
	raw := RawRegion{
		ID:   "sliver",
		Mask: [][2]float64{{0, 0}, {10, 10}},
	}

	reg, err := Normalize(raw)
	require.NoError(t, err)
	require.True(t, reg.Degenerate())
	require.False(t, reg.HitTest(5, 5))
}

func TestNormalizeRejectsUnknownEncoding(t *testing.T) {
	_, err := Normalize(RawRegion{ID: "bad", Mask: 42})
	require.Error(t, err)

	var geomErr *GeometryError
	require.ErrorAs(t, err, &geomErr)
	require.Equal(t, "bad", geomErr.ID)
}

func TestNormalizeAllDropsMalformed(t *testing.T) {
	raws := []RawRegion{
		{ID: "good", Mask: "M 0,0 L 10,0 L 10,10 Z"},
		{ID: "bad", Mask: "Q 1,2 3,4"},
		{ID: "also-good", Mask: [][2]float64{{0, 0}, {5, 0}, {5, 5}}},
	}

	regions, errs := NormalizeAll(raws)
	require.Len(t, regions, 2)
	require.Len(t, errs, 1)
	require.Equal(t, "good", regions[0].ID)
	require.Equal(t, "also-good", regions[1].ID)
}

func TestPathWithHole(t *testing.T) {
	// Outer square with an inner square hole (a window in a wall).
	raw := RawRegion{
		ID:   "wall-window",
		Mask: "M 0,0 L 100,0 L 100,100 L 0,100 Z M 40,40 L 60,40 L 60,60 L 40,60 Z",
	}

	reg, err := Normalize(raw)
	require.NoError(t, err)
	require.Len(t, reg.Boundary, 2)

	require.True(t, reg.HitTest(20, 20), "wall body")
	require.False(t, reg.HitTest(50, 50), "inside the hole")
	require.False(t, reg.HitTest(150, 50), "outside entirely")
}

func TestHitTestNormalized(t *testing.T) {
	reg := Region{
		ID: "r",
		Boundary: Path{{
			{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 300}, {X: 100, Y: 300},
		}},
	}

	require.True(t, reg.HitTestNormalized(geometry.Point2D{X: 200, Y: 200}, 400, 400))
	require.False(t, reg.HitTestNormalized(geometry.Point2D{X: 50, Y: 50}, 400, 400))
	require.False(t, reg.HitTestNormalized(geometry.Point2D{X: 200, Y: 200}, 0, 0))
}

func TestFindAtPreservesOrder(t *testing.T) {
	a := Region{ID: "a", Boundary: Path{{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}}}
	b := Region{ID: "b", Boundary: Path{{{X: 50, Y: 50}, {X: 150, Y: 50}, {X: 150, Y: 150}, {X: 50, Y: 150}}}}

	hit, ok := FindAt([]Region{a, b}, 75, 75)
	require.True(t, ok)
	require.Equal(t, "a", hit.ID)

	hit, ok = FindAt([]Region{a, b}, 125, 125)
	require.True(t, ok)
	require.Equal(t, "b", hit.ID)

	_, ok = FindAt([]Region{a, b}, 500, 500)
	require.False(t, ok)
}
