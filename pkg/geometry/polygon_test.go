package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func square(x, y, size float64) []Point2D {
	return []Point2D{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	}
}

func TestPointInPolygonSquare(t *testing.T) {
	sq := square(10, 10, 20)

	require.True(t, PointInPolygon(Point2D{X: 20, Y: 20}, sq))
	require.False(t, PointInPolygon(Point2D{X: 5, Y: 20}, sq))
	require.False(t, PointInPolygon(Point2D{X: 35, Y: 20}, sq))
	require.False(t, PointInPolygon(Point2D{X: 20, Y: 5}, sq))
}

func TestPointInPolygonConcave(t *testing.T) {
	// U shape: the notch between the arms is outside.
	u := []Point2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
		{X: 20, Y: 10}, {X: 20, Y: 0}, {X: 30, Y: 0},
		{X: 30, Y: 30}, {X: 0, Y: 30},
	}

	require.True(t, PointInPolygon(Point2D{X: 5, Y: 5}, u))
	require.True(t, PointInPolygon(Point2D{X: 15, Y: 20}, u))
	require.False(t, PointInPolygon(Point2D{X: 15, Y: 5}, u))
}

func TestPointInPolygonDegenerate(t *testing.T) {
	require.False(t, PointInPolygon(Point2D{X: 1, Y: 1}, nil))
	require.False(t, PointInPolygon(Point2D{X: 1, Y: 1}, []Point2D{{X: 0, Y: 0}, {X: 2, Y: 2}}))
}

func TestPointInPolygonNormalized(t *testing.T) {
	sq := square(100, 100, 200) // in a 400x400 image

	require.True(t, PointInPolygonNormalized(Point2D{X: 200, Y: 200}, sq, 400, 400))
	require.False(t, PointInPolygonNormalized(Point2D{X: 50, Y: 50}, sq, 400, 400))

	// Zero reference dimensions never match.
	require.False(t, PointInPolygonNormalized(Point2D{X: 200, Y: 200}, sq, 0, 400))
}

func TestPolygonArea(t *testing.T) {
	require.InDelta(t, 400.0, PolygonArea(square(0, 0, 20)), 1e-9)

	tri := []Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	require.InDelta(t, 50.0, PolygonArea(tri), 1e-9)

	// Winding direction must not change the magnitude.
	rev := []Point2D{{X: 0, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	require.InDelta(t, 50.0, PolygonArea(rev), 1e-9)

	require.Zero(t, PolygonArea(tri[:2]))
}
