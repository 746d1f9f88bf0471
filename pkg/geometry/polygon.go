package geometry

// PointInPolygon tests if a point is inside a polygon using ray casting.
// The test is even-odd: a point is inside when a ray from it crosses the
// polygon boundary an odd number of times.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// PointInPolygonNormalized performs the ray-casting test in [0,1]x[0,1]
// space: both the polygon vertices and the query point are divided by the
// reference width and height, so the result is independent of display
// resolution.
func PointInPolygonNormalized(p Point2D, polygon []Point2D, width, height float64) bool {
	if len(polygon) < 3 || width == 0 || height == 0 {
		return false
	}

	np := p.Normalize(width, height)
	scaled := make([]Point2D, len(polygon))
	for i, v := range polygon {
		scaled[i] = v.Normalize(width, height)
	}
	return PointInPolygon(np, scaled)
}

// PolygonArea returns the absolute area of a simple polygon using the
// shoelace formula.
func PolygonArea(polygon []Point2D) float64 {
	if len(polygon) < 3 {
		return 0
	}

	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}
