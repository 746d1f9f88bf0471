package region

import (
	"fmt"

	"roompainter/pkg/geometry"
)

// GeometryError reports a region description that could not be normalized.
// Callers skip the offending region; the error never aborts a detection
// result as a whole.
type GeometryError struct {
	ID     string
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("region %q: %s", e.ID, e.Reason)
}

// RawRegion is one wall segment as delivered by the segmentation service,
// before normalization. Mask holds one of:
//   - a path data string ("M x,y L x,y ... Z", possibly multi-contour),
//   - a [][2]float64 list of sampled boundary coordinates.
//
// RowCol marks coordinate lists that arrive as [row, col] pairs and need the
// row->y, col->x axis swap. The service has emitted both conventions over
// time; nothing downstream of Normalize ever sees the difference.
type RawRegion struct {
	ID         string
	Mask       any
	RowCol     bool
	Area       float64
	Confidence float64
}

// Normalize converts a raw service region into the internal path
// representation. Output geometry is always in image pixel space with origin
// (0,0) at the image top-left; display scaling is applied only at render and
// hit-test time.
//
// A coordinate list with fewer than 3 points is returned as-is in a single
// degenerate contour rather than rejected: hit tests simply never match it.
func Normalize(raw RawRegion) (Region, error) {
	reg := Region{
		ID:         raw.ID,
		Area:       raw.Area,
		Confidence: raw.Confidence,
	}

	switch mask := raw.Mask.(type) {
	case string:
		path, err := ParsePathData(mask)
		if err != nil {
			return Region{}, &GeometryError{ID: raw.ID, Reason: err.Error()}
		}
		reg.Boundary = path

	case [][2]float64:
		contour := make(Contour, len(mask))
		for i, pair := range mask {
			if raw.RowCol {
				contour[i] = geometry.Point2D{X: pair[1], Y: pair[0]}
			} else {
				contour[i] = geometry.Point2D{X: pair[0], Y: pair[1]}
			}
		}
		reg.Boundary = Path{contour}

	case Path:
		reg.Boundary = mask

	default:
		return Region{}, &GeometryError{ID: raw.ID, Reason: fmt.Sprintf("unsupported mask encoding %T", raw.Mask)}
	}

	if reg.Area == 0 {
		for _, c := range reg.Boundary {
			reg.Area += geometry.PolygonArea(c)
		}
	}

	return reg, nil
}

// NormalizeAll normalizes a detection result, dropping regions with
// malformed geometry. The returned error list parallels the dropped inputs.
func NormalizeAll(raws []RawRegion) ([]Region, []error) {
	regions := make([]Region, 0, len(raws))
	var errs []error
	for _, raw := range raws {
		reg, err := Normalize(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		regions = append(regions, reg)
	}
	return regions, errs
}
