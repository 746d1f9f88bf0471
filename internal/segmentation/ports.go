// Package segmentation is the boundary to the external wall-detection and
// decoration-analysis services. The compositing engine never talks to these
// services directly; it consumes normalized regions and read-only analysis
// text.
package segmentation

import (
	"context"

	"roompainter/internal/region"
)

// Uploader stores raw image bytes with the service and returns the opaque
// image identifier used by all subsequent calls.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// Detector returns the ordered wall segments found in a previously uploaded
// image. Masks come back in whichever encoding the service produced; callers
// pass them through region.Normalize.
type Detector interface {
	DetectWalls(ctx context.Context, imageID string) ([]region.RawRegion, error)
}

// Analysis is the decoration critique for a room photo. It is display-only;
// nothing in the compositing engine depends on it.
type Analysis struct {
	Background  string   `json:"background"`
	GoodPoints  []string `json:"good_points"`
	BadPoints   []string `json:"bad_points"`
	Suggestions []string `json:"suggestions"`
}

// Advisor produces a decoration critique for an uploaded image.
type Advisor interface {
	Analyze(ctx context.Context, imageID string) (*Analysis, error)
}
