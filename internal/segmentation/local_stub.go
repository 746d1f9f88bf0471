//go:build !gocv
// +build !gocv

package segmentation

import (
	"context"
	"errors"

	"roompainter/internal/region"

	"github.com/sirupsen/logrus"
)

// LocalDetector is only functional when built with the gocv tag. This stub
// keeps the default build free of the OpenCV toolchain.
type LocalDetector struct {
	MinAreaRatio float64
	MaxSide      int
	Epsilon      float64

	log *logrus.Logger
}

// NewLocalDetector returns the stub detector.
func NewLocalDetector(log *logrus.Logger) *LocalDetector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LocalDetector{
		MinAreaRatio: 0.04,
		MaxSide:      1024,
		Epsilon:      3.0,
		log:          log,
	}
}

// DetectWalls always fails without the gocv build tag.
func (d *LocalDetector) DetectWalls(ctx context.Context, imageID string) ([]region.RawRegion, error) {
	_ = ctx
	_ = imageID
	return nil, errors.New("local detection requires the gocv build tag")
}

// LocalUploader pairs with LocalDetector: the "image id" is simply the file
// path, since everything happens in-process.
type LocalUploader struct{}

// Upload records nothing; filename must be a readable path.
func (LocalUploader) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	_ = ctx
	_ = data
	return filename, nil
}
