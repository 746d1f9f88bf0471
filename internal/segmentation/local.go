//go:build gocv
// +build gocv

package segmentation

import (
	"context"
	"errors"
	"fmt"
	"image"

	"roompainter/internal/region"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// LocalDetector finds wall-like segments without the remote service. It is a
// contour heuristic, not a trained model: large, low-texture areas bounded by
// strong edges. Good enough for offline use and testing; the remote Detector
// is the quality path.
type LocalDetector struct {
	// MinAreaRatio discards contours smaller than this fraction of the
	// image.
	MinAreaRatio float64

	// MaxSide caps the working resolution; detected boundaries are scaled
	// back to the source image.
	MaxSide int

	// Epsilon is the polygon simplification tolerance in pixels at working
	// resolution.
	Epsilon float64

	log *logrus.Logger
}

// NewLocalDetector returns a detector with tuned defaults.
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

// DetectWalls segments the image passed as raw bytes via Upload. The local
// detector has no session store, so imageID is the file path recorded by
// LocalUploader.
func (d *LocalDetector) DetectWalls(ctx context.Context, imageID string) ([]region.RawRegion, error) {
	_ = ctx

	mat := gocv.IMRead(imageID, gocv.IMReadColor)
	if mat.Empty() {
		return nil, fmt.Errorf("local detect: cannot read %s", imageID)
	}
	defer mat.Close()

	srcW := mat.Cols()
	srcH := mat.Rows()

	scale := 1.0
	if srcW > d.MaxSide || srcH > d.MaxSide {
		scale = float64(d.MaxSide) / float64(max(srcW, srcH))
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(int(float64(srcW)*scale), int(float64(srcH)*scale)), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blur, &edges, 40, 120)

	// Thicken edges so adjacent surfaces separate, then look for the flat
	// areas between them.
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(5, 5))
	defer kernel.Close()
	gocv.Dilate(edges, &edges, kernel)
	gocv.BitwiseNot(edges, &edges)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	minArea := float64(mat.Cols()*mat.Rows()) * d.MinAreaRatio
	total := float64(mat.Cols() * mat.Rows())

	var raws []region.RawRegion
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		if area < minArea {
			continue
		}

		approx := gocv.ApproxPolyDP(c, d.Epsilon, true)
		pts := approx.ToPoints()
		approx.Close()
		if len(pts) < 3 {
			continue
		}

		pairs := make([][2]float64, len(pts))
		for j, pt := range pts {
			pairs[j] = [2]float64{float64(pt.X) / scale, float64(pt.Y) / scale}
		}

		raws = append(raws, region.RawRegion{
			ID:         fmt.Sprintf("local-%d", len(raws)),
			Mask:       pairs,
			Area:       area / (scale * scale),
			Confidence: min(area/total*2, 0.9),
		})
	}

	if len(raws) == 0 {
		return nil, errors.New("local detect: no wall-like segments found")
	}

	d.log.WithFields(logrus.Fields{"image": imageID, "walls": len(raws)}).Info("local detection finished")
	return raws, nil
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
