// Package image provides room photo loading and export.
package image

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
)

// Photo is a loaded room photograph, normalized to RGBA.
type Photo struct {
	Path string
	RGBA *image.RGBA
}

// Width returns the photo width in pixels.
func (p *Photo) Width() int {
	if p.RGBA == nil {
		return 0
	}
	return p.RGBA.Bounds().Dx()
}

// Height returns the photo height in pixels.
func (p *Photo) Height() int {
	if p.RGBA == nil {
		return 0
	}
	return p.RGBA.Bounds().Dy()
}

// Bytes returns the raw file contents, for uploading to the detection
// service.
func (p *Photo) Bytes() ([]byte, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// Load loads a photo from the specified path. PNG, JPEG, and TIFF are
// supported.
func Load(path string) (*Photo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Photo{Path: path, RGBA: ToRGBA(img)}, nil
}

// ToRGBA converts any decoded image to RGBA with a zero-origin bounds.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}

// Export writes the raster to path; the extension selects the format.
// JPEG exports use quality 92.
func Export(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(file, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: 92})
	default:
		return fmt.Errorf("unsupported export format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// SupportedExtensions lists the openable file extensions, for file dialogs.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif"}
}
