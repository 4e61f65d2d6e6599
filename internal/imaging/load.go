// Package imaging loads base images for editing sessions.
package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/tiff"
)

// MaxDimension bounds the long edge of a loaded image. Every region surface
// and history snapshot is allocated at native size, so an unscaled 12000 px
// photo would cost hundreds of megabytes once a few strokes land.
const MaxDimension = 4096

// Load reads and decodes an image file. Images larger than MaxDimension on
// either edge are scaled down to fit, preserving aspect ratio.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return FitWithin(img, MaxDimension), nil
}

// FitWithin scales img down so neither edge exceeds max, preserving aspect
// ratio. Images already within the bound are returned unchanged.
func FitWithin(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if max <= 0 || (w <= max && h <= max) {
		return img
	}

	scale := float64(max) / float64(w)
	if h > w {
		scale = float64(max) / float64(h)
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return transform.Resize(img, nw, nh, transform.Linear)
}

// SupportedExtensions lists the image formats the editor opens.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif"}
}

// IsSupported reports whether the path has a recognized image extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
