// Package raster provides native-resolution pixel surfaces and the
// compositing operations the editor paints with.
package raster

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/fogleman/gg"
)

// Surface is an off-screen RGBA buffer with a vector drawing context
// attached. All surfaces in a session share the base image's native pixel
// dimensions; pan and zoom never touch them.
type Surface struct {
	img *image.RGBA
	ctx *gg.Context
}

// NewSurface allocates a fully transparent surface.
func NewSurface(width, height int) *Surface {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Surface{img: img, ctx: gg.NewContextForRGBA(img)}
}

// NewSurfaceFromImage copies src into a new surface, normalizing whatever
// subformat the decoder produced.
func NewSurfaceFromImage(src image.Image) *Surface {
	img := clone.AsRGBA(src)
	// Re-origin so Pix indexing starts at zero regardless of source bounds.
	if img.Bounds().Min != (image.Point{}) {
		norm := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		copy(norm.Pix, img.Pix)
		img = norm
	}
	return &Surface{img: img, ctx: gg.NewContextForRGBA(img)}
}

// Width returns the surface width in native pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in native pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// RGBA exposes the backing image. Callers must not retain it across a
// SetPixels call.
func (s *Surface) RGBA() *image.RGBA { return s.img }

// Context returns the vector drawing context rendering into this surface.
func (s *Surface) Context() *gg.Context { return s.ctx }

// Clear resets every pixel to fully transparent.
func (s *Surface) Clear() {
	pix := s.img.Pix
	for i := range pix {
		pix[i] = 0
	}
}

// Pixels returns an independent copy of the raw RGBA bytes.
func (s *Surface) Pixels() []byte {
	out := make([]byte, len(s.img.Pix))
	copy(out, s.img.Pix)
	return out
}

// SetPixels overwrites the surface with a buffer previously obtained from
// Pixels on a surface of the same dimensions.
func (s *Surface) SetPixels(p []byte) error {
	if len(p) != len(s.img.Pix) {
		return fmt.Errorf("pixel buffer size mismatch: %d vs %d", len(p), len(s.img.Pix))
	}
	copy(s.img.Pix, p)
	return nil
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	out := NewSurface(s.Width(), s.Height())
	copy(out.img.Pix, s.img.Pix)
	return out
}
