package raster

import "image"

// LayerStore owns the shared surfaces of an editing session: the base
// image, the mask preview, the marker badge overlay, and the annotation
// overlay, all at the base image's native resolution. Region surfaces are
// allocated here too, but owned by their regions.
type LayerStore struct {
	width  int
	height int

	base        *Surface
	preview     *Surface
	markers     *Surface
	annotations *Surface
	scratch     *Surface
}

// NewLayerStore builds a store around a decoded base image surface.
func NewLayerStore(base *Surface) *LayerStore {
	w, h := base.Width(), base.Height()
	return &LayerStore{
		width:       w,
		height:      h,
		base:        base,
		preview:     NewSurface(w, h),
		markers:     NewSurface(w, h),
		annotations: NewSurface(w, h),
		scratch:     NewSurface(w, h),
	}
}

// Width returns the native width in pixels.
func (ls *LayerStore) Width() int { return ls.width }

// Height returns the native height in pixels.
func (ls *LayerStore) Height() int { return ls.height }

// Base returns the base image surface.
func (ls *LayerStore) Base() *Surface { return ls.base }

// Preview returns the shared mask preview surface that region rasters are
// composited onto.
func (ls *LayerStore) Preview() *Surface { return ls.preview }

// Markers returns the marker badge overlay.
func (ls *LayerStore) Markers() *Surface { return ls.markers }

// Annotations returns the text/arrow overlay.
func (ls *LayerStore) Annotations() *Surface { return ls.annotations }

// NewRegionSurface allocates a transparent raster for a new region.
func (ls *LayerStore) NewRegionSurface() *Surface {
	return NewSurface(ls.width, ls.height)
}

// Scratch returns the shared scratch surface used for two-step composites
// (stroke onto scratch, then apply with an operator). The caller clears it
// before use.
func (ls *LayerStore) Scratch() *Surface { return ls.scratch }

// Flatten composites the display stack in order: base, mask preview,
// markers, annotations. The result is a fresh buffer at native size.
func (ls *LayerStore) Flatten() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, ls.width, ls.height))
	copy(out.Pix, ls.base.RGBA().Pix)
	DrawOver(out, ls.preview.RGBA())
	DrawOver(out, ls.markers.RGBA())
	DrawOver(out, ls.annotations.RGBA())
	return out
}
