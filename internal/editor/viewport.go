package editor

import (
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

// Zoom limits and step, shared by wheel zooming and fit-to-window.
const (
	MinZoom   = 0.1
	MaxZoom   = 10.0
	ZoomStep  = 1.25
	fitMargin = 0.95
)

// Viewport is the pan/zoom state of the display. It only affects how the
// native-resolution surfaces are presented; stored coordinates and pixels
// never move with it.
type Viewport struct {
	Zoom float64
	Pan  geometry.Point2D
}

// NewViewport returns a viewport at 1:1 with no pan.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// ZoomIn advances one wheel step.
func (v *Viewport) ZoomIn() {
	v.Zoom = clampZoom(v.Zoom * ZoomStep)
}

// ZoomOut retreats one wheel step.
func (v *Viewport) ZoomOut() {
	v.Zoom = clampZoom(v.Zoom / ZoomStep)
}

// SetZoom sets an absolute zoom, clamped to the legal range.
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = clampZoom(z)
}

// DisplayRect returns where the native image is rendered in viewport
// coordinates: the zoomed image rectangle shifted left and up by the pan.
func (v Viewport) DisplayRect(native geometry.Size) geometry.Rect {
	return geometry.Rect{
		X:      -v.Pan.X,
		Y:      -v.Pan.Y,
		Width:  native.Width * v.Zoom,
		Height: native.Height * v.Zoom,
	}
}

// FitZoom returns the zoom that shows the whole image inside a view of the
// given size, with a small margin.
func FitZoom(viewW, viewH, nativeW, nativeH float64) float64 {
	if nativeW <= 0 || nativeH <= 0 || viewW <= 0 || viewH <= 0 {
		return 1
	}
	zx := viewW / nativeW
	zy := viewH / nativeH
	z := zx
	if zy < z {
		z = zy
	}
	return clampZoom(z * fitMargin)
}
