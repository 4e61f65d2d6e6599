package editor

import (
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

// Mapper converts between viewport (screen) coordinates and native image
// pixels. It is built from the rectangle the image actually occupies on
// screen, so it stays correct no matter what combination of pan and zoom
// produced that rectangle.
type Mapper struct {
	toNative geometry.AffineTransform
	toScreen geometry.AffineTransform
	native   geometry.Size
	ready    bool
}

// NewMapper derives the screen/native mapping from the rendered display
// rectangle. A degenerate rectangle (image not laid out yet) yields a
// not-ready mapper whose conversions are safe no-ops.
func NewMapper(displayRect geometry.Rect, native geometry.Size) Mapper {
	if native.Width <= 0 || native.Height <= 0 {
		return Mapper{}
	}
	nativeRect := geometry.Rect{Width: native.Width, Height: native.Height}
	toNative, err := geometry.FitRectMapping(displayRect, nativeRect)
	if err != nil {
		return Mapper{}
	}
	toScreen, ok := toNative.Inverse()
	if !ok {
		return Mapper{}
	}
	return Mapper{toNative: toNative, toScreen: toScreen, native: native, ready: true}
}

// Ready reports whether the mapper has a usable geometry.
func (m Mapper) Ready() bool { return m.ready }

// ScreenToNative maps a viewport point to native pixels. The second return
// is false when the mapper is not ready or the point falls outside the
// image.
func (m Mapper) ScreenToNative(p geometry.Point2D) (geometry.Point2D, bool) {
	if !m.ready {
		return geometry.Point2D{}, false
	}
	n := m.toNative.Apply(p)
	in := n.X >= 0 && n.X <= m.native.Width && n.Y >= 0 && n.Y <= m.native.Height
	return n, in
}

// NativeToScreen maps a native pixel position to viewport coordinates. A
// not-ready mapper returns the zero point.
func (m Mapper) NativeToScreen(p geometry.Point2D) geometry.Point2D {
	if !m.ready {
		return geometry.Point2D{}
	}
	return m.toScreen.Apply(p)
}

// ClampNative clamps a native point into the image bounds, keeping stroke
// segments that wander off the edge attached to it.
func (m Mapper) ClampNative(p geometry.Point2D) geometry.Point2D {
	if p.X < 0 {
		p.X = 0
	} else if p.X > m.native.Width {
		p.X = m.native.Width
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y > m.native.Height {
		p.Y = m.native.Height
	}
	return p
}
