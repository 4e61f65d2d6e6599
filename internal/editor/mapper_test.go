package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

func TestMapperRoundTrip(t *testing.T) {
	native := geometry.NewSize(4000, 3000)
	display := geometry.NewRect(-120.5, 64.25, 4000*0.37, 3000*0.37)
	m := NewMapper(display, native)
	require.True(t, m.Ready())

	for _, p := range []geometry.Point2D{
		{X: -120.5, Y: 64.25},
		{X: 500, Y: 400},
		{X: 1359.5, Y: 1174.25},
	} {
		n, _ := m.ScreenToNative(p)
		back := m.NativeToScreen(n)
		assert.InDelta(t, p.X, back.X, 1e-6)
		assert.InDelta(t, p.Y, back.Y, 1e-6)
	}
}

func TestMapperInBounds(t *testing.T) {
	m := NewMapper(geometry.NewRect(0, 0, 200, 100), geometry.NewSize(400, 200))

	n, in := m.ScreenToNative(geometry.NewPoint2D(150, 25))
	assert.True(t, in)
	assert.InDelta(t, 300, n.X, 1e-6)
	assert.InDelta(t, 50, n.Y, 1e-6)

	_, in = m.ScreenToNative(geometry.NewPoint2D(-1, 50))
	assert.False(t, in)
	_, in = m.ScreenToNative(geometry.NewPoint2D(100, 150))
	assert.False(t, in)
}

func TestMapperNotReady(t *testing.T) {
	var m Mapper
	assert.False(t, m.Ready())
	_, in := m.ScreenToNative(geometry.NewPoint2D(10, 10))
	assert.False(t, in)
	assert.Equal(t, geometry.Point2D{}, m.NativeToScreen(geometry.NewPoint2D(10, 10)))

	m = NewMapper(geometry.Rect{}, geometry.NewSize(100, 100))
	assert.False(t, m.Ready(), "a degenerate display rectangle cannot be mapped")
}

func TestMapperClampNative(t *testing.T) {
	m := NewMapper(geometry.NewRect(0, 0, 400, 300), geometry.NewSize(400, 300))
	assert.Equal(t, geometry.NewPoint2D(0, 0), m.ClampNative(geometry.NewPoint2D(-5, -9)))
	assert.Equal(t, geometry.NewPoint2D(400, 300), m.ClampNative(geometry.NewPoint2D(900, 900)))
	assert.Equal(t, geometry.NewPoint2D(123, 45), m.ClampNative(geometry.NewPoint2D(123, 45)))
}

func TestPointerMapsThroughViewport(t *testing.T) {
	s := newTestSession(t, 400, 300)
	s.SetZoom(2)
	s.SetPan(100, 50)

	s.PointerDown(geometry.NewPoint2D(300, 250)) // native (200, 150)
	s.PointerUp()

	region := s.Regions()[0]
	assert.Equal(t, uint8(255), region.Surface.RGBA().RGBAAt(200, 150).A,
		"paint lands where the image point sits under the pointer")
	assert.InDelta(t, 200, s.LastPointer().X, 1e-6)
	assert.InDelta(t, 150, s.LastPointer().Y, 1e-6)
}

func TestStrokeUnaffectedByZoomChange(t *testing.T) {
	s := newTestSession(t, 400, 300)

	s.PointerDown(geometry.NewPoint2D(100, 100))
	s.PointerUp()
	before := s.Regions()[0].Surface.Pixels()

	s.SetZoom(4)
	s.SetPan(33, 77)
	assert.Equal(t, before, s.Regions()[0].Surface.Pixels(),
		"pan and zoom are presentation only")
}

func TestViewportZoomClamps(t *testing.T) {
	v := NewViewport()
	v.SetZoom(0.01)
	assert.InDelta(t, MinZoom, v.Zoom, 1e-9)
	v.SetZoom(50)
	assert.InDelta(t, MaxZoom, v.Zoom, 1e-9)

	v.SetZoom(1)
	for i := 0; i < 40; i++ {
		v.ZoomIn()
	}
	assert.LessOrEqual(t, v.Zoom, MaxZoom)
	for i := 0; i < 80; i++ {
		v.ZoomOut()
	}
	assert.GreaterOrEqual(t, v.Zoom, MinZoom)
}

func TestViewportDisplayRect(t *testing.T) {
	v := NewViewport()
	v.SetZoom(2)
	v.Pan = geometry.NewPoint2D(100, 50)

	r := v.DisplayRect(geometry.NewSize(400, 300))
	assert.InDelta(t, -100, r.X, 1e-9)
	assert.InDelta(t, -50, r.Y, 1e-9)
	assert.InDelta(t, 800, r.Width, 1e-9)
	assert.InDelta(t, 600, r.Height, 1e-9)
}

func TestFitZoom(t *testing.T) {
	assert.InDelta(t, 0.475, FitZoom(1000, 800, 2000, 1000), 1e-9)
	assert.InDelta(t, 1, FitZoom(0, 800, 2000, 1000), 1e-9)
	assert.InDelta(t, MinZoom, FitZoom(10, 10, 100000, 100000), 1e-9)
	assert.InDelta(t, MaxZoom, FitZoom(100000, 100000, 10, 10), 1e-9)
}
