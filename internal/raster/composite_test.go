package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestDrawOverOpaqueReplaces(t *testing.T) {
	dst := solid(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src := solid(4, 4, color.RGBA{R: 200, G: 0, B: 0, A: 255})
	DrawOver(dst, src)
	assert.Equal(t, color.RGBA{R: 200, G: 0, B: 0, A: 255}, dst.RGBAAt(1, 1))
}

func TestDrawOverTransparentKeepsDst(t *testing.T) {
	dst := solid(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	DrawOver(dst, src)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, dst.RGBAAt(2, 3))
}

func TestDrawOverBlendsPartialAlpha(t *testing.T) {
	dst := solid(1, 1, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	// Premultiplied half-coverage white.
	src := solid(1, 1, color.RGBA{R: 128, G: 128, B: 128, A: 128})
	DrawOver(dst, src)
	got := dst.RGBAAt(0, 0)
	assert.Equal(t, uint8(255), got.A)
	assert.InDelta(t, 128, int(got.R), 1)
}

func TestEraseOutRemovesCoverage(t *testing.T) {
	dst := solid(4, 4, color.RGBA{R: 200, G: 0, B: 0, A: 255})
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	// Opaque eraser dab on a single pixel.
	src.SetRGBA(2, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	EraseOut(dst, src)
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{R: 200, G: 0, B: 0, A: 255}, dst.RGBAAt(0, 0))
}

func TestEraseOutPartialThins(t *testing.T) {
	dst := solid(1, 1, color.RGBA{R: 200, G: 100, B: 0, A: 255})
	src := solid(1, 1, color.RGBA{R: 128, G: 128, B: 128, A: 128})
	EraseOut(dst, src)
	got := dst.RGBAAt(0, 0)
	assert.Less(t, got.A, uint8(255))
	assert.Greater(t, got.A, uint8(0))
}

func TestBinarizeIsStrictlyBlackWhite(t *testing.T) {
	layer := NewSurface(64, 64)
	dc := layer.Context()
	dc.SetRGBA(0.93, 0.27, 0.27, 1)
	dc.SetLineWidth(9)
	dc.DrawLine(5, 5, 59, 48)
	dc.Stroke()

	mask := Binarize(layer.RGBA())

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	sawWhite, sawBlack := false, false
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			px := mask.RGBAAt(x, y)
			switch px {
			case white:
				sawWhite = true
			case black:
				sawBlack = true
			default:
				t.Fatalf("non-binary pixel %v at (%d,%d)", px, x, y)
			}
		}
	}
	assert.True(t, sawWhite, "stroke should cover some pixels")
	assert.True(t, sawBlack, "background should stay black")
}

func TestBinarizeCoverageFollowsStroke(t *testing.T) {
	layer := NewSurface(32, 32)
	dc := layer.Context()
	dc.SetRGBA(0, 0, 1, 1)
	dc.DrawCircle(16, 16, 6)
	dc.Fill()

	mask := Binarize(layer.RGBA())
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, mask.RGBAAt(16, 16))
	assert.Equal(t, color.RGBA{A: 255}, mask.RGBAAt(2, 2))
}

func TestSurfacePixelsRoundTrip(t *testing.T) {
	s := NewSurface(16, 16)
	dc := s.Context()
	dc.SetRGBA(1, 0, 0, 1)
	dc.DrawRectangle(2, 2, 8, 8)
	dc.Fill()

	snap := s.Pixels()
	dc.DrawRectangle(10, 10, 4, 4)
	dc.Fill()
	require.NotEqual(t, snap, s.Pixels())

	require.NoError(t, s.SetPixels(snap))
	assert.Equal(t, snap, s.Pixels())

	assert.Error(t, s.SetPixels(make([]byte, 3)))
}

func TestSurfaceCloneIsIndependent(t *testing.T) {
	s := NewSurface(8, 8)
	s.Context().SetRGBA(0, 1, 0, 1)
	s.Context().DrawCircle(4, 4, 3)
	s.Context().Fill()

	c := s.Clone()
	require.Equal(t, s.Pixels(), c.Pixels())

	s.Clear()
	assert.NotEqual(t, s.Pixels(), c.Pixels())
}

func TestLayerStoreFlattenOrder(t *testing.T) {
	base := NewSurface(8, 8)
	base.Context().SetRGBA(1, 1, 1, 1)
	base.Context().Clear()

	ls := NewLayerStore(base)
	ls.Preview().RGBA().SetRGBA(1, 1, color.RGBA{R: 255, A: 255})
	ls.Markers().RGBA().SetRGBA(1, 1, color.RGBA{G: 255, A: 255})
	ls.Annotations().RGBA().SetRGBA(1, 1, color.RGBA{B: 255, A: 255})

	out := ls.Flatten()
	// Topmost layer wins where everything overlaps.
	assert.Equal(t, color.RGBA{B: 255, A: 255}, out.RGBAAt(1, 1))
	// Elsewhere the base shows through.
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(5, 5))
}
