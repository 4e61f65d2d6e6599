package raster

import (
	"image"
	"image/color"
)

// The operators below work on alpha-premultiplied RGBA buffers of equal
// dimensions, pixel by pixel. They are the compositing vocabulary the
// editor needs: normal painting, non-destructive erasing, and the stencil
// pair that turns painted layers into strictly binary masks.

// DrawOver composites src onto dst with source-over.
func DrawOver(dst, src *image.RGBA) {
	dp, sp := dst.Pix, src.Pix
	n := len(dp)
	if len(sp) < n {
		n = len(sp)
	}
	for i := 0; i+3 < n; i += 4 {
		sa := uint32(sp[i+3])
		if sa == 0 {
			continue
		}
		if sa == 255 {
			dp[i] = sp[i]
			dp[i+1] = sp[i+1]
			dp[i+2] = sp[i+2]
			dp[i+3] = 255
			continue
		}
		inv := 255 - sa
		dp[i] = uint8(uint32(sp[i]) + uint32(dp[i])*inv/255)
		dp[i+1] = uint8(uint32(sp[i+1]) + uint32(dp[i+1])*inv/255)
		dp[i+2] = uint8(uint32(sp[i+2]) + uint32(dp[i+2])*inv/255)
		dp[i+3] = uint8(sa + uint32(dp[i+3])*inv/255)
	}
}

// EraseOut composites src onto dst with destination-out: wherever src has
// coverage, dst is thinned toward transparency. Opaque src pixels remove
// dst entirely.
func EraseOut(dst, src *image.RGBA) {
	dp, sp := dst.Pix, src.Pix
	n := len(dp)
	if len(sp) < n {
		n = len(sp)
	}
	for i := 0; i+3 < n; i += 4 {
		sa := uint32(sp[i+3])
		if sa == 0 {
			continue
		}
		if sa == 255 {
			dp[i] = 0
			dp[i+1] = 0
			dp[i+2] = 0
			dp[i+3] = 0
			continue
		}
		inv := 255 - sa
		dp[i] = uint8(uint32(dp[i]) * inv / 255)
		dp[i+1] = uint8(uint32(dp[i+1]) * inv / 255)
		dp[i+2] = uint8(uint32(dp[i+2]) * inv / 255)
		dp[i+3] = uint8(uint32(dp[i+3]) * inv / 255)
	}
}

// FillThroughAlpha repaints every covered pixel as the given opaque color.
// Any coverage at all counts as full: anti-aliased fringes saturate rather
// than staying partially transparent.
func FillThroughAlpha(dst *image.RGBA, c color.RGBA) {
	dp := dst.Pix
	for i := 0; i+3 < len(dp); i += 4 {
		if dp[i+3] == 0 {
			continue
		}
		dp[i] = c.R
		dp[i+1] = c.G
		dp[i+2] = c.B
		dp[i+3] = 255
	}
}

// FillBehind paints the given opaque color behind the existing content
// (destination-over with a uniform source).
func FillBehind(dst *image.RGBA, c color.RGBA) {
	dp := dst.Pix
	for i := 0; i+3 < len(dp); i += 4 {
		da := uint32(dp[i+3])
		if da == 255 {
			continue
		}
		inv := 255 - da
		dp[i] = uint8(uint32(dp[i]) + uint32(c.R)*inv/255)
		dp[i+1] = uint8(uint32(dp[i+1]) + uint32(c.G)*inv/255)
		dp[i+2] = uint8(uint32(dp[i+2]) + uint32(c.B)*inv/255)
		dp[i+3] = 255
	}
}

// Binarize renders a painted layer as a strict black/white mask: covered
// pixels become pure white, everything else pure black. The stencil fill
// runs before the backfill so anti-aliased stroke edges cannot come out
// gray.
func Binarize(src *image.RGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	FillThroughAlpha(out, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	FillBehind(out, color.RGBA{A: 255})
	return out
}
