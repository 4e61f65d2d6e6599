// Package colorutil provides shared color utilities for the mask editor.
package colorutil

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Common overlay colors used throughout the application.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Palette is the default paint color cycle for new regions, as hex strings.
var Palette = []string{
	"#ef4444", // red
	"#3b82f6", // blue
	"#22c55e", // green
	"#eab308", // yellow
	"#a855f7", // purple
	"#f97316", // orange
	"#06b6d4", // cyan
	"#ec4899", // pink
}

// PaletteColor returns the palette entry for the n-th region, wrapping.
func PaletteColor(n int) string {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}

// ParseHex parses a "#rrggbb" or "#rgb" color string. Unparseable input
// falls back to opaque black, matching the stroke color the canvas would
// default to.
func ParseHex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FormatHex renders a color as a "#rrggbb" string, ignoring alpha.
func FormatHex(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// WithAlpha returns the color with its alpha replaced, premultiplying the
// channels the way image/draw expects.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(a) / 255),
		G: uint8(uint16(c.G) * uint16(a) / 255),
		B: uint8(uint16(c.B) * uint16(a) / 255),
		A: a,
	}
}
