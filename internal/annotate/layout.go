package annotate

import (
	"strings"

	"golang.org/x/image/font"
)

// Layout is the wrapped form of a text annotation's content inside its box.
type Layout struct {
	Lines      []string
	LineHeight float64
	Height     float64
}

// MeasureString returns the advance width in pixels of s at the given size.
func MeasureString(sizePx float64, s string) float64 {
	return advance(Face(sizePx), s)
}

func advance(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64.0
}

// LayoutText wraps text into a box of the given width and returns the
// resulting lines and vertical extent. The result is stable: laying out the
// joined lines again yields the same lines.
func LayoutText(sizePx float64, text string, width float64) Layout {
	lines := WrapText(sizePx, text, width)
	lh := LineHeight(sizePx)
	n := len(lines)
	if n < 1 {
		n = 1
	}
	return Layout{Lines: lines, LineHeight: lh, Height: float64(n) * lh}
}

// WrapText greedily wraps text at spaces so every line fits maxWidth at the
// given font size. Words wider than the box are hard-broken by rune.
// Explicit newlines are kept as paragraph breaks. A non-positive width
// disables wrapping.
func WrapText(sizePx float64, text string, maxWidth float64) []string {
	paras := strings.Split(text, "\n")
	if maxWidth <= 0 {
		return paras
	}
	face := Face(sizePx)
	var lines []string
	for _, para := range paras {
		lines = append(lines, wrapParagraph(face, para, maxWidth)...)
	}
	return lines
}

func wrapParagraph(face font.Face, para string, maxWidth float64) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Split(para, " ") {
		cand := word
		if cur != "" {
			cand = cur + " " + word
		}
		if advance(face, cand) <= maxWidth {
			cur = cand
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		// The word alone overflows the box: break it by rune.
		for advance(face, word) > maxWidth {
			runes := []rune(word)
			if len(runes) <= 1 {
				break
			}
			cut := len(runes) - 1
			for cut > 1 && advance(face, string(runes[:cut])) > maxWidth {
				cut--
			}
			lines = append(lines, string(runes[:cut]))
			word = string(runes[cut:])
		}
		cur = word
	}
	return append(lines, cur)
}
