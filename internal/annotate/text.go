package annotate

import (
	"math"

	"github.com/google/uuid"

	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

const (
	// minWidthEm bounds how narrow a text box can be resized, in font sizes.
	minWidthEm = 3.2
	// selectionPad is the gap between a text box and its selection outline,
	// in native pixels.
	selectionPad = 4.0
	// handleEm sizes the resize handle square relative to the font.
	handleEm = 0.6
	// handleMin is the smallest usable handle side in native pixels.
	handleMin = 10.0
)

// TextAnnotation is a movable, resizable wrapped-text note in native image
// coordinates. X and Y anchor the top-left of the text box. An annotation
// may be linked to a region, in which case Instruction holds the exact line
// it contributes to that region's instruction text.
type TextAnnotation struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Text        string  `json:"text"`
	Color       string  `json:"color"`
	FontSize    float64 `json:"fontSize"`
	RegionID    string  `json:"regionId,omitempty"`
	Instruction string  `json:"instruction,omitempty"`
}

// NewTextAnnotation creates an empty annotation at a native point, with its
// box measured from a single-space sample.
func NewTextAnnotation(x, y, fontSize float64, color string) *TextAnnotation {
	t := &TextAnnotation{
		ID:       uuid.NewString(),
		X:        x,
		Y:        y,
		Color:    color,
		FontSize: fontSize,
	}
	t.Width = math.Max(t.MinWidth(), MeasureString(fontSize, " "))
	t.Height = LineHeight(fontSize)
	return t
}

// MinWidth returns the narrowest box this annotation can be resized to.
func (t *TextAnnotation) MinWidth() float64 {
	return minWidthEm * t.FontSize
}

// Layout wraps the current text inside the current box width.
func (t *TextAnnotation) Layout() Layout {
	return LayoutText(t.FontSize, t.Text, t.Width)
}

// Relayout recomputes the box height from the wrapped text. The box always
// keeps at least one line of height.
func (t *TextAnnotation) Relayout() {
	t.Height = t.Layout().Height
}

// Bounds returns the text box in native coordinates.
func (t *TextAnnotation) Bounds() geometry.Rect {
	return geometry.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// PaddedBounds returns the selection outline rectangle.
func (t *TextAnnotation) PaddedBounds() geometry.Rect {
	return t.Bounds().Inset(-selectionPad)
}

// HandleRect returns the south-east resize handle, a square scaled with the
// font size and centered on the padded corner.
func (t *TextAnnotation) HandleRect() geometry.Rect {
	side := math.Max(handleMin, handleEm*t.FontSize)
	corner := t.PaddedBounds().BottomRight()
	return geometry.Rect{
		X:      corner.X - side/2,
		Y:      corner.Y - side/2,
		Width:  side,
		Height: side,
	}
}
