package annotate

import (
	"math"

	"github.com/google/uuid"

	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

const (
	arrowHeadPerWidth = 4.0
	arrowHeadMin      = 12.0
	arrowHeadMax      = 48.0
)

// ArrowAnnotation is a straight arrow in native image coordinates with a
// filled triangular head at End.
type ArrowAnnotation struct {
	ID        string           `json:"id"`
	Start     geometry.Point2D `json:"start"`
	End       geometry.Point2D `json:"end"`
	Color     string           `json:"color"`
	LineWidth float64          `json:"lineWidth"`
}

// NewArrowAnnotation creates an arrow between two native points.
func NewArrowAnnotation(start, end geometry.Point2D, color string, lineWidth float64) *ArrowAnnotation {
	return &ArrowAnnotation{
		ID:        uuid.NewString(),
		Start:     start,
		End:       end,
		Color:     color,
		LineWidth: lineWidth,
	}
}

// HeadLength returns the arrowhead length, proportional to the line width
// and clamped to stay visible without dwarfing short arrows.
func (a *ArrowAnnotation) HeadLength() float64 {
	l := a.LineWidth * arrowHeadPerWidth
	if l < arrowHeadMin {
		l = arrowHeadMin
	}
	if l > arrowHeadMax {
		l = arrowHeadMax
	}
	return l
}

// Head returns the filled head triangle: tip first, then the two base
// corners. A zero-length arrow points along +X so preview drawing stays
// stable while the drag has not moved yet.
func (a *ArrowAnnotation) Head() [3]geometry.Point2D {
	dx := a.End.X - a.Start.X
	dy := a.End.Y - a.Start.Y
	length := math.Hypot(dx, dy)

	ux, uy := 1.0, 0.0
	if length > 0 {
		ux, uy = dx/length, dy/length
	}

	headLen := a.HeadLength()
	baseX := a.End.X - ux*headLen
	baseY := a.End.Y - uy*headLen
	halfW := headLen * 0.5
	// Perpendicular unit vector.
	nx, ny := -uy, ux

	return [3]geometry.Point2D{
		a.End,
		{X: baseX + nx*halfW, Y: baseY + ny*halfW},
		{X: baseX - nx*halfW, Y: baseY - ny*halfW},
	}
}

// ShaftEnd returns where the stroked shaft stops so it does not poke out of
// the head triangle.
func (a *ArrowAnnotation) ShaftEnd() geometry.Point2D {
	head := a.Head()
	return geometry.Point2D{
		X: (head[1].X + head[2].X) / 2,
		Y: (head[1].Y + head[2].Y) / 2,
	}
}

// Bounds returns the axis-aligned box covering shaft and head.
func (a *ArrowAnnotation) Bounds() geometry.Rect {
	head := a.Head()
	pts := []geometry.Point2D{a.Start, a.End, head[1], head[2]}
	return geometry.BoundingBox(pts).Inset(-a.LineWidth / 2)
}
