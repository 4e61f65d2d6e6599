package annotate

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/raster"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/colorutil"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

// RenderOptions configures overlay rendering.
type RenderOptions struct {
	// Marker badges
	MarkerRadius float64 // base badge radius before resolution scaling
	ReferenceDim float64 // native dimension the base sizes are tuned for
	RingWidth    float64 // white ring stroke width

	// Rectangle labels
	RectLabelSize float64 // chip text size before scaling

	// Selection
	DashLength   float64
	GapLength    float64
	OutlineWidth float64
}

// DefaultRenderOptions returns the rendering defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		MarkerRadius:  16,
		ReferenceDim:  1500,
		RingWidth:     2,
		RectLabelSize: 14,
		DashLength:    6,
		GapLength:     4,
		OutlineWidth:  1.5,
	}
}

// resolutionScale grows overlay chrome on large images so badges stay
// legible, never shrinking below the tuned size.
func (o RenderOptions) resolutionScale(w, h int) float64 {
	maxDim := float64(w)
	if float64(h) > maxDim {
		maxDim = float64(h)
	}
	s := maxDim / o.ReferenceDim
	if s < 1 {
		s = 1
	}
	return s
}

// RenderMaskPreview recomposites every region raster onto the shared
// preview surface, in creation order. The preview is cleared first, so the
// operation is idempotent.
func RenderMaskPreview(dst *raster.Surface, regions []*Region) {
	dst.Clear()
	for _, r := range regions {
		if r.Surface == nil {
			continue
		}
		raster.DrawOver(dst.RGBA(), r.Surface.RGBA())
	}
}

// RenderMarkers redraws every region's numbered badge and rectangle label
// chip onto the marker overlay.
func RenderMarkers(dst *raster.Surface, regions []*Region, opts RenderOptions) {
	dst.Clear()
	scale := opts.resolutionScale(dst.Width(), dst.Height())
	dc := dst.Context()

	for _, r := range regions {
		if r.Marker != nil {
			drawBadge(dc, r, *r.Marker, opts.MarkerRadius*scale, opts.RingWidth*scale)
		}
		if r.RectLabel != nil {
			drawRectLabel(dc, r, opts.RectLabelSize*scale)
		}
	}
}

func drawBadge(dc *gg.Context, r *Region, at geometry.Point2D, radius, ring float64) {
	x, y := at.X, at.Y

	// Drop shadow, offset toward the lower right.
	dc.SetRGBA(0, 0, 0, 0.35)
	dc.DrawCircle(x+radius*0.12, y+radius*0.12, radius)
	dc.Fill()

	dc.SetColor(colorutil.ParseHex(r.Color))
	dc.DrawCircle(x, y, radius)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, 1)
	dc.SetLineWidth(ring)
	dc.DrawCircle(x, y, radius)
	dc.Stroke()

	dc.SetFontFace(Face(radius * 1.1))
	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawStringAnchored(r.ID, x, y, 0.5, 0.5)
}

func drawRectLabel(dc *gg.Context, r *Region, size float64) {
	face := Face(size)
	dc.SetFontFace(face)
	w := MeasureString(size, r.ID)
	h := LineHeight(size)
	padX := size * 0.45
	x, y := r.RectLabel.X, r.RectLabel.Y

	dc.SetColor(colorutil.ParseHex(r.Color))
	dc.DrawRoundedRectangle(x, y, w+2*padX, h, size*0.25)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawStringAnchored(r.ID, x+padX+w/2, y+h/2, 0.5, 0.35)
}

// OverlayState carries the transient annotation display state: which text
// is selected (outline plus handle), which is hidden behind a live entry
// widget, and an in-flight arrow preview.
type OverlayState struct {
	SelectedID   string
	HiddenTextID string
	PreviewArrow *ArrowAnnotation
}

// RenderAnnotations redraws the full text/arrow overlay.
func RenderAnnotations(dst *raster.Surface, texts []*TextAnnotation, arrows []*ArrowAnnotation, state OverlayState, opts RenderOptions) {
	dst.Clear()
	scale := opts.resolutionScale(dst.Width(), dst.Height())
	dc := dst.Context()

	for _, a := range arrows {
		drawArrow(dc, a)
	}
	if state.PreviewArrow != nil {
		drawArrow(dc, state.PreviewArrow)
	}

	for _, t := range texts {
		if t.ID == state.HiddenTextID {
			continue
		}
		drawText(dc, t)
		if t.ID == state.SelectedID {
			drawSelection(dc, t, opts, scale)
		}
	}
}

func drawArrow(dc *gg.Context, a *ArrowAnnotation) {
	dc.SetColor(colorutil.ParseHex(a.Color))

	shaftEnd := a.ShaftEnd()
	dc.SetLineWidth(a.LineWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.DrawLine(a.Start.X, a.Start.Y, shaftEnd.X, shaftEnd.Y)
	dc.Stroke()

	head := a.Head()
	dc.MoveTo(head[0].X, head[0].Y)
	dc.LineTo(head[1].X, head[1].Y)
	dc.LineTo(head[2].X, head[2].Y)
	dc.ClosePath()
	dc.Fill()
}

func drawText(dc *gg.Context, t *TextAnnotation) {
	layout := t.Layout()
	face := Face(t.FontSize)
	dc.SetFontFace(face)
	dc.SetColor(colorutil.ParseHex(t.Color))

	ascent := float64(face.Metrics().Ascent) / 64.0
	for i, line := range layout.Lines {
		dc.DrawString(line, t.X, t.Y+layout.LineHeight*float64(i)+ascent)
	}
}

func drawSelection(dc *gg.Context, t *TextAnnotation, opts RenderOptions, scale float64) {
	box := t.PaddedBounds()

	dc.SetRGBA(1, 1, 1, 0.9)
	dc.SetLineWidth(opts.OutlineWidth * scale)
	dc.SetDash(opts.DashLength*scale, opts.GapLength*scale)
	dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	dc.Stroke()
	dc.SetDash()

	handle := t.HandleRect()
	dc.SetColor(colorutil.ParseHex(t.Color))
	dc.DrawRectangle(handle.X, handle.Y, handle.Width, handle.Height)
	dc.Fill()
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.SetLineWidth(math.Max(1, scale))
	dc.DrawRectangle(handle.X, handle.Y, handle.Width, handle.Height)
	dc.Stroke()
}
