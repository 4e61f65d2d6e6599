package editor

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/annotate"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/raster"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/colorutil"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

// The gesture model is single-pointer: down starts a gesture, moves extend
// it, up or leave finalizes it. Positions arrive in viewport coordinates
// and are mapped to native pixels before any painting.

// PointerDown begins a gesture at a viewport position.
func (s *Session) PointerDown(screen geometry.Point2D) {
	s.mu.Lock()
	events := s.pointerDownLocked(screen)
	s.mu.Unlock()
	s.emitAll(events)
}

// PointerMove extends the active gesture.
func (s *Session) PointerMove(screen geometry.Point2D) {
	s.mu.Lock()
	events := s.pointerMoveLocked(screen)
	s.mu.Unlock()
	s.emitAll(events)
}

// PointerUp finalizes the active gesture at the last tracked pointer
// position. Release events carry no trustworthy position on every host, so
// none is taken here.
func (s *Session) PointerUp() {
	s.finishGesture()
}

// PointerLeave finalizes exactly like PointerUp: a pointer leaving the
// surface must not leave a gesture dangling.
func (s *Session) PointerLeave() {
	s.finishGesture()
}

func (s *Session) pointerDownLocked(screen geometry.Point2D) []EventType {
	if s.store == nil || s.gesture != gestureNone {
		return nil
	}
	m := s.mapperLocked()
	if !m.Ready() {
		return nil
	}
	native, in := m.ScreenToNative(screen)
	s.lastPointer = m.ClampNative(native)

	switch s.tool {
	case ToolBrush:
		return s.beginStrokeLocked(in, false)
	case ToolEraser:
		return s.beginStrokeLocked(in, true)
	case ToolRect:
		return s.beginRectLocked(in)
	case ToolMarker:
		return s.placeMarkerLocked(in)
	case ToolArrow:
		return s.beginArrowLocked(in)
	case ToolText:
		return s.textPointerDownLocked(native, in)
	default:
		// Pan is handled by the host scroll container.
		return nil
	}
}

func (s *Session) pointerMoveLocked(screen geometry.Point2D) []EventType {
	if s.store == nil {
		return nil
	}
	m := s.mapperLocked()
	if !m.Ready() {
		return nil
	}
	native, _ := m.ScreenToNative(screen)
	prev := s.lastPointer
	s.lastPointer = m.ClampNative(native)

	switch s.gesture {
	case gestureBrush, gestureErase:
		if s.gestureRegion == nil {
			return nil
		}
		s.strokeSegmentLocked(s.gestureRegion, prev, s.lastPointer, s.gesture == gestureErase)
		s.repaintPreviewLocked()
		return []EventType{EventMaskChanged}

	case gestureRect:
		if s.gestureRegion == nil {
			return nil
		}
		s.drawRectPreviewLocked(s.gestureRegion)
		s.repaintPreviewLocked()
		return []EventType{EventMaskChanged}

	case gestureArrow:
		s.previewArrow.End = s.lastPointer
		s.repaintAnnotationsLocked()
		return []EventType{EventOverlaysChanged}

	case gestureTextDrag:
		t := s.textDrag.annotation
		t.X = native.X - s.textDrag.grab.X
		t.Y = native.Y - s.textDrag.grab.Y
		s.textDrag.moved = true
		s.repaintAnnotationsLocked()
		return []EventType{EventOverlaysChanged}

	case gestureTextResize:
		t := s.textDrag.annotation
		w := native.X - t.X
		if min := t.MinWidth(); w < min {
			w = min
		}
		t.Width = w
		t.Relayout()
		s.textDrag.moved = true
		s.repaintAnnotationsLocked()
		return []EventType{EventOverlaysChanged}
	}
	return nil
}

func (s *Session) finishGesture() {
	s.mu.Lock()
	events := s.finishGestureLocked()
	s.mu.Unlock()
	s.emitAll(events)
}

func (s *Session) finishGestureLocked() []EventType {
	switch s.gesture {
	case gestureBrush, gestureErase:
		s.gesture = gestureNone
		s.gestureRegion = nil
		s.pushHistoryLocked()
		return []EventType{EventHistoryChanged}

	case gestureRect:
		region := s.gestureRegion
		s.gesture = gestureNone
		s.gestureRegion = nil
		s.rectBase = nil
		rect := geometry.RectFromCorners(s.gestureStart, s.lastPointer)
		region.RectLabel = &geometry.Point2D{X: rect.X + rectLabelOffset, Y: rect.Y + rectLabelOffset}
		s.repaintMarkersLocked()
		s.pushHistoryLocked()
		return []EventType{EventOverlaysChanged, EventHistoryChanged}

	case gestureArrow:
		arrow := s.previewArrow
		arrow.End = s.lastPointer
		s.arrows = append(s.arrows, arrow)
		s.previewArrow = nil
		s.gesture = gestureNone
		s.repaintAnnotationsLocked()
		s.pushHistoryLocked()
		return []EventType{EventOverlaysChanged, EventHistoryChanged}

	case gestureTextDrag, gestureTextResize:
		moved := s.textDrag != nil && s.textDrag.moved
		s.gesture = gestureNone
		s.textDrag = nil
		if moved {
			s.pushHistoryLocked()
			return []EventType{EventHistoryChanged}
		}
		return nil
	}
	return nil
}

func (s *Session) beginStrokeLocked(in, erase bool) []EventType {
	if !in {
		return nil
	}
	var events []EventType
	region := s.activeRegionLocked()
	if region == nil {
		if !s.tool.Policy().CreateNew {
			return nil
		}
		region = s.createRegionLocked()
		events = append(events, EventRegionsChanged)
	}
	if erase {
		s.gesture = gestureErase
	} else {
		s.gesture = gestureBrush
	}
	s.gestureRegion = region
	s.gestureStart = s.lastPointer
	s.strokeSegmentLocked(region, s.lastPointer, s.lastPointer, erase)
	s.repaintPreviewLocked()
	return append(events, EventMaskChanged)
}

// strokeSegmentLocked paints one segment of a brush or eraser gesture onto
// the region raster. Erasing goes through the scratch surface so the
// segment's coverage can be applied as destination-out.
func (s *Session) strokeSegmentLocked(region *annotate.Region, from, to geometry.Point2D, erase bool) {
	if erase {
		scratch := s.store.Scratch()
		scratch.Clear()
		strokeSegment(scratch.Context(), from, to, s.brushSize, colorutil.White)
		raster.EraseOut(region.Surface.RGBA(), scratch.RGBA())
		return
	}
	strokeSegment(region.Surface.Context(), from, to, s.brushSize, colorutil.ParseHex(s.brushColor))
}

func strokeSegment(dc *gg.Context, from, to geometry.Point2D, width float64, c color.RGBA) {
	dc.SetColor(c)
	if from == to {
		// Round caps do not render on zero-length segments; paint the dot.
		dc.DrawCircle(from.X, from.Y, width/2)
		dc.Fill()
		return
	}
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()
}

func (s *Session) beginRectLocked(in bool) []EventType {
	if !in {
		return nil
	}
	region := s.createRegionLocked()
	s.gesture = gestureRect
	s.gestureRegion = region
	s.gestureStart = s.lastPointer
	s.rectBase = region.Surface.Pixels()
	return []EventType{EventRegionsChanged}
}

// drawRectPreviewLocked restores the pre-gesture pixels and draws the
// current drag rectangle: a translucent fill under a solid outline.
func (s *Session) drawRectPreviewLocked(region *annotate.Region) {
	_ = region.Surface.SetPixels(s.rectBase)
	rect := geometry.RectFromCorners(s.gestureStart, s.lastPointer)
	if rect.Empty() {
		return
	}
	c := colorutil.ParseHex(region.Color)
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255

	dc := region.Surface.Context()
	dc.SetRGBA(r, g, b, rectFillAlpha)
	dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	dc.Fill()
	dc.SetRGBA(r, g, b, 1)
	dc.SetLineWidth(rectStrokeWidth)
	dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	dc.Stroke()
}

func (s *Session) placeMarkerLocked(in bool) []EventType {
	if !in {
		return nil
	}
	region := s.createRegionLocked()
	p := s.lastPointer
	region.Marker = &geometry.Point2D{X: p.X, Y: p.Y}
	s.repaintMarkersLocked()
	s.pushHistoryLocked()
	return []EventType{EventRegionsChanged, EventOverlaysChanged, EventHistoryChanged}
}

func (s *Session) beginArrowLocked(in bool) []EventType {
	if !in {
		return nil
	}
	s.gesture = gestureArrow
	s.gestureStart = s.lastPointer
	s.previewArrow = annotate.NewArrowAnnotation(s.gestureStart, s.gestureStart, s.brushColor, s.brushSize)
	s.repaintAnnotationsLocked()
	return []EventType{EventOverlaysChanged}
}

func (s *Session) textPointerDownLocked(native geometry.Point2D, in bool) []EventType {
	entryWasOpen := s.entry != nil
	var events []EventType
	if entryWasOpen {
		events = s.commitTextEntryLocked()
	}

	if sel := s.textByIDLocked(s.selectedTextID); sel != nil && sel.HandleRect().Contains(native) {
		s.gesture = gestureTextResize
		s.textDrag = &textDragState{annotation: sel}
		return events
	}

	if hit := s.hitTextLocked(native); hit != nil {
		if s.selectedTextID != hit.ID {
			s.selectedTextID = hit.ID
			s.repaintAnnotationsLocked()
			events = append(events, EventOverlaysChanged)
		}
		s.gesture = gestureTextDrag
		s.textDrag = &textDragState{
			annotation: hit,
			grab:       native.Sub(geometry.Point2D{X: hit.X, Y: hit.Y}),
		}
		return events
	}

	if s.selectedTextID != "" {
		s.selectedTextID = ""
		s.repaintAnnotationsLocked()
		events = append(events, EventOverlaysChanged)
	}
	// A click that just closed an entry does not immediately open the next.
	if in && !entryWasOpen {
		events = append(events, s.openTextEntryLocked(native)...)
	}
	return events
}

// hitTextLocked returns the topmost annotation whose padded box contains
// the native point.
func (s *Session) hitTextLocked(native geometry.Point2D) *annotate.TextAnnotation {
	for i := len(s.texts) - 1; i >= 0; i-- {
		if s.texts[i].PaddedBounds().Contains(native) {
			return s.texts[i]
		}
	}
	return nil
}

func (s *Session) textByIDLocked(id string) *annotate.TextAnnotation {
	if id == "" {
		return nil
	}
	for _, t := range s.texts {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// DoubleClick opens editing for the text annotation under the pointer when
// the text tool is active.
func (s *Session) DoubleClick(screen geometry.Point2D) {
	s.mu.Lock()
	events := s.doubleClickLocked(screen)
	s.mu.Unlock()
	s.emitAll(events)
}

func (s *Session) doubleClickLocked(screen geometry.Point2D) []EventType {
	if s.store == nil || s.tool != ToolText || s.gesture != gestureNone {
		return nil
	}
	m := s.mapperLocked()
	if !m.Ready() {
		return nil
	}
	native, _ := m.ScreenToNative(screen)
	hit := s.hitTextLocked(native)
	if hit == nil {
		return nil
	}
	if s.entry != nil {
		if s.entry.annotation == hit {
			return nil
		}
		events := s.commitTextEntryLocked()
		return append(events, s.openTextEntryForLocked(hit)...)
	}
	return s.openTextEntryForLocked(hit)
}
