package editor

import (
	"strings"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/annotate"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

// TextEntry is the live editing state for one text annotation: either a
// fresh annotation not yet in the session, or an existing one temporarily
// hidden behind the host input widget.
type TextEntry struct {
	annotation *annotate.TextAnnotation
	isNew      bool
	original   string // annotation text before editing began
	origInstr  string // instruction line this annotation contributed
	draft      string
}

// EntryInfo describes the open text entry for the host overlay widget.
// ScreenRect and FontSize are in viewport coordinates.
type EntryInfo struct {
	Active     bool
	Draft      string
	ScreenRect geometry.Rect
	FontSize   float64
}

// TextEntryInfo reports the open entry, if any, so the host can position
// its input widget over the annotation.
func (s *Session) TextEntryInfo() EntryInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entry == nil {
		return EntryInfo{}
	}
	t := s.entry.annotation
	m := s.mapperLocked()
	tl := m.NativeToScreen(geometry.Point2D{X: t.X, Y: t.Y})
	zoom := s.viewport.Zoom
	return EntryInfo{
		Active:     true,
		Draft:      s.entry.draft,
		ScreenRect: geometry.Rect{X: tl.X, Y: tl.Y, Width: t.Width * zoom, Height: t.Height * zoom},
		FontSize:   t.FontSize * zoom,
	}
}

// SetEntryText applies live typing to the open entry. The annotation box
// re-wraps and grows as the draft changes.
func (s *Session) SetEntryText(text string) {
	s.mu.Lock()
	if s.entry == nil {
		s.mu.Unlock()
		return
	}
	s.entry.draft = text
	s.entry.annotation.Text = text
	s.entry.annotation.Relayout()
	s.mu.Unlock()
	s.Emit(EventTextEntryChanged, text)
}

// CommitTextEntry finalizes the open entry. A new annotation with a
// non-empty draft joins the session; an empty draft discards it. Editing an
// existing annotation to empty reverts to its prior text.
func (s *Session) CommitTextEntry() {
	s.mu.Lock()
	events := s.commitTextEntryLocked()
	s.mu.Unlock()
	s.emitAll(events)
}

// CancelTextEntry closes the open entry without applying the draft.
func (s *Session) CancelTextEntry() {
	s.mu.Lock()
	e := s.entry
	if e == nil {
		s.mu.Unlock()
		return
	}
	s.entry = nil
	if !e.isNew {
		e.annotation.Text = e.original
		e.annotation.Relayout()
	}
	s.repaintAnnotationsLocked()
	s.mu.Unlock()
	s.emitAll([]EventType{EventTextEntryClosed, EventOverlaysChanged})
}

func (s *Session) openTextEntryLocked(native geometry.Point2D) []EventType {
	t := annotate.NewTextAnnotation(native.X, native.Y, s.textSize, s.brushColor)
	t.RegionID = s.activeRegionID
	s.entry = &TextEntry{annotation: t, isNew: true}
	return []EventType{EventTextEntryOpened}
}

func (s *Session) openTextEntryForLocked(t *annotate.TextAnnotation) []EventType {
	s.entry = &TextEntry{
		annotation: t,
		original:   t.Text,
		origInstr:  t.Instruction,
		draft:      t.Text,
	}
	s.selectedTextID = t.ID
	s.repaintAnnotationsLocked()
	return []EventType{EventTextEntryOpened, EventOverlaysChanged}
}

func (s *Session) commitTextEntryLocked() []EventType {
	e := s.entry
	if e == nil {
		return nil
	}
	s.entry = nil
	t := e.annotation

	if e.isNew {
		if strings.TrimSpace(e.draft) == "" {
			return []EventType{EventTextEntryClosed}
		}
		t.Relayout()
		if region := s.regionByIDLocked(t.RegionID); region != nil {
			region.ReplaceInstructionLine("", e.draft)
			t.Instruction = e.draft
		}
		s.texts = append(s.texts, t)
		s.selectedTextID = t.ID
		s.repaintAnnotationsLocked()
		s.pushHistoryLocked()
		return []EventType{EventTextEntryClosed, EventOverlaysChanged, EventRegionsChanged, EventHistoryChanged}
	}

	if strings.TrimSpace(e.draft) == "" || e.draft == e.original {
		t.Text = e.original
		t.Relayout()
		s.repaintAnnotationsLocked()
		return []EventType{EventTextEntryClosed, EventOverlaysChanged}
	}
	t.Text = e.draft
	t.Relayout()
	if region := s.regionByIDLocked(t.RegionID); region != nil {
		region.ReplaceInstructionLine(e.origInstr, e.draft)
		t.Instruction = e.draft
	}
	s.repaintAnnotationsLocked()
	s.pushHistoryLocked()
	return []EventType{EventTextEntryClosed, EventOverlaysChanged, EventRegionsChanged, EventHistoryChanged}
}
