// Package editor implements the interactive mask editing session: tools,
// gestures, regions, text entry, history, and the screen/native coordinate
// mapping. The session is headless; a UI layer feeds it pointer positions
// in viewport coordinates and redraws from its surfaces.
package editor

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strconv"
	"sync"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/annotate"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/raster"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/colorutil"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

const (
	defaultBrushSize = 12.0
	defaultTextSize  = 18.0
	minBrushSize     = 1.0
	maxBrushSize     = 200.0
	minTextSize      = 6.0
	maxTextSize      = 200.0

	// rectLabelOffset places the rectangle's number chip just inside the
	// top-left corner.
	rectLabelOffset = 6.0
	rectFillAlpha   = 0.2
	rectStrokeWidth = 2.0
)

// ErrNoImage is returned by operations that need a loaded base image.
var ErrNoImage = errors.New("no image loaded")

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureBrush
	gestureErase
	gestureRect
	gestureArrow
	gestureTextDrag
	gestureTextResize
)

type textDragState struct {
	annotation *annotate.TextAnnotation
	grab       geometry.Point2D // pointer offset from the box origin
	moved      bool
}

// Session is the complete state of one editing session over a base image.
// All mutation goes through its methods; events fire after the lock is
// released so listeners may call back in.
type Session struct {
	mu sync.RWMutex

	store *raster.LayerStore

	regions []*annotate.Region
	texts   []*annotate.TextAnnotation
	arrows  []*annotate.ArrowAnnotation

	activeRegionID string
	labelCounter   int

	tool       Tool
	brushColor string
	brushSize  float64
	textSize   float64

	viewport Viewport

	// lastPointer is the most recent mapped pointer position in native
	// coordinates. Gesture finalization reads it instead of trusting the
	// final event to carry a position (pointer-leave does not).
	lastPointer geometry.Point2D

	gesture       gestureKind
	gestureRegion *annotate.Region
	gestureStart  geometry.Point2D
	rectBase      []byte
	previewArrow  *annotate.ArrowAnnotation

	selectedTextID string
	textDrag       *textDragState
	entry          *TextEntry

	history    History
	renderOpts annotate.RenderOptions

	listeners map[EventType][]EventListener
}

// NewSession creates an empty session with default tool settings. Call
// LoadImage before editing.
func NewSession() *Session {
	return &Session{
		labelCounter: 1,
		tool:         ToolBrush,
		brushColor:   colorutil.PaletteColor(0),
		brushSize:    defaultBrushSize,
		textSize:     defaultTextSize,
		viewport:     NewViewport(),
		renderOpts:   annotate.DefaultRenderOptions(),
		listeners:    make(map[EventType][]EventListener),
	}
}

// LoadImage resets the session around a new base image and records the
// initial history checkpoint, so even the first action can be undone.
func (s *Session) LoadImage(img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("unusable image size %dx%d", b.Dx(), b.Dy())
	}

	s.mu.Lock()
	s.store = raster.NewLayerStore(raster.NewSurfaceFromImage(img))
	s.regions = nil
	s.texts = nil
	s.arrows = nil
	s.activeRegionID = ""
	s.labelCounter = 1
	s.gesture = gestureNone
	s.gestureRegion = nil
	s.rectBase = nil
	s.previewArrow = nil
	s.selectedTextID = ""
	s.textDrag = nil
	s.entry = nil
	s.viewport = NewViewport()
	s.history.Reset()
	s.pushHistoryLocked()
	s.mu.Unlock()

	s.Emit(EventImageLoaded, geometry.NewSize(float64(b.Dx()), float64(b.Dy())))
	s.Emit(EventHistoryChanged, nil)
	return nil
}

// Loaded reports whether a base image is present.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store != nil
}

// Store exposes the layer store for display and export. Nil until an image
// is loaded.
func (s *Session) Store() *raster.LayerStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Regions returns the session regions in creation order.
func (s *Session) Regions() []*annotate.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*annotate.Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Texts returns the committed text annotations.
func (s *Session) Texts() []*annotate.TextAnnotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*annotate.TextAnnotation, len(s.texts))
	copy(out, s.texts)
	return out
}

// Arrows returns the committed arrow annotations.
func (s *Session) Arrows() []*annotate.ArrowAnnotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*annotate.ArrowAnnotation, len(s.arrows))
	copy(out, s.arrows)
	return out
}

// ActiveRegionID returns the active region's ID, or "".
func (s *Session) ActiveRegionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeRegionID
}

// Tool returns the current tool.
func (s *Session) Tool() Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tool
}

// SetTool switches tools. It refuses while a gesture is in progress and
// commits any open text entry first.
func (s *Session) SetTool(t Tool) bool {
	s.mu.Lock()
	if s.gesture != gestureNone {
		s.mu.Unlock()
		return false
	}
	var events []EventType
	if s.entry != nil {
		events = s.commitTextEntryLocked()
	}
	if s.tool != t {
		s.tool = t
		events = append(events, EventToolChanged)
	}
	s.mu.Unlock()
	s.emitAll(events)
	return true
}

// BrushColor returns the current paint color as hex.
func (s *Session) BrushColor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brushColor
}

// SetBrushColor sets the paint color used for new strokes, regions, and
// annotations.
func (s *Session) SetBrushColor(hex string) {
	s.mu.Lock()
	s.brushColor = colorutil.FormatHex(colorutil.ParseHex(hex))
	s.mu.Unlock()
}

// BrushSize returns the stroke width in native pixels.
func (s *Session) BrushSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brushSize
}

// SetBrushSize sets the stroke width in native pixels, clamped.
func (s *Session) SetBrushSize(px float64) {
	s.mu.Lock()
	if px < minBrushSize {
		px = minBrushSize
	}
	if px > maxBrushSize {
		px = maxBrushSize
	}
	s.brushSize = px
	s.mu.Unlock()
}

// TextSize returns the annotation font size in native pixels.
func (s *Session) TextSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.textSize
}

// SetTextSize sets the annotation font size in native pixels, clamped.
func (s *Session) SetTextSize(px float64) {
	s.mu.Lock()
	if px < minTextSize {
		px = minTextSize
	}
	if px > maxTextSize {
		px = maxTextSize
	}
	s.textSize = px
	s.mu.Unlock()
}

// SelectedTextID returns the selected annotation's ID, or "".
func (s *Session) SelectedTextID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedTextID
}

// LastPointer returns the most recent mapped pointer position in native
// coordinates.
func (s *Session) LastPointer() geometry.Point2D {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastPointer
}

// HistoryLen returns the current number of history checkpoints.
func (s *Session) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}

// Viewport returns the current pan/zoom state.
func (s *Session) Viewport() Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// ZoomIn advances the zoom one wheel step.
func (s *Session) ZoomIn() {
	s.mu.Lock()
	s.viewport.ZoomIn()
	s.mu.Unlock()
	s.Emit(EventViewportChanged, nil)
}

// ZoomOut retreats the zoom one wheel step.
func (s *Session) ZoomOut() {
	s.mu.Lock()
	s.viewport.ZoomOut()
	s.mu.Unlock()
	s.Emit(EventViewportChanged, nil)
}

// SetZoom sets an absolute zoom factor, clamped.
func (s *Session) SetZoom(z float64) {
	s.mu.Lock()
	before := s.viewport.Zoom
	s.viewport.SetZoom(z)
	changed := s.viewport.Zoom != before
	s.mu.Unlock()
	if changed {
		s.Emit(EventViewportChanged, nil)
	}
}

// SetPan mirrors the host scroll offset into the viewport.
func (s *Session) SetPan(x, y float64) {
	p := geometry.Point2D{X: x, Y: y}
	s.mu.Lock()
	changed := s.viewport.Pan != p
	s.viewport.Pan = p
	s.mu.Unlock()
	if changed {
		s.Emit(EventViewportChanged, nil)
	}
}

// FitToWindow zooms so the whole image is visible in a view of the given
// size and resets the pan.
func (s *Session) FitToWindow(viewW, viewH float64) {
	s.mu.Lock()
	if s.store == nil {
		s.mu.Unlock()
		return
	}
	s.viewport.SetZoom(FitZoom(viewW, viewH, float64(s.store.Width()), float64(s.store.Height())))
	s.viewport.Pan = geometry.Point2D{}
	s.mu.Unlock()
	s.Emit(EventViewportChanged, nil)
}

// Mapper returns the current screen/native coordinate mapper.
func (s *Session) Mapper() Mapper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapperLocked()
}

func (s *Session) mapperLocked() Mapper {
	if s.store == nil {
		return Mapper{}
	}
	native := geometry.NewSize(float64(s.store.Width()), float64(s.store.Height()))
	return NewMapper(s.viewport.DisplayRect(native), native)
}

// ClearAll removes every region, annotation, and arrow, resets the label
// counter, and records the cleared state so undo can step back to the
// moment just before the clear.
func (s *Session) ClearAll() {
	s.mu.Lock()
	if s.store == nil {
		s.mu.Unlock()
		return
	}
	entryWasOpen := s.entry != nil
	s.regions = nil
	s.texts = nil
	s.arrows = nil
	s.activeRegionID = ""
	s.labelCounter = 1
	s.gesture = gestureNone
	s.gestureRegion = nil
	s.rectBase = nil
	s.previewArrow = nil
	s.selectedTextID = ""
	s.textDrag = nil
	s.entry = nil
	s.repaintAllLocked()
	s.pushHistoryLocked()
	s.mu.Unlock()

	events := []EventType{EventRegionsChanged, EventMaskChanged, EventOverlaysChanged, EventHistoryChanged}
	if entryWasOpen {
		events = append(events, EventTextEntryClosed)
	}
	s.emitAll(events)
}

// Undo restores the previous history checkpoint. With only the initial
// checkpoint left it resets to that; with no image or history it does
// nothing.
func (s *Session) Undo() {
	s.mu.Lock()
	if s.store == nil {
		s.mu.Unlock()
		return
	}
	snap := s.history.Undo()
	if snap == nil {
		s.mu.Unlock()
		return
	}
	entryWasOpen := s.entry != nil
	s.restoreSnapshot(snap)
	s.mu.Unlock()

	events := []EventType{EventRegionsChanged, EventMaskChanged, EventOverlaysChanged, EventHistoryChanged}
	if entryWasOpen {
		events = append(events, EventTextEntryClosed)
	}
	s.emitAll(events)
}

func (s *Session) pushHistoryLocked() {
	snap, err := s.captureSnapshot()
	if err != nil {
		log.Printf("editor: history snapshot failed: %v", err)
		return
	}
	s.history.Push(snap)
}

func (s *Session) createRegionLocked() *annotate.Region {
	r := &annotate.Region{
		ID:      strconv.Itoa(s.labelCounter),
		Color:   s.brushColor,
		Surface: s.store.NewRegionSurface(),
	}
	s.labelCounter++
	s.regions = append(s.regions, r)
	s.activeRegionID = r.ID
	return r
}

func (s *Session) activeRegionLocked() *annotate.Region {
	if s.activeRegionID == "" {
		return nil
	}
	for _, r := range s.regions {
		if r.ID == s.activeRegionID {
			return r
		}
	}
	return nil
}

func (s *Session) regionByIDLocked(id string) *annotate.Region {
	for _, r := range s.regions {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *Session) overlayStateLocked() annotate.OverlayState {
	st := annotate.OverlayState{
		SelectedID:   s.selectedTextID,
		PreviewArrow: s.previewArrow,
	}
	if s.entry != nil && !s.entry.isNew {
		st.HiddenTextID = s.entry.annotation.ID
	}
	return st
}

func (s *Session) repaintAnnotationsLocked() {
	if s.store == nil {
		return
	}
	annotate.RenderAnnotations(s.store.Annotations(), s.texts, s.arrows, s.overlayStateLocked(), s.renderOpts)
}

func (s *Session) repaintMarkersLocked() {
	if s.store == nil {
		return
	}
	annotate.RenderMarkers(s.store.Markers(), s.regions, s.renderOpts)
}

func (s *Session) repaintPreviewLocked() {
	if s.store == nil {
		return
	}
	annotate.RenderMaskPreview(s.store.Preview(), s.regions)
}

func (s *Session) repaintAllLocked() {
	s.repaintPreviewLocked()
	s.repaintMarkersLocked()
	s.repaintAnnotationsLocked()
}
