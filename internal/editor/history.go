package editor

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/annotate"
)

// maxHistory bounds the undo stack. Snapshots hold full pixel copies of
// every region raster, so the cap keeps memory predictable.
const maxHistory = 10

type regionState struct {
	region annotate.Region
	pixels []byte
}

// Snapshot is one history checkpoint: the complete vector state plus a deep
// pixel copy of every region surface.
type Snapshot struct {
	labelCounter int
	activeID     string
	regions      []regionState
	texts        []*annotate.TextAnnotation
	arrows       []*annotate.ArrowAnnotation
}

// History is the bounded undo stack. The last item always mirrors the
// current committed state, so undo discards it and restores the one below.
type History struct {
	items []*Snapshot
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.items) }

// Push appends a snapshot, dropping the oldest once the cap is reached.
func (h *History) Push(s *Snapshot) {
	if s == nil {
		return
	}
	if len(h.items) >= maxHistory {
		h.items = h.items[1:]
	}
	h.items = append(h.items, s)
}

// Undo returns the snapshot to restore, or nil when there is no history.
// With more than one item the newest is discarded and the one below is
// returned; with exactly one item that first checkpoint itself is returned,
// so undoing past the start keeps resetting to it.
func (h *History) Undo() *Snapshot {
	switch len(h.items) {
	case 0:
		return nil
	case 1:
		return h.items[0]
	default:
		h.items = h.items[:len(h.items)-1]
		return h.items[len(h.items)-1]
	}
}

// Reset drops all snapshots.
func (h *History) Reset() {
	h.items = nil
}

func deepCopy(dst, src interface{}) error {
	return copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true})
}

// captureSnapshot deep-copies the current session state. Region surfaces
// are captured as raw pixel buffers; everything else through a structural
// deep copy.
func (s *Session) captureSnapshot() (*Snapshot, error) {
	snap := &Snapshot{
		labelCounter: s.labelCounter,
		activeID:     s.activeRegionID,
	}
	for _, r := range s.regions {
		var rc annotate.Region
		if err := deepCopy(&rc, r); err != nil {
			return nil, fmt.Errorf("copy region %s: %w", r.ID, err)
		}
		rc.Surface = nil
		snap.regions = append(snap.regions, regionState{region: rc, pixels: r.Surface.Pixels()})
	}
	if err := deepCopy(&snap.texts, &s.texts); err != nil {
		return nil, fmt.Errorf("copy texts: %w", err)
	}
	if err := deepCopy(&snap.arrows, &s.arrows); err != nil {
		return nil, fmt.Errorf("copy arrows: %w", err)
	}
	return snap, nil
}

// restoreSnapshot replaces the live state with a deep copy of the snapshot,
// rebuilding region surfaces from the stored pixels and clearing all
// transient interaction state.
func (s *Session) restoreSnapshot(snap *Snapshot) {
	s.labelCounter = snap.labelCounter
	s.activeRegionID = snap.activeID

	s.regions = s.regions[:0]
	for _, rs := range snap.regions {
		r := &annotate.Region{}
		if err := deepCopy(r, &rs.region); err != nil {
			continue
		}
		r.Surface = s.store.NewRegionSurface()
		if err := r.Surface.SetPixels(rs.pixels); err != nil {
			continue
		}
		s.regions = append(s.regions, r)
	}

	s.texts = nil
	s.arrows = nil
	_ = deepCopy(&s.texts, &snap.texts)
	_ = deepCopy(&s.arrows, &snap.arrows)

	// Transient state does not survive an undo.
	s.gesture = gestureNone
	s.gestureRegion = nil
	s.rectBase = nil
	s.previewArrow = nil
	s.entry = nil
	s.selectedTextID = ""
	s.textDrag = nil

	s.repaintAllLocked()
}
