package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

func TestUndoRestoresStrokePixels(t *testing.T) {
	s := newTestSession(t, 400, 300)

	s.PointerDown(geometry.NewPoint2D(50, 50))
	s.PointerUp()
	want := s.Regions()[0].Surface.Pixels()

	s.PointerDown(geometry.NewPoint2D(200, 150))
	s.PointerMove(geometry.NewPoint2D(260, 150))
	s.PointerUp()
	require.NotEqual(t, want, s.Regions()[0].Surface.Pixels())

	s.Undo()
	assert.Equal(t, want, s.Regions()[0].Surface.Pixels(), "undo restores the exact raster bytes")
	assert.Equal(t, 2, s.HistoryLen())
}

func TestUndoFirstActionClearsIt(t *testing.T) {
	s := newTestSession(t, 400, 300)

	s.PointerDown(geometry.NewPoint2D(50, 50))
	s.PointerUp()
	require.Len(t, s.Regions(), 1)

	s.Undo()
	assert.Empty(t, s.Regions())
	assert.Equal(t, 1, s.HistoryLen())

	// With only the initial checkpoint left, undo stays put.
	s.Undo()
	assert.Empty(t, s.Regions())
	assert.Equal(t, 1, s.HistoryLen())
}

func TestUndoWithoutImageIsNoOp(t *testing.T) {
	s := NewSession()
	s.Undo()
	assert.Zero(t, s.HistoryLen())
}

func TestUndoRewindsLabelCounter(t *testing.T) {
	s := newTestSession(t, 400, 300)
	require.True(t, s.SetTool(ToolMarker))

	s.PointerDown(geometry.NewPoint2D(60, 60))
	s.PointerUp()
	s.PointerDown(geometry.NewPoint2D(120, 60))
	s.PointerUp()
	require.Len(t, s.Regions(), 2)

	s.Undo()
	require.Len(t, s.Regions(), 1)

	s.PointerDown(geometry.NewPoint2D(180, 60))
	s.PointerUp()
	regions := s.Regions()
	require.Len(t, regions, 2)
	assert.Equal(t, []string{"1", "2"}, []string{regions[0].ID, regions[1].ID},
		"labels stay dense after undo")
}

func TestHistoryCapped(t *testing.T) {
	s := newTestSession(t, 400, 300)
	require.True(t, s.SetTool(ToolMarker))

	for i := 0; i < 15; i++ {
		s.PointerDown(geometry.NewPoint2D(float64(10+i*12), 100))
		s.PointerUp()
	}
	assert.Equal(t, maxHistory, s.HistoryLen())

	for i := 0; i < 25; i++ {
		s.Undo()
	}
	assert.Equal(t, 1, s.HistoryLen())
	assert.Len(t, s.Regions(), 6, "the oldest retained checkpoint has the first six markers")
}

func TestUndoAfterClearRestores(t *testing.T) {
	s := newTestSession(t, 400, 300)
	require.True(t, s.SetTool(ToolMarker))
	s.PointerDown(geometry.NewPoint2D(60, 60))
	s.PointerUp()
	s.PointerDown(geometry.NewPoint2D(120, 60))
	s.PointerUp()

	s.ClearAll()
	assert.Empty(t, s.Regions())

	s.Undo()
	regions := s.Regions()
	require.Len(t, regions, 2)
	for _, r := range regions {
		require.NotNil(t, r.Marker)
	}
}

func TestClearAllResetsNumbering(t *testing.T) {
	s := newTestSession(t, 400, 300)
	require.True(t, s.SetTool(ToolMarker))
	s.PointerDown(geometry.NewPoint2D(60, 60))
	s.PointerUp()
	s.PointerDown(geometry.NewPoint2D(120, 60))
	s.PointerUp()

	s.ClearAll()
	s.PointerDown(geometry.NewPoint2D(180, 60))
	s.PointerUp()

	regions := s.Regions()
	require.Len(t, regions, 1)
	assert.Equal(t, "1", regions[0].ID)
}

func TestClearAllWithoutImageIsNoOp(t *testing.T) {
	s := NewSession()
	s.ClearAll()
	assert.Zero(t, s.HistoryLen())
}

func TestUndoRestoresAnnotationsAndArrows(t *testing.T) {
	s := newTestSession(t, 600, 400)

	ta := createText(t, s, 250, 200, "keep me")
	require.True(t, s.SetTool(ToolArrow))
	s.PointerDown(geometry.NewPoint2D(10, 10))
	s.PointerMove(geometry.NewPoint2D(90, 40))
	s.PointerUp()
	require.Len(t, s.Arrows(), 1)

	s.Undo()
	assert.Empty(t, s.Arrows(), "the arrow was the last action")
	texts := s.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "keep me", texts[0].Text)
	assert.NotSame(t, ta, texts[0], "restored state is a deep copy")
}

func TestSnapshotsAreIsolatedFromLaterEdits(t *testing.T) {
	s := newTestSession(t, 600, 400)
	createText(t, s, 250, 200, "original")

	// Mutate the live annotation after the checkpoint.
	s.PointerDown(geometry.NewPoint2D(260, 205))
	s.PointerMove(geometry.NewPoint2D(400, 305))
	s.PointerUp()
	require.InDelta(t, 390, s.Texts()[0].X, 1e-9)

	s.Undo()
	assert.InDelta(t, 250, s.Texts()[0].X, 1e-9, "the checkpoint kept the pre-drag position")
}
