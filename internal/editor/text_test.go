package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/annotate"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

// createText places a committed annotation at a native point by driving the
// text tool the way the UI would.
func createText(t *testing.T, s *Session, x, y float64, text string) *annotate.TextAnnotation {
	t.Helper()
	require.True(t, s.SetTool(ToolText))
	s.PointerDown(geometry.NewPoint2D(x, y))
	s.PointerUp()
	require.True(t, s.TextEntryInfo().Active)
	s.SetEntryText(text)
	s.CommitTextEntry()
	texts := s.Texts()
	require.NotEmpty(t, texts)
	return texts[len(texts)-1]
}

func TestTextCreateCommitSyncsInstruction(t *testing.T) {
	s := newTestSession(t, 600, 400)

	require.True(t, s.SetTool(ToolMarker))
	s.PointerDown(geometry.NewPoint2D(100, 100))
	s.PointerUp()

	ta := createText(t, s, 250, 200, "Remove the scratch")

	assert.Equal(t, "Remove the scratch", ta.Text)
	assert.Equal(t, "1", ta.RegionID)
	assert.Equal(t, "Remove the scratch", ta.Instruction)
	assert.Equal(t, "Remove the scratch", s.Regions()[0].Instruction)
	assert.Equal(t, ta.ID, s.SelectedTextID())
	assert.False(t, s.TextEntryInfo().Active)
	assert.Equal(t, 3, s.HistoryLen())
}

func TestTextEditReplacesInstructionLine(t *testing.T) {
	s := newTestSession(t, 600, 400)
	require.True(t, s.SetTool(ToolMarker))
	s.PointerDown(geometry.NewPoint2D(100, 100))
	s.PointerUp()

	first := createText(t, s, 250, 100, "Remove the scratch")
	createText(t, s, 250, 300, "Keep edges sharp")
	region := s.Regions()[0]
	require.Equal(t, "Remove the scratch\nKeep edges sharp", region.Instruction)

	s.DoubleClick(geometry.NewPoint2D(first.X+5, first.Y+5))
	require.True(t, s.TextEntryInfo().Active)
	assert.Equal(t, "Remove the scratch", s.TextEntryInfo().Draft)
	s.SetEntryText("Polish the scratch")
	s.CommitTextEntry()

	assert.Equal(t, "Polish the scratch", first.Text)
	assert.Equal(t, "Polish the scratch", first.Instruction)
	assert.Equal(t, "Polish the scratch\nKeep edges sharp", region.Instruction, "the line is replaced in place")
}

func TestTextEmptyDraftDiscardsNew(t *testing.T) {
	s := newTestSession(t, 600, 400)
	require.True(t, s.SetTool(ToolText))

	s.PointerDown(geometry.NewPoint2D(200, 150))
	s.PointerUp()
	require.True(t, s.TextEntryInfo().Active)
	s.SetEntryText("   ")
	s.CommitTextEntry()

	assert.Empty(t, s.Texts())
	assert.False(t, s.TextEntryInfo().Active)
	assert.Equal(t, 1, s.HistoryLen(), "a discarded entry leaves no checkpoint")
}

func TestTextEditToEmptyReverts(t *testing.T) {
	s := newTestSession(t, 600, 400)
	ta := createText(t, s, 250, 200, "hello")
	histBefore := s.HistoryLen()

	s.DoubleClick(geometry.NewPoint2D(ta.X+5, ta.Y+5))
	require.True(t, s.TextEntryInfo().Active)
	s.SetEntryText("")
	s.CommitTextEntry()

	assert.Equal(t, "hello", ta.Text)
	assert.Len(t, s.Texts(), 1)
	assert.Equal(t, histBefore, s.HistoryLen())
}

func TestTextCancelRestoresOriginal(t *testing.T) {
	s := newTestSession(t, 600, 400)
	ta := createText(t, s, 250, 200, "hello")

	s.DoubleClick(geometry.NewPoint2D(ta.X+5, ta.Y+5))
	s.SetEntryText("changed beyond recognition")
	s.CancelTextEntry()

	assert.Equal(t, "hello", ta.Text)
	assert.False(t, s.TextEntryInfo().Active)
}

func TestTextEntryGrowsWhileTyping(t *testing.T) {
	s := newTestSession(t, 600, 400)
	require.True(t, s.SetTool(ToolText))
	s.PointerDown(geometry.NewPoint2D(100, 100))
	require.True(t, s.TextEntryInfo().Active)

	oneLine := s.entry.annotation.Height
	s.SetEntryText("a string long enough that it must wrap onto several lines inside the narrow default box")
	assert.Greater(t, s.entry.annotation.Height, oneLine)
	s.CancelTextEntry()
}

func TestTextDragMoves(t *testing.T) {
	s := newTestSession(t, 600, 400)
	ta := createText(t, s, 250, 200, "hello")
	histBefore := s.HistoryLen()

	s.PointerDown(geometry.NewPoint2D(260, 205))
	s.PointerMove(geometry.NewPoint2D(300, 245))
	s.PointerUp()

	assert.InDelta(t, 290, ta.X, 1e-9)
	assert.InDelta(t, 240, ta.Y, 1e-9)
	assert.Equal(t, histBefore+1, s.HistoryLen())
}

func TestTextClickWithoutDragKeepsHistory(t *testing.T) {
	s := newTestSession(t, 600, 400)
	ta := createText(t, s, 250, 200, "hello")
	histBefore := s.HistoryLen()

	s.PointerDown(geometry.NewPoint2D(260, 205))
	s.PointerUp()

	assert.InDelta(t, 250, ta.X, 1e-9)
	assert.Equal(t, histBefore, s.HistoryLen(), "selecting without moving is not an edit")
}

func TestTextResizeReflowsAndClamps(t *testing.T) {
	s := newTestSession(t, 600, 400)
	ta := createText(t, s, 250, 200, "alpha beta gamma delta")
	require.Equal(t, ta.ID, s.SelectedTextID())
	tallHeight := ta.Height

	grab := ta.HandleRect().Center()
	s.PointerDown(grab)
	s.PointerMove(geometry.NewPoint2D(450, grab.Y))
	s.PointerUp()
	assert.InDelta(t, 200, ta.Width, 1e-9)
	assert.Less(t, ta.Height, tallHeight, "wider box needs fewer lines")

	grab = ta.HandleRect().Center()
	s.PointerDown(grab)
	s.PointerMove(geometry.NewPoint2D(ta.X+10, grab.Y))
	s.PointerUp()
	assert.InDelta(t, ta.MinWidth(), ta.Width, 1e-9)
}

func TestTextClickEmptySpaceDeselectsAndOpensEntry(t *testing.T) {
	s := newTestSession(t, 600, 400)
	ta := createText(t, s, 250, 200, "hello")
	require.Equal(t, ta.ID, s.SelectedTextID())

	s.PointerDown(geometry.NewPoint2D(500, 350))
	s.PointerUp()

	assert.Empty(t, s.SelectedTextID())
	assert.True(t, s.TextEntryInfo().Active, "empty-space click starts a new annotation")
	s.CancelTextEntry()
	assert.Len(t, s.Texts(), 1)
}

func TestTextClickWhileEntryOpenCommitsFirst(t *testing.T) {
	s := newTestSession(t, 600, 400)
	require.True(t, s.SetTool(ToolText))

	s.PointerDown(geometry.NewPoint2D(100, 100))
	s.PointerUp()
	s.SetEntryText("first note")

	s.PointerDown(geometry.NewPoint2D(400, 300))
	s.PointerUp()

	texts := s.Texts()
	require.Len(t, texts, 1, "the open entry commits on the next click")
	assert.Equal(t, "first note", texts[0].Text)
	assert.False(t, s.TextEntryInfo().Active, "the committing click does not immediately open another entry")
}

func TestTextEntryInfoTracksViewport(t *testing.T) {
	s := newTestSession(t, 400, 300)
	s.SetZoom(2)
	s.SetPan(50, 30)

	require.True(t, s.SetTool(ToolText))
	s.PointerDown(geometry.NewPoint2D(150, 170)) // native (100, 100)

	info := s.TextEntryInfo()
	require.True(t, info.Active)
	assert.InDelta(t, 150, info.ScreenRect.X, 1e-6)
	assert.InDelta(t, 170, info.ScreenRect.Y, 1e-6)
	assert.InDelta(t, s.entry.annotation.Width*2, info.ScreenRect.Width, 1e-6)
	assert.InDelta(t, 36, info.FontSize, 1e-6)
	s.CancelTextEntry()
}

func TestSetToolCommitsOpenEntry(t *testing.T) {
	s := newTestSession(t, 600, 400)
	require.True(t, s.SetTool(ToolText))
	s.PointerDown(geometry.NewPoint2D(100, 100))
	s.SetEntryText("note kept on tool switch")

	require.True(t, s.SetTool(ToolBrush))

	texts := s.Texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "note kept on tool switch", texts[0].Text)
	assert.False(t, s.TextEntryInfo().Active)
}
