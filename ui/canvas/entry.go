package canvas

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/editor"
)

// annotationEntry is the floating multi-line input shown over a text
// annotation while it is being created or edited. Typing flows into the
// session draft; Escape cancels. Committing happens in the session, on
// click-away or tool switch.
type annotationEntry struct {
	widget.Entry
	session *editor.Session

	// setting suppresses OnChanged while the canvas itself sets the text.
	setting bool
}

func newAnnotationEntry(session *editor.Session) *annotationEntry {
	e := &annotationEntry{session: session}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	e.OnChanged = func(text string) {
		if e.setting {
			return
		}
		session.SetEntryText(text)
	}
	return e
}

func (e *annotationEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape {
		e.session.CancelTextEntry()
		return
	}
	e.Entry.TypedKey(key)
}
