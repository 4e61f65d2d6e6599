// Package canvas provides the editing surface widget: it displays the
// session's composited layers with pan and zoom and feeds pointer input
// into the session in viewport coordinates.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/editor"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

// EditorCanvas renders an editing session and routes pointer events to it.
// The scroll offset is mirrored into the session viewport so the session's
// coordinate mapper always reflects what is on screen.
type EditorCanvas struct {
	widget.BaseWidget

	session *editor.Session

	raster  *fynecanvas.Raster
	content *pointerContent
	scroll  *zoomScroll
	entry   *annotationEntry

	imgSize fyne.Size
}

// NewEditorCanvas creates the canvas for a session and subscribes to its
// repaint events.
func NewEditorCanvas(session *editor.Session) *EditorCanvas {
	ec := &EditorCanvas{
		session: session,
		imgSize: fyne.NewSize(400, 300),
	}

	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.raster.SetMinSize(ec.imgSize)

	ec.content = newPointerContent(ec, ec.raster)
	ec.scroll = newZoomScroll(ec.content, ec)
	ec.entry = newAnnotationEntry(session)
	ec.entry.Hide()

	repaint := func(interface{}) { ec.raster.Refresh() }
	session.On(editor.EventMaskChanged, repaint)
	session.On(editor.EventOverlaysChanged, repaint)
	session.On(editor.EventRegionsChanged, repaint)
	session.On(editor.EventImageLoaded, func(interface{}) {
		ec.scroll.SetOffset(fyne.Position{})
		ec.updateContentSize()
	})
	session.On(editor.EventViewportChanged, func(interface{}) {
		ec.updateContentSize()
		ec.syncEntryGeometry()
	})
	session.On(editor.EventTextEntryOpened, func(interface{}) { ec.openEntry() })
	session.On(editor.EventTextEntryChanged, func(interface{}) { ec.syncEntryGeometry() })
	session.On(editor.EventTextEntryClosed, func(interface{}) { ec.closeEntry() })

	ec.ExtendBaseWidget(ec)
	return ec
}

// Session returns the session this canvas displays.
func (ec *EditorCanvas) Session() *editor.Session {
	return ec.session
}

// FitToWindow zooms the session so the whole image is visible and rewinds
// the scroll to the origin.
func (ec *EditorCanvas) FitToWindow() {
	size := ec.scroll.Size()
	ec.scroll.SetOffset(fyne.Position{})
	ec.session.FitToWindow(float64(size.Width), float64(size.Height))
}

// Refresh refreshes the canvas display.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
}

// syncPan mirrors the scroll offset into the session viewport.
func (ec *EditorCanvas) syncPan() {
	off := ec.scroll.Offset()
	ec.session.SetPan(float64(off.X), float64(off.Y))
}

// scrollBy pans the scroll container, for drag-panning with the pan tool.
func (ec *EditorCanvas) scrollBy(dx, dy float32) {
	off := ec.scroll.Offset()
	ec.scroll.SetOffset(fyne.NewPos(off.X+dx, off.Y+dy))
	ec.syncPan()
}

// updateContentSize resizes the raster to the zoomed image.
func (ec *EditorCanvas) updateContentSize() {
	store := ec.session.Store()
	if store == nil {
		ec.imgSize = fyne.NewSize(400, 300)
	} else {
		zoom := ec.session.Viewport().Zoom
		ec.imgSize = fyne.NewSize(
			float32(float64(store.Width())*zoom),
			float32(float64(store.Height())*zoom),
		)
	}

	ec.raster.SetMinSize(ec.imgSize)
	ec.raster.Resize(ec.imgSize)
	if ec.content != nil {
		ec.content.Resize(ec.imgSize)
		ec.content.Refresh()
	}
	ec.raster.Refresh()
	if ec.scroll != nil {
		ec.scroll.Refresh()
	}
}

// draw renders the session layers scaled to the current zoom. Nearest
// neighbor keeps mask pixels crisp when zoomed in.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}

	store := ec.session.Store()
	if store == nil || w <= 0 || h <= 0 {
		return out
	}

	flat := store.Flatten()
	zoom := ec.session.Viewport().Zoom
	dw := int(float64(store.Width())*zoom + 0.5)
	dh := int(float64(store.Height())*zoom + 0.5)
	if dw > w {
		dw = w
	}
	if dh > h {
		dh = h
	}
	xdraw.NearestNeighbor.Scale(out, image.Rect(0, 0, dw, dh), flat, flat.Bounds(), xdraw.Src, nil)
	return out
}

func (ec *EditorCanvas) openEntry() {
	info := ec.session.TextEntryInfo()
	if !info.Active {
		return
	}
	ec.entry.setting = true
	ec.entry.SetText(info.Draft)
	ec.entry.setting = false
	ec.entry.Show()
	ec.syncEntryGeometry()
	if c := fyne.CurrentApp().Driver().CanvasForObject(ec.entry); c != nil {
		c.Focus(ec.entry)
	}
}

func (ec *EditorCanvas) closeEntry() {
	if c := fyne.CurrentApp().Driver().CanvasForObject(ec.entry); c != nil {
		c.Unfocus()
	}
	ec.entry.Hide()
	ec.raster.Refresh()
}

// syncEntryGeometry keeps the floating entry over the annotation box it is
// editing, in viewport coordinates.
func (ec *EditorCanvas) syncEntryGeometry() {
	info := ec.session.TextEntryInfo()
	if !info.Active {
		return
	}
	const pad = float32(8)
	w := float32(info.ScreenRect.Width) + 2*pad
	h := float32(info.ScreenRect.Height) + 2*pad
	min := ec.entry.MinSize()
	if w < min.Width {
		w = min.Width
	}
	if h < min.Height {
		h = min.Height
	}
	ec.entry.Move(fyne.NewPos(float32(info.ScreenRect.X)-pad, float32(info.ScreenRect.Y)-pad))
	ec.entry.Resize(fyne.NewSize(w, h))
	ec.entry.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &editorCanvasRenderer{canvas: ec}
}

type editorCanvasRenderer struct {
	canvas *EditorCanvas
}

func (r *editorCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.scroll.Resize(size)
	r.canvas.syncEntryGeometry()
}

func (r *editorCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *editorCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *editorCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll, r.canvas.entry}
}

func (r *editorCanvasRenderer) Destroy() {}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *EditorCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *EditorCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	scroll.OnScrolled = func(fyne.Position) { canvas.syncPan() }
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.session.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.session.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// SetOffset scrolls to an absolute offset.
func (zs *zoomScroll) SetOffset(pos fyne.Position) {
	zs.scroll.Offset = pos
	zs.scroll.Refresh()
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// pointerContent wraps the raster and converts Fyne pointer events into
// session gestures. Event positions are viewport-relative, which is exactly
// the coordinate space the session mapper expects.
type pointerContent struct {
	widget.BaseWidget
	canvas *EditorCanvas
	raster *fynecanvas.Raster
}

func newPointerContent(ec *EditorCanvas, raster *fynecanvas.Raster) *pointerContent {
	pc := &pointerContent{
		canvas: ec,
		raster: raster,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *pointerContent) CreateRenderer() fyne.WidgetRenderer {
	return &pointerContentRenderer{content: pc}
}

func (pc *pointerContent) MinSize() fyne.Size {
	return pc.raster.MinSize()
}

func (pc *pointerContent) point(p fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(p.X), float64(p.Y))
}

func (pc *pointerContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.canvas.syncPan()
	pc.canvas.session.PointerDown(pc.point(ev.Position))
}

func (pc *pointerContent) MouseUp(_ *desktop.MouseEvent) {
	pc.canvas.session.PointerUp()
}

func (pc *pointerContent) Dragged(ev *fyne.DragEvent) {
	if pc.canvas.session.Tool() == editor.ToolPan {
		pc.canvas.scrollBy(-ev.Dragged.DX, -ev.Dragged.DY)
		return
	}
	pc.canvas.session.PointerMove(pc.point(ev.Position))
}

func (pc *pointerContent) DragEnd() {
	pc.canvas.session.PointerUp()
}

func (pc *pointerContent) MouseIn(*desktop.MouseEvent) {}

func (pc *pointerContent) MouseMoved(ev *desktop.MouseEvent) {
	pc.canvas.session.PointerMove(pc.point(ev.Position))
}

// MouseOut finalizes any gesture so a stroke cannot dangle across a leave
// and re-enter.
func (pc *pointerContent) MouseOut() {
	pc.canvas.session.PointerLeave()
}

func (pc *pointerContent) DoubleTapped(ev *fyne.PointEvent) {
	pc.canvas.syncPan()
	pc.canvas.session.DoubleClick(pc.point(ev.Position))
}

func (pc *pointerContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		pc.canvas.session.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		pc.canvas.session.ZoomOut()
	}
}

type pointerContentRenderer struct {
	content *pointerContent
}

func (r *pointerContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *pointerContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *pointerContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *pointerContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *pointerContentRenderer) Destroy() {}
