// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/editor"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/export"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/imaging"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/version"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/colorutil"
	"github.com/Alan-512/AI-vision-studio-sub000/ui/canvas"
	"github.com/Alan-512/AI-vision-studio-sub000/ui/dialogs"
	"github.com/Alan-512/AI-vision-studio-sub000/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/atotto/clipboard"
)

const appTitle = "Mask Studio"

// toolbarTools is the toolbar order, left to right.
var toolbarTools = []editor.Tool{
	editor.ToolBrush,
	editor.ToolEraser,
	editor.ToolRect,
	editor.ToolMarker,
	editor.ToolArrow,
	editor.ToolText,
	editor.ToolPan,
}

var toolHints = map[editor.Tool]string{
	editor.ToolBrush:  "Drag to paint mask strokes",
	editor.ToolEraser: "Drag to erase from the active region",
	editor.ToolRect:   "Drag to mark a rectangular area",
	editor.ToolMarker: "Click to drop a numbered marker",
	editor.ToolArrow:  "Drag from tail to tip",
	editor.ToolText:   "Click to write an instruction, double-click to edit",
	editor.ToolPan:    "Drag to pan, scroll wheel to zoom",
}

// prefSnapshot captures the values SavePreferences writes, so the periodic
// flush can skip disk writes when nothing changed.
type prefSnapshot struct {
	brushSize  float64
	brushColor string
	textSize   float64
	winW, winH float32
}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	session *editor.Session
	prefs   *prefs.Prefs

	canvas    *canvas.EditorCanvas
	statusBar *widget.Label
	infoLabel *widget.Label
	zoomLabel *widget.Label

	toolButtons map[editor.Tool]*widget.Button
	swatches    []*swatch
	sizeSlider  *widget.Slider
	undoButton  *widget.Button
	clearButton *widget.Button

	lastSaved prefSnapshot
}

// New creates the main window around an editing session.
func New(fyneApp fyne.App, session *editor.Session, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: session,
		prefs:   p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restorePreferences()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewEditorCanvas(mw.session)

	mw.statusBar = widget.NewLabel("Open an image to begin")
	mw.infoLabel = widget.NewLabel("")

	toolbar := mw.createToolbar()

	statusRow := container.NewBorder(
		nil, nil,
		nil, mw.infoLabel,
		mw.statusBar,
	)

	content := container.NewBorder(
		toolbar,   // top
		statusRow, // bottom
		nil,       // left
		nil,       // right
		mw.canvas, // center
	)

	mw.SetContent(content)
}

// createToolbar builds the tool buttons, color palette, brush size slider,
// and the edit/zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	bar := container.NewHBox()

	mw.toolButtons = make(map[editor.Tool]*widget.Button)
	for _, tool := range toolbarTools {
		tool := tool
		btn := widget.NewButton(tool.String(), func() {
			mw.selectTool(tool)
		})
		mw.toolButtons[tool] = btn
		bar.Add(btn)
	}
	bar.Add(widget.NewSeparator())

	for _, hex := range colorutil.Palette {
		sw := newSwatch(hex, func(hex string) {
			mw.session.SetBrushColor(hex)
			mw.refreshSwatches()
		})
		mw.swatches = append(mw.swatches, sw)
		bar.Add(sw)
	}
	bar.Add(widget.NewSeparator())

	sizeValue := widget.NewLabel(fmt.Sprintf("%.0f px", mw.session.BrushSize()))
	mw.sizeSlider = widget.NewSlider(1, 60)
	mw.sizeSlider.Value = mw.session.BrushSize()
	mw.sizeSlider.OnChanged = func(v float64) {
		mw.session.SetBrushSize(v)
		sizeValue.SetText(fmt.Sprintf("%.0f px", v))
	}
	bar.Add(container.NewGridWrap(fyne.NewSize(120, 36), mw.sizeSlider))
	bar.Add(sizeValue)
	bar.Add(widget.NewSeparator())

	mw.undoButton = widget.NewButton("Undo", mw.onUndo)
	mw.undoButton.Disable()
	mw.clearButton = widget.NewButton("Clear", mw.onClearAll)
	mw.clearButton.Disable()
	bar.Add(mw.undoButton)
	bar.Add(mw.clearButton)
	bar.Add(widget.NewSeparator())

	mw.zoomLabel = widget.NewLabel("100%")
	bar.Add(widget.NewButton("-", mw.onZoomOut))
	bar.Add(mw.zoomLabel)
	bar.Add(widget.NewButton("+", mw.onZoomIn))
	bar.Add(widget.NewButton("Fit", mw.onFitToWindow))
	bar.Add(widget.NewButton("1:1", mw.onActualSize))

	return container.NewHScroll(bar)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	openItem := fyne.NewMenuItem("Open Image...", mw.onOpenImage)
	openItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}

	fileMenu := fyne.NewMenu("File",
		openItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Masks...", mw.onExportMasks),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	undoItem := fyne.NewMenuItem("Undo", mw.onUndo)
	undoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}

	editMenu := fyne.NewMenu("Edit",
		undoItem,
		fyne.NewMenuItem("Clear All", mw.onClearAll),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.onFitToWindow),
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	toolsMenu := fyne.NewMenu("Tools")
	for _, tool := range toolbarTools {
		tool := tool
		toolsMenu.Items = append(toolsMenu.Items, fyne.NewMenuItem(tool.String(), func() {
			mw.selectTool(tool)
		}))
	}

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu))
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(editor.EventImageLoaded, func(data interface{}) {
		mw.canvas.FitToWindow()
		mw.refreshEditState()
		store := mw.session.Store()
		mw.updateStatus(fmt.Sprintf("Image loaded (%d x %d)", store.Width(), store.Height()))
	})

	mw.session.On(editor.EventToolChanged, func(data interface{}) {
		mw.refreshToolButtons()
		mw.updateStatus(toolHints[mw.session.Tool()])
	})

	mw.session.On(editor.EventHistoryChanged, func(data interface{}) {
		mw.refreshEditState()
	})

	mw.session.On(editor.EventRegionsChanged, func(data interface{}) {
		mw.refreshInfo()
	})

	mw.session.On(editor.EventViewportChanged, func(data interface{}) {
		zoom := mw.session.Viewport().Zoom
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", zoom*100))
	})

	mw.session.On(editor.EventTextEntryOpened, func(data interface{}) {
		mw.updateStatus("Escape cancels, clicking away commits")
	})
}

// restorePreferences applies saved settings to the session and window.
func (mw *MainWindow) restorePreferences() {
	mw.session.SetBrushSize(mw.prefs.FloatWithFallback(prefs.KeyBrushSize, mw.session.BrushSize()))
	mw.session.SetTextSize(mw.prefs.FloatWithFallback(prefs.KeyTextSize, mw.session.TextSize()))
	if hex := mw.prefs.String(prefs.KeyBrushColor); hex != "" {
		mw.session.SetBrushColor(hex)
	}
	mw.sizeSlider.Value = mw.session.BrushSize()
	mw.refreshSwatches()
	mw.refreshToolButtons()

	w := mw.prefs.FloatWithFallback(prefs.KeyWindowW, 1200)
	h := mw.prefs.FloatWithFallback(prefs.KeyWindowH, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
	mw.lastSaved = mw.snapshotPrefs()
}

// SavePreferences writes the current settings to disk.
func (mw *MainWindow) SavePreferences() {
	snap := mw.snapshotPrefs()
	mw.prefs.SetFloat(prefs.KeyBrushSize, snap.brushSize)
	mw.prefs.SetString(prefs.KeyBrushColor, snap.brushColor)
	mw.prefs.SetFloat(prefs.KeyTextSize, snap.textSize)
	mw.prefs.SetFloat(prefs.KeyWindowW, float64(snap.winW))
	mw.prefs.SetFloat(prefs.KeyWindowH, float64(snap.winH))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
	mw.lastSaved = snap
}

// SavePreferencesIfChanged writes settings only when they differ from the
// last save. Called periodically from the hot reload ticker.
func (mw *MainWindow) SavePreferencesIfChanged() {
	if mw.snapshotPrefs() == mw.lastSaved {
		return
	}
	mw.SavePreferences()
}

func (mw *MainWindow) snapshotPrefs() prefSnapshot {
	size := mw.Canvas().Size()
	return prefSnapshot{
		brushSize:  mw.session.BrushSize(),
		brushColor: mw.session.BrushColor(),
		textSize:   mw.session.TextSize(),
		winW:       size.Width,
		winH:       size.Height,
	}
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) refreshInfo() {
	n := len(mw.session.Regions())
	switch n {
	case 0:
		mw.infoLabel.SetText("")
	case 1:
		mw.infoLabel.SetText("1 region")
	default:
		mw.infoLabel.SetText(fmt.Sprintf("%d regions", n))
	}
}

func (mw *MainWindow) refreshToolButtons() {
	active := mw.session.Tool()
	for tool, btn := range mw.toolButtons {
		if tool == active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

func (mw *MainWindow) refreshSwatches() {
	current := mw.session.BrushColor()
	for _, sw := range mw.swatches {
		sw.setSelected(sw.hex == current)
	}
}

// refreshEditState enables undo/clear according to the session state. The
// first history entry is the load checkpoint, so undo needs at least two.
func (mw *MainWindow) refreshEditState() {
	if mw.session.HistoryLen() > 1 {
		mw.undoButton.Enable()
	} else {
		mw.undoButton.Disable()
	}
	if mw.session.Loaded() {
		mw.clearButton.Enable()
	} else {
		mw.clearButton.Disable()
	}
	mw.refreshInfo()
}

// lastDir returns the directory stored under the given preference key as a
// ListableURI, or nil.
func (mw *MainWindow) lastDir(key string) fyne.ListableURI {
	path := mw.prefs.String(key)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// Toolbar and menu action handlers

func (mw *MainWindow) selectTool(tool editor.Tool) {
	if !mw.session.SetTool(tool) {
		mw.updateStatus("Finish the current stroke before switching tools")
	}
}

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		mw.OpenImagePath(reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imaging.SupportedExtensions()))
	if loc := mw.lastDir(prefs.KeyLastImage); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// OpenImagePath loads the image at path into the session.
func (mw *MainWindow) OpenImagePath(path string) {
	img, err := imaging.Load(path)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	if err := mw.session.LoadImage(img); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.SetString(prefs.KeyLastImage, filepath.Dir(path))
	mw.SetTitle(appTitle + " - " + filepath.Base(path))
}

func (mw *MainWindow) onExportMasks() {
	if !mw.session.Loaded() {
		mw.updateStatus("Open an image before exporting")
		return
	}
	opts := export.Options{
		Model:       mw.prefs.String(prefs.KeyModel),
		AspectRatio: mw.prefs.String(prefs.KeyAspectRatio),
		Resolution:  mw.prefs.String(prefs.KeyResolution),
	}
	dialogs.NewExportDialog(opts, mw.Window, func(opts export.Options) {
		mw.prefs.SetString(prefs.KeyModel, opts.Model)
		mw.prefs.SetString(prefs.KeyAspectRatio, opts.AspectRatio)
		mw.prefs.SetString(prefs.KeyResolution, opts.Resolution)
		mw.chooseExportDir(opts)
	}).Show()
}

func (mw *MainWindow) chooseExportDir(opts export.Options) {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		mw.runExport(opts, uri.Path())
	}, mw.Window)
	if loc := mw.lastDir(prefs.KeyExportDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) runExport(opts export.Options, dir string) {
	payload, err := export.Build(mw.session, opts)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	if err := export.WriteDir(payload, dir); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.SetString(prefs.KeyExportDir, dir)

	note := ""
	if payload.Instructions != "" {
		if err := clipboard.WriteAll(payload.Instructions); err != nil {
			log.Printf("copy instructions to clipboard: %v", err)
		} else {
			note = ", instructions copied"
		}
	}
	mw.updateStatus(fmt.Sprintf("Exported %d region masks to %s%s", len(payload.Regions), dir, note))
}

func (mw *MainWindow) onUndo() {
	mw.session.Undo()
}

func (mw *MainWindow) onClearAll() {
	if !mw.session.Loaded() {
		return
	}
	mw.session.ClearAll()
	mw.updateStatus("Cleared all regions (undo restores them)")
}

func (mw *MainWindow) onZoomIn()  { mw.session.ZoomIn() }
func (mw *MainWindow) onZoomOut() { mw.session.ZoomOut() }

func (mw *MainWindow) onFitToWindow() {
	mw.canvas.FitToWindow()
}

func (mw *MainWindow) onActualSize() {
	mw.session.SetZoom(1.0)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s\n\nPaint masks over a photo, number the regions,\nand export black/white masks with per-region\nedit instructions.", version.String()),
		mw.Window)
}
