// Package dialogs provides application dialogs.
package dialogs

import (
	"github.com/Alan-512/AI-vision-studio-sub000/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Generation option choices offered by the export dialog. The model and
// aspect ratio ride along in the payload for the downstream generation
// service; the editor itself does not interpret them.
var (
	ExportModels = []string{"gen-core-1", "gen-core-2", "gen-core-2-turbo"}
	AspectRatios = []string{"match input", "1:1", "4:3", "3:4", "16:9", "9:16"}
	Resolutions  = []string{"1K", "2K", "4K"}
)

// ExportDialog is a property sheet for the mask export options.
type ExportDialog struct {
	opts   export.Options
	window fyne.Window

	modelSelect  *widget.Select
	aspectSelect *widget.Select
	resSelect    *widget.Select

	onExport func(export.Options)
}

// NewExportDialog creates an export dialog seeded with the given options.
// onExport runs only when the user confirms.
func NewExportDialog(opts export.Options, window fyne.Window, onExport func(export.Options)) *ExportDialog {
	return &ExportDialog{
		opts:     opts,
		window:   window,
		onExport: onExport,
	}
}

// Show displays the dialog.
func (d *ExportDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustomConfirm(
		"Export Masks",
		"Export",
		"Cancel",
		content,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			d.applyChanges()
			if d.onExport != nil {
				d.onExport(d.opts)
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(380, 260))
	dlg.Show()
}

func (d *ExportDialog) createContent() fyne.CanvasObject {
	d.modelSelect = widget.NewSelect(ExportModels, nil)
	d.modelSelect.SetSelected(orFirst(d.opts.Model, ExportModels))

	d.aspectSelect = widget.NewSelect(AspectRatios, nil)
	d.aspectSelect.SetSelected(orFirst(d.opts.AspectRatio, AspectRatios))

	d.resSelect = widget.NewSelect(Resolutions, nil)
	d.resSelect.SetSelected(orFirst(d.opts.Resolution, Resolutions))

	form := widget.NewForm(
		widget.NewFormItem("Model", d.modelSelect),
		widget.NewFormItem("Aspect ratio", d.aspectSelect),
		widget.NewFormItem("Resolution", d.resSelect),
	)

	hint := widget.NewLabel("Writes base, preview, and black/white masks\nplus payload.json to the chosen folder.")
	hint.TextStyle.Italic = true

	return container.NewVBox(form, hint)
}

func (d *ExportDialog) applyChanges() {
	d.opts.Model = d.modelSelect.Selected
	d.opts.AspectRatio = d.aspectSelect.Selected
	d.opts.Resolution = d.resSelect.Selected
}

// orFirst returns value if it is one of the choices, else the first choice.
func orFirst(value string, choices []string) string {
	for _, c := range choices {
		if c == value {
			return value
		}
	}
	return choices[0]
}
