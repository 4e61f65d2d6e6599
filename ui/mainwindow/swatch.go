package mainwindow

import (
	"image/color"

	"github.com/Alan-512/AI-vision-studio-sub000/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// swatch is a clickable color square for the paint palette.
type swatch struct {
	widget.BaseWidget
	rect  *fynecanvas.Rectangle
	hex   string
	onTap func(hex string)
}

func newSwatch(hex string, onTap func(string)) *swatch {
	s := &swatch{
		rect:  fynecanvas.NewRectangle(colorutil.ParseHex(hex)),
		hex:   hex,
		onTap: onTap,
	}
	s.rect.CornerRadius = 3
	s.rect.SetMinSize(fyne.NewSize(22, 22))
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) Tapped(*fyne.PointEvent) {
	if s.onTap != nil {
		s.onTap(s.hex)
	}
}

func (s *swatch) setSelected(selected bool) {
	if selected {
		s.rect.StrokeColor = color.White
		s.rect.StrokeWidth = 2
	} else {
		s.rect.StrokeColor = color.Transparent
		s.rect.StrokeWidth = 0
	}
	s.rect.Refresh()
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}
