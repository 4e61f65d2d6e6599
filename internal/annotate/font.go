// Package annotate holds the vector annotation model layered over the mask
// rasters: regions with their labels, movable wrapped text notes, and
// arrows, plus the renderers that paint them onto overlay surfaces.
package annotate

import (
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
)

const faceCacheSize = 32

var (
	fontOnce  sync.Once
	labelFont *truetype.Font
	faces     *lru.Cache[int, font.Face]
	faceMu    sync.Mutex
)

func initFont() {
	fontOnce.Do(func() {
		f, err := truetype.Parse(gobold.TTF)
		if err != nil {
			return
		}
		labelFont = f
		faces, _ = lru.New[int, font.Face](faceCacheSize)
	})
}

// Face returns the annotation typeface at the given pixel size. Faces are
// cached per rounded size; sizes below one pixel are clamped up.
func Face(sizePx float64) font.Face {
	initFont()
	if labelFont == nil {
		return basicfont.Face7x13
	}

	key := int(math.Round(sizePx))
	if key < 1 {
		key = 1
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faces.Get(key); ok {
		return f
	}
	f := truetype.NewFace(labelFont, &truetype.Options{
		Size:    float64(key),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	faces.Add(key, f)
	return f
}

// LineHeight returns the layout line height for a font size.
func LineHeight(sizePx float64) float64 {
	return sizePx * lineHeightFactor
}

const lineHeightFactor = 1.2
