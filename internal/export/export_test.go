package export

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/annotate"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/editor"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

var (
	maskBlack = color.RGBA{0, 0, 0, 255}
	maskWhite = color.RGBA{255, 255, 255, 255}
)

func newLoadedSession(t *testing.T, w, h int) *editor.Session {
	t.Helper()
	s := editor.NewSession()
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(base.Pix); i += 4 {
		base.Pix[i], base.Pix[i+1], base.Pix[i+2], base.Pix[i+3] = 120, 120, 120, 255
	}
	require.NoError(t, s.LoadImage(base))
	return s
}

func decodeRGBA(t *testing.T, data []byte) *image.RGBA {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func TestBuildRequiresImage(t *testing.T) {
	_, err := Build(editor.NewSession(), Options{})
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestBrushExportScenario(t *testing.T) {
	s := newLoadedSession(t, 800, 600)
	s.SetBrushSize(15)
	s.PointerDown(geometry.NewPoint2D(100, 100))
	s.PointerMove(geometry.NewPoint2D(300, 250))
	s.PointerMove(geometry.NewPoint2D(500, 120))
	s.PointerUp()

	p, err := Build(s, Options{Model: "gen-core-2", AspectRatio: "4:3"})
	require.NoError(t, err)
	assert.Equal(t, 800, p.Width)
	assert.Equal(t, 600, p.Height)
	assert.Equal(t, "gen-core-2", p.Options.Model)
	assert.Equal(t, "4:3", p.Options.AspectRatio)
	require.Len(t, p.Regions, 1)
	assert.Equal(t, "1", p.Regions[0].ID)

	mask := decodeRGBA(t, p.Regions[0].MaskPNG)
	require.Equal(t, 800, mask.Bounds().Dx())
	for y := 0; y < 600; y++ {
		for x := 0; x < 800; x++ {
			px := mask.RGBAAt(x, y)
			if px != maskBlack && px != maskWhite {
				t.Fatalf("mask pixel at (%d,%d) is %v, want pure black or white", x, y, px)
			}
		}
	}
	assert.Equal(t, maskWhite, mask.RGBAAt(100, 100))
	assert.Equal(t, maskWhite, mask.RGBAAt(300, 250))
	assert.Equal(t, maskBlack, mask.RGBAAt(700, 500))

	merged := decodeRGBA(t, p.MergedPNG)
	assert.Equal(t, mask.Pix, merged.Pix, "one region: merged mask equals its mask")

	preview := decodeRGBA(t, p.PreviewPNG)
	base := decodeRGBA(t, p.BasePNG)
	assert.NotEqual(t, base.RGBAAt(300, 250), preview.RGBAAt(300, 250), "preview shows the stroke")
	assert.Equal(t, base.RGBAAt(700, 500), preview.RGBAAt(700, 500), "preview matches the base away from it")
}

func TestMergedMaskUnionsRegions(t *testing.T) {
	s := newLoadedSession(t, 600, 500)
	require.True(t, s.SetTool(editor.ToolRect))

	s.PointerDown(geometry.NewPoint2D(50, 50))
	s.PointerMove(geometry.NewPoint2D(150, 150))
	s.PointerUp()
	s.PointerDown(geometry.NewPoint2D(400, 300))
	s.PointerMove(geometry.NewPoint2D(500, 400))
	s.PointerUp()

	p, err := Build(s, Options{})
	require.NoError(t, err)
	require.Len(t, p.Regions, 2)

	first := decodeRGBA(t, p.Regions[0].MaskPNG)
	second := decodeRGBA(t, p.Regions[1].MaskPNG)
	merged := decodeRGBA(t, p.MergedPNG)

	assert.Equal(t, maskWhite, first.RGBAAt(100, 100))
	assert.Equal(t, maskBlack, first.RGBAAt(450, 350))
	assert.Equal(t, maskBlack, second.RGBAAt(100, 100))
	assert.Equal(t, maskWhite, second.RGBAAt(450, 350))
	assert.Equal(t, maskWhite, merged.RGBAAt(100, 100))
	assert.Equal(t, maskWhite, merged.RGBAAt(450, 350))
	assert.Equal(t, maskBlack, merged.RGBAAt(300, 250))
}

func TestBuildEmptySession(t *testing.T) {
	s := newLoadedSession(t, 40, 30)
	p, err := Build(s, Options{})
	require.NoError(t, err)
	assert.Empty(t, p.Regions)
	assert.Empty(t, p.Instructions)

	merged := decodeRGBA(t, p.MergedPNG)
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			require.Equal(t, maskBlack, merged.RGBAAt(x, y))
		}
	}
}

func TestBuildCarriesInstructions(t *testing.T) {
	s := newLoadedSession(t, 600, 400)
	require.True(t, s.SetTool(editor.ToolMarker))
	s.PointerDown(geometry.NewPoint2D(100, 100))
	s.PointerUp()

	require.True(t, s.SetTool(editor.ToolText))
	s.PointerDown(geometry.NewPoint2D(250, 200))
	s.PointerUp()
	s.SetEntryText("Remove the lamp post")
	s.CommitTextEntry()

	p, err := Build(s, Options{})
	require.NoError(t, err)
	require.Len(t, p.Regions, 1)
	assert.Equal(t, "Remove the lamp post", p.Regions[0].Instruction)
	assert.Equal(t, "Region 1: Remove the lamp post", p.Instructions)
}

func TestJoinInstructions(t *testing.T) {
	regions := []*annotate.Region{
		{ID: "1", Instruction: "Fix the lamp"},
		{ID: "2"},
		{ID: "3", Instruction: "  Brighten the sky  "},
	}
	assert.Equal(t, "Region 1: Fix the lamp\nRegion 3: Brighten the sky", JoinInstructions(regions))
	assert.Empty(t, JoinInstructions(nil))
}

func TestWriteDir(t *testing.T) {
	s := newLoadedSession(t, 200, 150)
	s.PointerDown(geometry.NewPoint2D(50, 50))
	s.PointerUp()

	p, err := Build(s, Options{Model: "gen-core-2"})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteDir(p, dir))

	for _, name := range []string{"base.png", "preview.png", "mask.png", "mask_region_1.png", "payload.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "payload.json"))
	require.NoError(t, err)
	var decoded Payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "gen-core-2", decoded.Options.Model)
	require.Len(t, decoded.Regions, 1)
	assert.Equal(t, "1", decoded.Regions[0].ID)
}
