// Package export renders an editing session into generation-ready
// artifacts: one strictly binary mask per region, a merged union mask, a
// composited preview, the untouched base image, and the instruction text
// assembled from the regions.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/annotate"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/raster"
)

// ErrNoImage is returned when the session has no base image to export.
var ErrNoImage = errors.New("no image loaded")

// SessionView is the read surface the exporter needs from a session.
type SessionView interface {
	Store() *raster.LayerStore
	Regions() []*annotate.Region
}

// Options carries generation metadata. The exporter copies it into the
// payload untouched.
type Options struct {
	Model       string `json:"model,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
	Resolution  string `json:"resolution,omitempty"`
}

// RegionArtifact is one region's binary mask plus its editing metadata.
type RegionArtifact struct {
	ID          string `json:"id"`
	Color       string `json:"color"`
	Instruction string `json:"instruction,omitempty"`
	MaskPNG     []byte `json:"-"`
}

// Payload is the complete export bundle. The PNG byte slices are kept out
// of the JSON form; WriteDir persists them as sibling files.
type Payload struct {
	Width        int              `json:"width"`
	Height       int              `json:"height"`
	Options      Options          `json:"options"`
	Regions      []RegionArtifact `json:"regions"`
	Instructions string           `json:"instructions,omitempty"`

	BasePNG    []byte `json:"-"`
	PreviewPNG []byte `json:"-"`
	MergedPNG  []byte `json:"-"`
}

// Build renders the session into a payload. White marks painted pixels,
// black everything else, with no intermediate values. The merged mask is
// the union of every region accumulated onto one transparent surface.
func Build(view SessionView, opts Options) (*Payload, error) {
	store := view.Store()
	if store == nil {
		return nil, ErrNoImage
	}

	w, h := store.Width(), store.Height()
	regions := view.Regions()
	p := &Payload{
		Width:        w,
		Height:       h,
		Options:      opts,
		Instructions: JoinInstructions(regions),
	}

	merged := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, r := range regions {
		if r.Surface == nil {
			continue
		}
		raster.DrawOver(merged, r.Surface.RGBA())

		maskPNG, err := encodePNG(raster.Binarize(r.Surface.RGBA()))
		if err != nil {
			return nil, fmt.Errorf("region %s mask: %w", r.ID, err)
		}
		p.Regions = append(p.Regions, RegionArtifact{
			ID:          r.ID,
			Color:       r.Color,
			Instruction: r.Instruction,
			MaskPNG:     maskPNG,
		})
	}

	var err error
	if p.MergedPNG, err = encodePNG(raster.Binarize(merged)); err != nil {
		return nil, fmt.Errorf("merged mask: %w", err)
	}
	if p.PreviewPNG, err = encodePNG(store.Flatten()); err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	if p.BasePNG, err = encodePNG(store.Base().RGBA()); err != nil {
		return nil, fmt.Errorf("base image: %w", err)
	}
	return p, nil
}

// JoinInstructions assembles the per-region instruction text into one
// numbered block, skipping regions with nothing to say.
func JoinInstructions(regions []*annotate.Region) string {
	var b strings.Builder
	for _, r := range regions {
		instr := strings.TrimSpace(r.Instruction)
		if instr == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Region %s: %s", r.ID, instr)
	}
	return b.String()
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
