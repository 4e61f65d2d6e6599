package annotate

import (
	"strings"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/raster"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"
)

// Region is one paintable unit of the session. Its ID comes from the
// session label counter ("1", "2", ...) and doubles as the display label on
// marker badges and rectangle tags. Every region owns exactly one raster
// surface at native resolution; markers and labels live on shared overlays
// instead.
type Region struct {
	ID          string            `json:"id"`
	Color       string            `json:"color"`
	Instruction string            `json:"instruction"`
	Marker      *geometry.Point2D `json:"marker,omitempty"`
	RectLabel   *geometry.Point2D `json:"rectLabel,omitempty"`

	Surface *raster.Surface `json:"-" copier:"-"`
}

// ReplaceInstructionLine swaps the instruction line matching old (compared
// after trimming) for the new text, appending instead when nothing matches.
// This keeps a linked text annotation and its region instruction in sync
// through edits.
func (r *Region) ReplaceInstructionLine(old, new string) {
	if r.Instruction == "" {
		r.Instruction = new
		return
	}
	if trimmed := strings.TrimSpace(old); trimmed != "" {
		lines := strings.Split(r.Instruction, "\n")
		for i, l := range lines {
			if strings.TrimSpace(l) == trimmed {
				lines[i] = new
				r.Instruction = strings.Join(lines, "\n")
				return
			}
		}
	}
	r.Instruction += "\n" + new
}
