package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteDir persists the payload into a directory: payload.json for the
// metadata plus one PNG per artifact. The directory is created if needed.
func WriteDir(p *Payload, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	files := map[string][]byte{
		"base.png":    p.BasePNG,
		"preview.png": p.PreviewPNG,
		"mask.png":    p.MergedPNG,
	}
	for _, r := range p.Regions {
		files[fmt.Sprintf("mask_region_%s.png", r.ID)] = r.MaskPNG
	}
	for name, data := range files {
		if len(data) == 0 {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	meta, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "payload.json"), meta, 0644); err != nil {
		return fmt.Errorf("write payload.json: %w", err)
	}
	return nil
}
