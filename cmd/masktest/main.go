// Command masktest replays a scripted editing session against an image and
// exports the resulting masks, so the full pipeline can be exercised without
// a display.
//
// The script is a TOML file of actions:
//
//	brush_color = "#ef4444"
//	brush_size = 14
//
//	[[action]]
//	type = "stroke"
//	points = [[100, 100], [300, 250]]
//
//	[[action]]
//	type = "rect"
//	from = [50, 50]
//	to = [400, 300]
//
//	[[action]]
//	type = "text"
//	at = [150, 150]
//	text = "Remove the lamp post"
//
// Supported types: stroke, erase, rect, marker, arrow, text, undo, clear.
// Coordinates are native image pixels.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Alan-512/AI-vision-studio-sub000/internal/editor"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/export"
	"github.com/Alan-512/AI-vision-studio-sub000/internal/imaging"
	"github.com/Alan-512/AI-vision-studio-sub000/pkg/geometry"

	"github.com/pelletier/go-toml/v2"
)

type script struct {
	BrushColor  string  `toml:"brush_color"`
	BrushSize   float64 `toml:"brush_size"`
	TextSize    float64 `toml:"text_size"`
	Model       string  `toml:"model"`
	AspectRatio string  `toml:"aspect_ratio"`
	Resolution  string  `toml:"resolution"`

	Actions []action `toml:"action"`
}

type action struct {
	Type   string      `toml:"type"`
	Color  string      `toml:"color"`
	Size   float64     `toml:"size"`
	Points [][]float64 `toml:"points"`
	From   []float64   `toml:"from"`
	To     []float64   `toml:"to"`
	At     []float64   `toml:"at"`
	Text   string      `toml:"text"`
}

func main() {
	imagePath := flag.String("image", "", "Path to base image (PNG, JPEG, or TIFF)")
	scriptPath := flag.String("script", "", "Path to TOML edit script")
	outDir := flag.String("out", "masktest-out", "Output directory for masks and payload")
	flag.Parse()

	if *imagePath == "" || *scriptPath == "" {
		fmt.Println("Usage: masktest -image <path> -script <edits.toml> [-out dir]")
		os.Exit(1)
	}

	img, err := imaging.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read script: %v\n", err)
		os.Exit(1)
	}

	var sc script
	if err := toml.Unmarshal(data, &sc); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse script: %v\n", err)
		os.Exit(1)
	}

	session := editor.NewSession()
	if err := session.LoadImage(img); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load session: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded image: %dx%d pixels\n", bounds.Dx(), bounds.Dy())

	applySettings(session, &sc)

	for i, act := range sc.Actions {
		if err := apply(session, act); err != nil {
			fmt.Fprintf(os.Stderr, "Action %d (%s): %v\n", i+1, act.Type, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Applied %d actions: %d regions, %d texts, %d arrows\n",
		len(sc.Actions), len(session.Regions()), len(session.Texts()), len(session.Arrows()))

	opts := export.Options{Model: sc.Model, AspectRatio: sc.AspectRatio, Resolution: sc.Resolution}
	payload, err := export.Build(session, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	if err := export.WriteDir(payload, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote masks for %d regions to %s\n", len(payload.Regions), *outDir)
	if payload.Instructions != "" {
		fmt.Printf("\nInstructions:\n%s\n", payload.Instructions)
	}
}

func applySettings(s *editor.Session, sc *script) {
	if sc.BrushColor != "" {
		s.SetBrushColor(sc.BrushColor)
	}
	if sc.BrushSize > 0 {
		s.SetBrushSize(sc.BrushSize)
	}
	if sc.TextSize > 0 {
		s.SetTextSize(sc.TextSize)
	}
}

// apply translates one script action into the pointer and tool calls a user
// would make. The viewport stays at identity, so script coordinates map
// straight onto native pixels.
func apply(s *editor.Session, act action) error {
	if act.Color != "" {
		s.SetBrushColor(act.Color)
	}
	if act.Size > 0 {
		s.SetBrushSize(act.Size)
	}

	switch act.Type {
	case "stroke", "erase":
		pts, err := points(act.Points)
		if err != nil {
			return err
		}
		if len(pts) == 0 {
			return fmt.Errorf("needs at least one point")
		}
		tool := editor.ToolBrush
		if act.Type == "erase" {
			tool = editor.ToolEraser
		}
		s.SetTool(tool)
		s.PointerDown(pts[0])
		for _, p := range pts[1:] {
			s.PointerMove(p)
		}
		s.PointerUp()

	case "rect", "arrow":
		from, err := pt(act.From)
		if err != nil {
			return fmt.Errorf("from: %w", err)
		}
		to, err := pt(act.To)
		if err != nil {
			return fmt.Errorf("to: %w", err)
		}
		tool := editor.ToolRect
		if act.Type == "arrow" {
			tool = editor.ToolArrow
		}
		s.SetTool(tool)
		s.PointerDown(from)
		s.PointerMove(to)
		s.PointerUp()

	case "marker":
		at, err := pt(act.At)
		if err != nil {
			return fmt.Errorf("at: %w", err)
		}
		s.SetTool(editor.ToolMarker)
		s.PointerDown(at)
		s.PointerUp()

	case "text":
		at, err := pt(act.At)
		if err != nil {
			return fmt.Errorf("at: %w", err)
		}
		if act.Text == "" {
			return fmt.Errorf("needs text")
		}
		s.SetTool(editor.ToolText)
		s.PointerDown(at)
		s.PointerUp()
		s.SetEntryText(act.Text)
		s.CommitTextEntry()

	case "undo":
		s.Undo()

	case "clear":
		s.ClearAll()

	default:
		return fmt.Errorf("unknown action type %q", act.Type)
	}
	return nil
}

func points(raw [][]float64) ([]geometry.Point2D, error) {
	out := make([]geometry.Point2D, 0, len(raw))
	for _, r := range raw {
		p, err := pt(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func pt(raw []float64) (geometry.Point2D, error) {
	if len(raw) != 2 {
		return geometry.Point2D{}, fmt.Errorf("point needs [x, y], got %v", raw)
	}
	return geometry.Point2D{X: raw[0], Y: raw[1]}, nil
}
