package editor

// Tool identifies the active editing tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolRect
	ToolMarker
	ToolArrow
	ToolText
	ToolPan
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "Brush"
	case ToolEraser:
		return "Eraser"
	case ToolRect:
		return "Rectangle"
	case ToolMarker:
		return "Marker"
	case ToolArrow:
		return "Arrow"
	case ToolText:
		return "Text"
	case ToolPan:
		return "Pan"
	default:
		return "Unknown"
	}
}

// RegionPolicy declares how a tool binds to regions at gesture start.
// Reuse means the tool paints into the active region when one exists;
// CreateNew means it mints a fresh region (for Reuse tools, only when none
// is active). Tools with neither never touch region rasters.
type RegionPolicy struct {
	Reuse     bool
	CreateNew bool
}

var regionPolicies = map[Tool]RegionPolicy{
	ToolBrush:  {Reuse: true, CreateNew: true},
	ToolEraser: {Reuse: true, CreateNew: false},
	ToolRect:   {Reuse: false, CreateNew: true},
	ToolMarker: {Reuse: false, CreateNew: true},
	ToolArrow:  {},
	ToolText:   {},
	ToolPan:    {},
}

// Policy returns the tool's region binding policy.
func (t Tool) Policy() RegionPolicy {
	return regionPolicies[t]
}
