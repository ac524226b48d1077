package main

// Tool is the action the left mouse button performs on the canvas.
type Tool int

const (
	ToolPlace Tool = iota
	ToolErase
)

var toolNames = []string{"Place", "Erase"}

func (t Tool) String() string {
	if int(t) >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "Unknown"
}

// SheetEntry is a row of the tile sheet list.
type SheetEntry struct {
	Index int
	Path  string
}

// LayerEntry is a row of the layer list.
type LayerEntry struct {
	Index     int
	Name      string
	Visible   bool
	Collision bool
}
