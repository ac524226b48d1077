package scene

import (
	"encoding/json"
	"sort"
)

// Layer is one sparse grid of tiles, at most one tile per cell.
type Layer struct {
	Name      string
	Tiles     map[Cell]Tile
	Visible   bool
	Collision bool
	// TileSheet is the path of the sheet new placements on this layer use.
	TileSheet string
	// SheetIndex is TileSheet's position in Scene.TileSheets, -1 if unset.
	SheetIndex int
}

func NewLayer(name string) Layer {
	return Layer{
		Name:       name,
		Tiles:      make(map[Cell]Tile),
		Visible:    true,
		SheetIndex: -1,
	}
}

// Cells returns the occupied cells sorted row-major.
func (l *Layer) Cells() []Cell {
	cells := make([]Cell, 0, len(l.Tiles))
	for c := range l.Tiles {
		cells = append(cells, c)
	}
	sortCells(cells)
	return cells
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}

// tiles are stored as a list of cell/tile pairs since JSON object keys
// can't be structs
type layerJSON struct {
	Name       string      `json:"name"`
	Tiles      []tileEntry `json:"tiles"`
	Visible    bool        `json:"visible"`
	Collision  bool        `json:"collision"`
	TileSheet  string      `json:"tile_sheet"`
	SheetIndex int         `json:"sheet_index"`
}

type tileEntry struct {
	Cell [2]int `json:"cell"`
	Tile Tile   `json:"tile"`
}

func (l Layer) MarshalJSON() ([]byte, error) {
	out := layerJSON{
		Name:       l.Name,
		Tiles:      make([]tileEntry, 0, len(l.Tiles)),
		Visible:    l.Visible,
		Collision:  l.Collision,
		TileSheet:  l.TileSheet,
		SheetIndex: l.SheetIndex,
	}
	for _, c := range l.Cells() {
		out.Tiles = append(out.Tiles, tileEntry{Cell: [2]int{c.X, c.Y}, Tile: l.Tiles[c]})
	}
	return json.Marshal(out)
}

func (l *Layer) UnmarshalJSON(b []byte) error {
	in := layerJSON{Visible: true, SheetIndex: -1}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	l.Name = in.Name
	l.Visible = in.Visible
	l.Collision = in.Collision
	l.TileSheet = in.TileSheet
	l.SheetIndex = in.SheetIndex
	l.Tiles = make(map[Cell]Tile, len(in.Tiles))
	for _, e := range in.Tiles {
		l.Tiles[Cell{X: e.Cell[0], Y: e.Cell[1]}] = e.Tile
	}
	return nil
}

func (st SubTile) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{st.Col, st.Row})
}

func (st *SubTile) UnmarshalJSON(b []byte) error {
	var v [2]int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	st.Col, st.Row = v[0], v[1]
	return nil
}
