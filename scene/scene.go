package scene

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateSheet = errors.New("duplicate tile sheet")
	ErrZeroTileCount  = errors.New("tile count must be positive")
	ErrUnknownSheet   = errors.New("unknown tile sheet")
	ErrLayerIndex     = errors.New("layer index out of range")
	ErrSheetIndex     = errors.New("tile sheet index out of range")
	ErrMarkerIndex    = errors.New("marker index out of range")
)

// Cell is a grid key: the snapped world position of a tile, in pixels.
type Cell struct {
	X, Y int
}

// SubTile addresses one tile inside a sheet.
type SubTile struct {
	Col, Row int
}

// Tile is a placed tile. X and Y are the world position it was snapped to.
type Tile struct {
	Sheet   string  `json:"sheet"`
	SubTile SubTile `json:"sheet_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Marker is a named point in the scene, e.g. a spawn location.
type Marker struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Scene is one editable map: its tile sheets, layers and markers.
type Scene struct {
	Name       string      `json:"name"`
	Path       string      `json:"path"`
	TileSheets []TileSheet `json:"tile_sheets"`
	Layers     []Layer     `json:"layers"`
	Markers    []Marker    `json:"markers,omitempty"`
}

// New returns a scene with a single empty layer.
func New(name, path string) *Scene {
	return &Scene{
		Name:   name,
		Path:   path,
		Layers: []Layer{NewLayer("Layer 0")},
	}
}

// SheetIndex returns the index of the sheet stored at path, or -1.
func (s *Scene) SheetIndex(path string) int {
	for i := range s.TileSheets {
		if s.TileSheets[i].Path == path {
			return i
		}
	}
	return -1
}

// Sheet looks up a tile sheet by path.
func (s *Scene) Sheet(path string) (*TileSheet, bool) {
	i := s.SheetIndex(path)
	if i < 0 {
		return nil, false
	}
	return &s.TileSheets[i], true
}

func (s *Scene) AddTileSheet(sheet TileSheet) error {
	if s.SheetIndex(sheet.Path) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateSheet, sheet.Path)
	}
	s.TileSheets = append(s.TileSheets, sheet)
	s.resolveSheetIndices()
	return nil
}

// RemoveTileSheet drops the sheet at idx. Layers and tiles that referenced
// it keep the path; they render as missing until a sheet with that path is
// added again.
func (s *Scene) RemoveTileSheet(idx int) (TileSheet, error) {
	if idx < 0 || idx >= len(s.TileSheets) {
		return TileSheet{}, fmt.Errorf("%w: %d", ErrSheetIndex, idx)
	}
	removed := s.TileSheets[idx]
	s.TileSheets = append(s.TileSheets[:idx], s.TileSheets[idx+1:]...)
	if len(s.TileSheets) == 0 {
		s.TileSheets = nil
	}
	s.resolveSheetIndices()
	return removed, nil
}

func (s *Scene) resolveSheetIndices() {
	for i := range s.Layers {
		s.Layers[i].SheetIndex = s.SheetIndex(s.Layers[i].TileSheet)
	}
}

// Layer returns the layer at idx.
func (s *Scene) Layer(idx int) (*Layer, error) {
	if idx < 0 || idx >= len(s.Layers) {
		return nil, fmt.Errorf("%w: %d", ErrLayerIndex, idx)
	}
	return &s.Layers[idx], nil
}

// AddLayer appends an empty layer that starts out on currentSheet and
// returns its index.
func (s *Scene) AddLayer(currentSheet string) int {
	l := NewLayer(fmt.Sprintf("Layer %d", len(s.Layers)))
	l.TileSheet = currentSheet
	l.SheetIndex = s.SheetIndex(currentSheet)
	s.Layers = append(s.Layers, l)
	return len(s.Layers) - 1
}

// SetLayerTileSheet assigns a sheet to a layer and repaints every tile in it
// to reference that sheet. Sub-tile coordinates are left as they are, even
// when they fall outside the new sheet.
func (s *Scene) SetLayerTileSheet(idx int, sheetPath string) error {
	l, err := s.Layer(idx)
	if err != nil {
		return err
	}
	si := s.SheetIndex(sheetPath)
	if si < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSheet, sheetPath)
	}
	l.TileSheet = sheetPath
	l.SheetIndex = si
	for cell, t := range l.Tiles {
		t.Sheet = sheetPath
		l.Tiles[cell] = t
	}
	return nil
}

// ToggleLayerVisibility flips a layer's visibility and returns the new value.
func (s *Scene) ToggleLayerVisibility(idx int) (bool, error) {
	l, err := s.Layer(idx)
	if err != nil {
		return false, err
	}
	l.Visible = !l.Visible
	return l.Visible, nil
}

func (s *Scene) SetLayerCollision(idx int, collision bool) error {
	l, err := s.Layer(idx)
	if err != nil {
		return err
	}
	l.Collision = collision
	return nil
}

// AddMarker appends a marker at the origin and returns its index.
func (s *Scene) AddMarker() int {
	s.Markers = append(s.Markers, Marker{Name: fmt.Sprintf("Marker %d", len(s.Markers))})
	return len(s.Markers) - 1
}

func (s *Scene) MoveMarker(idx int, x, y float64) error {
	if idx < 0 || idx >= len(s.Markers) {
		return fmt.Errorf("%w: %d", ErrMarkerIndex, idx)
	}
	s.Markers[idx].X, s.Markers[idx].Y = x, y
	return nil
}

func (s *Scene) RenameMarker(idx int, name string) error {
	if idx < 0 || idx >= len(s.Markers) {
		return fmt.Errorf("%w: %d", ErrMarkerIndex, idx)
	}
	s.Markers[idx].Name = name
	return nil
}

func (s *Scene) RemoveMarker(idx int) error {
	if idx < 0 || idx >= len(s.Markers) {
		return fmt.Errorf("%w: %d", ErrMarkerIndex, idx)
	}
	s.Markers = append(s.Markers[:idx], s.Markers[idx+1:]...)
	if len(s.Markers) == 0 {
		s.Markers = nil
	}
	return nil
}
