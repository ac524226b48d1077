package placement

import (
	"fmt"

	"github.com/milk9111/tilesmith/scene"
)

// Action is what a pointer input does at its position.
type Action int

const (
	ActionPlace Action = iota
	ActionErase
)

// Input is one pointer event in world coordinates.
type Input struct {
	X, Y   float64
	Action Action
}

// Engine is the single writer of a scene's tiles. It keeps a display cache
// per layer that always holds exactly one sprite per placed tile.
type Engine struct {
	scene   *scene.Scene
	layer   int
	sheet   string
	subTile scene.SubTile
	caches  []DisplayCache

	stroke    *stroke
	undoStack []stroke
}

func NewEngine(s *scene.Scene) *Engine {
	e := &Engine{}
	e.Reset(s)
	return e
}

// Reset switches the engine to another scene, rebuilding every cache and
// dropping the undo history.
func (e *Engine) Reset(s *scene.Scene) {
	e.scene = s
	e.layer = 0
	e.subTile = scene.SubTile{}
	e.clearHistory()
	e.sheet = ""
	if len(s.Layers) > 0 && s.SheetIndex(s.Layers[0].TileSheet) >= 0 {
		e.sheet = s.Layers[0].TileSheet
	} else if len(s.TileSheets) > 0 {
		e.sheet = s.TileSheets[0].Path
	}
	e.rebuildAll()
}

func (e *Engine) Scene() *scene.Scene { return e.scene }
func (e *Engine) Layer() int { return e.layer }
func (e *Engine) Sheet() string { return e.sheet }
func (e *Engine) SubTile() scene.SubTile { return e.subTile }

// Cache returns the display cache of a layer. Callers must not modify it.
func (e *Engine) Cache(layer int) (DisplayCache, error) {
	if layer < 0 || layer >= len(e.caches) {
		return nil, fmt.Errorf("%w: %d", scene.ErrLayerIndex, layer)
	}
	return e.caches[layer], nil
}

// SelectLayer makes idx the layer placements go to. A layer with a sheet of
// its own also selects that sheet.
func (e *Engine) SelectLayer(idx int) error {
	l, err := e.scene.Layer(idx)
	if err != nil {
		return err
	}
	e.EndStroke()
	e.layer = idx
	if l.SheetIndex >= 0 && l.TileSheet != e.sheet {
		e.sheet = l.TileSheet
		e.subTile = scene.SubTile{}
	}
	return nil
}

func (e *Engine) SelectSheet(path string) error {
	if e.scene.SheetIndex(path) < 0 {
		return fmt.Errorf("%w: %s", scene.ErrUnknownSheet, path)
	}
	if path != e.sheet {
		e.sheet = path
		e.subTile = scene.SubTile{}
	}
	return nil
}

func (e *Engine) SelectSubTile(st scene.SubTile) error {
	ts, ok := e.scene.Sheet(e.sheet)
	if !ok {
		return ErrNoTileSheet
	}
	if !ts.Contains(st) {
		return fmt.Errorf("%w: %d,%d", ErrSubTileRange, st.Col, st.Row)
	}
	e.subTile = st
	return nil
}

func (e *Engine) snap(x, y float64) (scene.Cell, *scene.TileSheet, error) {
	ts, ok := e.scene.Sheet(e.sheet)
	if !ok {
		return scene.Cell{}, nil, ErrNoTileSheet
	}
	cell, err := Snap(x, y, ts.TileW, ts.TileH)
	return cell, ts, err
}

// Place puts the selected sub-tile of the selected sheet into the cell
// under (x, y) on the current layer, replacing whatever was there.
func (e *Engine) Place(x, y float64) (scene.Cell, error) {
	cell, ts, err := e.snap(x, y)
	if err != nil {
		return scene.Cell{}, err
	}
	l := &e.scene.Layers[e.layer]
	t := scene.Tile{Sheet: ts.Path, SubTile: e.subTile, X: float64(cell.X), Y: float64(cell.Y)}
	if old, ok := l.Tiles[cell]; ok && old == t {
		return cell, nil
	}
	e.recordChange(e.layer, cell)
	l.Tiles[cell] = t
	e.caches[e.layer][cell] = spriteFor(e.scene, l, t)
	return cell, nil
}

// Erase clears the cell under (x, y) on the current layer. It reports
// whether a tile was removed; erasing an empty cell changes nothing.
func (e *Engine) Erase(x, y float64) (scene.Cell, bool, error) {
	cell, _, err := e.snap(x, y)
	if err != nil {
		return scene.Cell{}, false, err
	}
	l := &e.scene.Layers[e.layer]
	if _, ok := l.Tiles[cell]; !ok {
		return cell, false, nil
	}
	e.recordChange(e.layer, cell)
	delete(l.Tiles, cell)
	delete(e.caches[e.layer], cell)
	return cell, true, nil
}

func (e *Engine) Apply(in Input) error {
	switch in.Action {
	case ActionPlace:
		_, err := e.Place(in.X, in.Y)
		return err
	case ActionErase:
		_, _, err := e.Erase(in.X, in.Y)
		return err
	default:
		return fmt.Errorf("placement: unknown action %d", in.Action)
	}
}

// AddLayer appends a layer on the selected sheet and selects it.
func (e *Engine) AddLayer() int {
	e.EndStroke()
	idx := e.scene.AddLayer(e.sheet)
	e.caches = append(e.caches, make(DisplayCache))
	e.layer = idx
	return idx
}

// SetLayerTileSheet repaints every tile of layer idx onto path. Undo history
// is dropped since earlier steps reference the old sheet.
func (e *Engine) SetLayerTileSheet(idx int, path string) error {
	if err := e.scene.SetLayerTileSheet(idx, path); err != nil {
		return err
	}
	e.clearHistory()
	e.rebuild(idx)
	if idx == e.layer {
		return e.SelectSheet(path)
	}
	return nil
}

func (e *Engine) ToggleLayerVisibility(idx int) (bool, error) {
	v, err := e.scene.ToggleLayerVisibility(idx)
	if err != nil {
		return false, err
	}
	e.rebuild(idx)
	return v, nil
}

func (e *Engine) SetLayerCollision(idx int, collision bool) error {
	return e.scene.SetLayerCollision(idx, collision)
}

// AddTileSheet adds a sheet to the scene. Tiles that already reference its
// path get their source rectangles back.
func (e *Engine) AddTileSheet(ts scene.TileSheet) error {
	if err := e.scene.AddTileSheet(ts); err != nil {
		return err
	}
	if e.sheet == "" {
		e.sheet = ts.Path
	}
	e.rebuildAll()
	return nil
}

// RemoveTileSheet removes a sheet and drops the undo history.
func (e *Engine) RemoveTileSheet(idx int) (scene.TileSheet, error) {
	removed, err := e.scene.RemoveTileSheet(idx)
	if err != nil {
		return removed, err
	}
	e.clearHistory()
	if removed.Path == e.sheet {
		e.sheet = ""
		e.subTile = scene.SubTile{}
		if len(e.scene.TileSheets) > 0 {
			e.sheet = e.scene.TileSheets[0].Path
		}
	}
	e.rebuildAll()
	return removed, nil
}

func (e *Engine) rebuild(idx int) {
	e.caches[idx] = buildCache(e.scene, &e.scene.Layers[idx])
}

func (e *Engine) rebuildAll() {
	e.caches = make([]DisplayCache, len(e.scene.Layers))
	for i := range e.scene.Layers {
		e.rebuild(i)
	}
}
