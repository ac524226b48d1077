package placement

import "github.com/milk9111/tilesmith/scene"

const maxUndo = 100

type prevTile struct {
	tile scene.Tile
	ok   bool
}

// layerDelta records the value each touched cell had before a stroke.
type layerDelta struct {
	Layer   int
	Changes map[scene.Cell]prevTile
}

type stroke []layerDelta

func (st *stroke) record(layer int, cell scene.Cell, t scene.Tile, ok bool) {
	var ld *layerDelta
	for i := range *st {
		if (*st)[i].Layer == layer {
			ld = &(*st)[i]
			break
		}
	}
	if ld == nil {
		*st = append(*st, layerDelta{Layer: layer, Changes: make(map[scene.Cell]prevTile)})
		ld = &(*st)[len(*st)-1]
	}
	// only the first value seen in a stroke is the one to go back to
	if _, seen := ld.Changes[cell]; !seen {
		ld.Changes[cell] = prevTile{tile: t, ok: ok}
	}
}

// BeginStroke starts coalescing placements and erasures into one undo step,
// e.g. for the duration of a mouse drag.
func (e *Engine) BeginStroke() {
	e.EndStroke()
	e.stroke = &stroke{}
}

// EndStroke closes the open stroke. Empty strokes are dropped.
func (e *Engine) EndStroke() {
	if e.stroke == nil {
		return
	}
	if len(*e.stroke) > 0 {
		e.pushUndo(*e.stroke)
	}
	e.stroke = nil
}

func (e *Engine) pushUndo(st stroke) {
	e.undoStack = append(e.undoStack, st)
	if len(e.undoStack) > maxUndo {
		e.undoStack = e.undoStack[1:]
	}
}

func (e *Engine) recordChange(layer int, cell scene.Cell) {
	t, ok := e.scene.Layers[layer].Tiles[cell]
	if e.stroke != nil {
		e.stroke.record(layer, cell, t, ok)
		return
	}
	var st stroke
	st.record(layer, cell, t, ok)
	e.pushUndo(st)
}

func (e *Engine) clearHistory() {
	e.stroke = nil
	e.undoStack = nil
}

// CanUndo reports whether there is a step to undo.
func (e *Engine) CanUndo() bool {
	return len(e.undoStack) > 0 || (e.stroke != nil && len(*e.stroke) > 0)
}

// Undo reverts the most recent stroke, restoring tiles and their sprites
// together. It reports false when there was nothing to undo.
func (e *Engine) Undo() bool {
	e.EndStroke()
	n := len(e.undoStack)
	if n == 0 {
		return false
	}
	st := e.undoStack[n-1]
	e.undoStack = e.undoStack[:n-1]
	for _, ld := range st {
		if ld.Layer < 0 || ld.Layer >= len(e.scene.Layers) {
			continue
		}
		l := &e.scene.Layers[ld.Layer]
		cache := e.caches[ld.Layer]
		for cell, prev := range ld.Changes {
			if !prev.ok {
				delete(l.Tiles, cell)
				delete(cache, cell)
				continue
			}
			l.Tiles[cell] = prev.tile
			cache[cell] = spriteFor(e.scene, l, prev.tile)
		}
	}
	return true
}
