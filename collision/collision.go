// Package collision turns collision-flagged layers into a static physics
// space for previews and point queries.
package collision

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilesmith/scene"
)

// Space holds one static box per solid tile.
type Space struct {
	space *cp.Space
	boxes []cp.BB
}

// Build collects every tile of every collision layer. A tile is a box the
// size of its layer's sheet cell, centered on the tile position.
func Build(s *scene.Scene) *Space {
	sp := &Space{space: cp.NewSpace()}
	for i := range s.Layers {
		l := &s.Layers[i]
		if !l.Collision {
			continue
		}
		for _, cell := range l.Cells() {
			t := l.Tiles[cell]
			ts, ok := s.Sheet(l.TileSheet)
			if !ok {
				ts, ok = s.Sheet(t.Sheet)
			}
			if !ok || ts.TileW <= 0 || ts.TileH <= 0 {
				continue
			}
			hw, hh := float64(ts.TileW)/2, float64(ts.TileH)/2
			bb := cp.BB{L: t.X - hw, B: t.Y - hh, R: t.X + hw, T: t.Y + hh}
			sp.space.AddShape(cp.NewBox2(sp.space.StaticBody, bb, 0))
			sp.boxes = append(sp.boxes, bb)
		}
	}
	return sp
}

// Solid reports whether (x, y) lies inside any box.
func (sp *Space) Solid(x, y float64) bool {
	info := sp.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	return info != nil && info.Shape != nil
}

func (sp *Space) Shapes() int {
	return len(sp.boxes)
}

// Boxes returns the boxes in build order.
func (sp *Space) Boxes() []cp.BB {
	return sp.boxes
}
