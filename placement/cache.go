package placement

import (
	"image"

	"github.com/milk9111/tilesmith/scene"
)

// Sprite is the drawable projection of one placed tile.
type Sprite struct {
	Sheet string
	// Src is the source rectangle in the sheet texture. It is empty when the
	// tile's sheet is not part of the scene.
	Src     image.Rectangle
	X, Y    float64
	Visible bool
}

// DisplayCache holds one sprite per occupied cell of a layer.
type DisplayCache map[scene.Cell]Sprite

func buildCache(s *scene.Scene, l *scene.Layer) DisplayCache {
	c := make(DisplayCache, len(l.Tiles))
	for cell, t := range l.Tiles {
		c[cell] = spriteFor(s, l, t)
	}
	return c
}

func spriteFor(s *scene.Scene, l *scene.Layer, t scene.Tile) Sprite {
	sp := Sprite{Sheet: t.Sheet, X: t.X, Y: t.Y, Visible: l.Visible}
	if ts, ok := s.Sheet(t.Sheet); ok {
		sp.Src = ts.SubTileRect(ts.Clamp(t.SubTile))
	}
	return sp
}
