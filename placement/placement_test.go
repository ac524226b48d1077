package placement

import (
	"errors"
	"image"
	"testing"

	"github.com/milk9111/tilesmith/scene"
)

func TestSnap(t *testing.T) {
	cases := []struct {
		name  string
		x, y  float64
		cellW int
		cellH int
		wantX int
		wantY int
	}{
		{"rounds each axis", 7, 9, 16, 16, 0, 16},
		{"exact", 32, -16, 16, 16, 32, -16},
		{"half away from zero", 8, -8, 16, 16, 16, -16},
		{"negative", -23, -25, 16, 16, -16, -32},
		{"non-square", 40, 40, 32, 16, 32, 48},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Snap(c.x, c.y, c.cellW, c.cellH)
			if err != nil {
				t.Fatal(err)
			}
			if got.X != c.wantX || got.Y != c.wantY {
				t.Fatalf("Snap(%v,%v) = %v, want (%d,%d)", c.x, c.y, got, c.wantX, c.wantY)
			}
		})
	}
	if _, err := Snap(1, 1, 0, 16); !errors.Is(err, ErrZeroCellSize) {
		t.Fatalf("err = %v", err)
	}
}

func TestViewRoundTrip(t *testing.T) {
	v := View{CamX: 100, CamY: -50, Zoom: 2, ScreenW: 800, ScreenH: 600}
	wx, wy := v.ScreenToWorld(400, 300)
	if wx != 100 || wy != -50 {
		t.Fatalf("center = %v,%v", wx, wy)
	}
	// screen up is world up
	_, wy = v.ScreenToWorld(400, 280)
	if wy != -40 {
		t.Fatalf("wy = %v", wy)
	}
	sx, sy := v.WorldToScreen(v.ScreenToWorld(123, 456))
	if sx != 123 || sy != 456 {
		t.Fatalf("round trip = %v,%v", sx, sy)
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	s := scene.New("test", "test.json")
	ts, err := scene.NewTileSheet("assets/tiles.png", "", 64, 64, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(s)
	if err := e.AddTileSheet(ts); err != nil {
		t.Fatal(err)
	}
	return e
}

func checkCache(t *testing.T, e *Engine, layer int) {
	t.Helper()
	cache, err := e.Cache(layer)
	if err != nil {
		t.Fatal(err)
	}
	tiles := e.Scene().Layers[layer].Tiles
	if len(cache) != len(tiles) {
		t.Fatalf("cache has %d sprites for %d tiles", len(cache), len(tiles))
	}
	for cell := range tiles {
		if _, ok := cache[cell]; !ok {
			t.Fatalf("no sprite for %v", cell)
		}
	}
}

func TestPlaceIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	if err := e.SelectSubTile(scene.SubTile{Col: 1, Row: 2}); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if _, err := e.Place(7, 9); err != nil {
			t.Fatal(err)
		}
	}
	tiles := e.Scene().Layers[0].Tiles
	if len(tiles) != 1 {
		t.Fatalf("tiles = %d", len(tiles))
	}
	want := scene.Tile{Sheet: "assets/tiles.png", SubTile: scene.SubTile{Col: 1, Row: 2}, X: 0, Y: 16}
	if got := tiles[scene.Cell{X: 0, Y: 16}]; got != want {
		t.Fatalf("tile = %+v", got)
	}
	cache, _ := e.Cache(0)
	if sp := cache[scene.Cell{X: 0, Y: 16}]; sp.Src != image.Rect(16, 32, 32, 48) || !sp.Visible {
		t.Fatalf("sprite = %+v", sp)
	}
	checkCache(t, e, 0)
}

func TestPlaceOverwrites(t *testing.T) {
	e := newTestEngine(t)
	_, _ = e.Place(0, 0)
	_ = e.SelectSubTile(scene.SubTile{Col: 3, Row: 3})
	_, _ = e.Place(1, 1)
	if got := e.Scene().Layers[0].Tiles[scene.Cell{}].SubTile; got != (scene.SubTile{Col: 3, Row: 3}) {
		t.Fatalf("sub-tile = %v", got)
	}
	checkCache(t, e, 0)
}

func TestEraseRemovesTileAndSprite(t *testing.T) {
	e := newTestEngine(t)
	_, _ = e.Place(32, 32)
	_, _ = e.Place(48, 32)
	_, removed, err := e.Erase(30, 33)
	if err != nil || !removed {
		t.Fatalf("erase = %v, %v", removed, err)
	}
	cache, _ := e.Cache(0)
	if _, ok := cache[scene.Cell{X: 32, Y: 32}]; ok {
		t.Fatal("sprite left behind")
	}
	checkCache(t, e, 0)

	_, removed, err = e.Erase(500, 500)
	if err != nil || removed {
		t.Fatalf("erase empty = %v, %v", removed, err)
	}
	if len(e.Scene().Layers[0].Tiles) != 1 {
		t.Fatal("erasing an empty cell changed the layer")
	}
}

func TestApply(t *testing.T) {
	e := newTestEngine(t)
	inputs := []Input{
		{X: 0, Y: 0, Action: ActionPlace},
		{X: 16, Y: 0, Action: ActionPlace},
		{X: 0, Y: 0, Action: ActionErase},
	}
	for _, in := range inputs {
		if err := e.Apply(in); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := e.Scene().Layers[0].Tiles[scene.Cell{X: 16}]; !ok || len(e.Scene().Layers[0].Tiles) != 1 {
		t.Fatalf("tiles = %v", e.Scene().Layers[0].Tiles)
	}
	checkCache(t, e, 0)
}

func TestPlaceWithoutSheet(t *testing.T) {
	e := NewEngine(scene.New("empty", "empty.json"))
	if _, err := e.Place(0, 0); !errors.Is(err, ErrNoTileSheet) {
		t.Fatalf("err = %v", err)
	}
	if len(e.Scene().Layers[0].Tiles) != 0 {
		t.Fatal("tile placed without a sheet")
	}
}

func TestLayerOpsRebuildCache(t *testing.T) {
	e := newTestEngine(t)
	other, _ := scene.NewTileSheet("assets/small.png", "", 32, 32, 2, 2)
	_ = e.AddTileSheet(other)
	_ = e.SelectSubTile(scene.SubTile{Col: 3, Row: 3})
	_, _ = e.Place(0, 0)

	if err := e.SetLayerTileSheet(0, "assets/small.png"); err != nil {
		t.Fatal(err)
	}
	cache, _ := e.Cache(0)
	sp := cache[scene.Cell{}]
	// stale sub-tile is clamped for display only
	if sp.Sheet != "assets/small.png" || sp.Src != image.Rect(16, 16, 32, 32) {
		t.Fatalf("sprite = %+v", sp)
	}
	if got := e.Scene().Layers[0].Tiles[scene.Cell{}].SubTile; got != (scene.SubTile{Col: 3, Row: 3}) {
		t.Fatalf("model sub-tile = %v", got)
	}

	if v, _ := e.ToggleLayerVisibility(0); v {
		t.Fatal("layer still visible")
	}
	cache, _ = e.Cache(0)
	if cache[scene.Cell{}].Visible {
		t.Fatal("sprite still visible")
	}

	idx := e.AddLayer()
	if idx != 1 || e.Layer() != 1 {
		t.Fatalf("AddLayer = %d, current %d", idx, e.Layer())
	}
	checkCache(t, e, 1)
}

func TestRemoveTileSheetKeepsTiles(t *testing.T) {
	e := newTestEngine(t)
	_, _ = e.Place(0, 0)
	if _, err := e.RemoveTileSheet(0); err != nil {
		t.Fatal(err)
	}
	if e.Sheet() != "" {
		t.Fatalf("sheet = %q", e.Sheet())
	}
	cache, _ := e.Cache(0)
	if sp := cache[scene.Cell{}]; !sp.Src.Empty() {
		t.Fatalf("sprite = %+v", sp)
	}
	checkCache(t, e, 0)
}

func TestUndoStroke(t *testing.T) {
	e := newTestEngine(t)
	_, _ = e.Place(0, 0)

	e.BeginStroke()
	_ = e.SelectSubTile(scene.SubTile{Col: 2, Row: 0})
	_, _ = e.Place(0, 0)
	_, _ = e.Place(16, 0)
	_, _, _ = e.Erase(16, 0)
	_, _ = e.Place(32, 0)
	e.EndStroke()

	if !e.Undo() {
		t.Fatal("nothing to undo")
	}
	tiles := e.Scene().Layers[0].Tiles
	if len(tiles) != 1 || tiles[scene.Cell{}].SubTile != (scene.SubTile{}) {
		t.Fatalf("after undo tiles = %v", tiles)
	}
	checkCache(t, e, 0)

	if !e.Undo() || len(e.Scene().Layers[0].Tiles) != 0 {
		t.Fatal("first placement not undone")
	}
	if e.Undo() {
		t.Fatal("undo on empty history")
	}
}

func TestSheetChangesDropUndoHistory(t *testing.T) {
	other, err := scene.NewTileSheet("assets/other.png", "", 32, 32, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name   string
		change func(e *Engine) error
	}{
		{"reassign", func(e *Engine) error { return e.SetLayerTileSheet(0, "assets/other.png") }},
		{"remove", func(e *Engine) error {
			_, err := e.RemoveTileSheet(0)
			return err
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEngine(t)
			if err := e.AddTileSheet(other); err != nil {
				t.Fatal(err)
			}
			_, _ = e.Place(0, 0)
			_ = e.SelectSubTile(scene.SubTile{Col: 1, Row: 0})
			_, _ = e.Place(0, 0)
			e.BeginStroke()
			_, _ = e.Place(16, 0)

			if err := c.change(e); err != nil {
				t.Fatal(err)
			}
			if e.CanUndo() || e.Undo() {
				t.Fatal("history survived the sheet change")
			}
			l := e.Scene().Layers[0]
			if len(l.Tiles) != 2 {
				t.Fatalf("tiles = %v", l.Tiles)
			}
			if c.name == "reassign" {
				for cell, tile := range l.Tiles {
					if tile.Sheet != l.TileSheet {
						t.Fatalf("tile at %v on %q, layer on %q", cell, tile.Sheet, l.TileSheet)
					}
				}
			}
			checkCache(t, e, 0)
		})
	}
}

func TestUndoBounded(t *testing.T) {
	e := newTestEngine(t)
	for i := range maxUndo + 10 {
		_, _ = e.Place(float64(i*16), 0)
	}
	n := 0
	for e.Undo() {
		n++
	}
	if n != maxUndo {
		t.Fatalf("undid %d steps, want %d", n, maxUndo)
	}
	if got := len(e.Scene().Layers[0].Tiles); got != 10 {
		t.Fatalf("tiles left = %d", got)
	}
}
