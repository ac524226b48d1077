package collision

import (
	"testing"

	"github.com/milk9111/tilesmith/scene"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.New("c", "c.json")
	ts, err := scene.NewTileSheet("tiles.png", "", 64, 64, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddTileSheet(ts); err != nil {
		t.Fatal(err)
	}
	_ = s.SetLayerTileSheet(0, "tiles.png")
	s.Layers[0].Collision = true
	s.Layers[0].Tiles[scene.Cell{X: 0, Y: 0}] = scene.Tile{Sheet: "tiles.png"}
	s.Layers[0].Tiles[scene.Cell{X: 32, Y: 16}] = scene.Tile{Sheet: "tiles.png", X: 32, Y: 16}

	deco := s.AddLayer("tiles.png")
	s.Layers[deco].Tiles[scene.Cell{X: 100, Y: 100}] = scene.Tile{Sheet: "tiles.png", X: 100, Y: 100}
	return s
}

func TestBuild(t *testing.T) {
	sp := Build(testScene(t))
	if sp.Shapes() != 2 {
		t.Fatalf("shapes = %d, want 2", sp.Shapes())
	}
	bb := sp.Boxes()[0]
	if bb.L != -8 || bb.R != 8 || bb.B != -8 || bb.T != 8 {
		t.Fatalf("box = %+v", bb)
	}
}

func TestSolid(t *testing.T) {
	sp := Build(testScene(t))
	cases := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 0, 0, true},
		{"inside", 3, -5, true},
		{"second tile", 30, 20, true},
		{"gap", 16, -16, false},
		{"non-collision layer", 100, 100, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := sp.Solid(c.x, c.y); got != c.want {
				t.Fatalf("Solid(%v,%v) = %v", c.x, c.y, got)
			}
		})
	}
}

func TestBuildSkipsMissingSheet(t *testing.T) {
	s := scene.New("c", "c.json")
	s.Layers[0].Collision = true
	s.Layers[0].Tiles[scene.Cell{}] = scene.Tile{Sheet: "gone.png"}
	if n := Build(s).Shapes(); n != 0 {
		t.Fatalf("shapes = %d", n)
	}
}
