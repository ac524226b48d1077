package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/tilesmith/codegen"
	"github.com/milk9111/tilesmith/project"
	"github.com/milk9111/tilesmith/scene"
)

type warnings []string

func (w *warnings) warn(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

func openTestProject(t *testing.T) (*Session, *warnings) {
	t.Helper()
	root := t.TempDir()
	s := New()
	w := &warnings{}
	s.Warn = w.warn
	if err := s.OpenProject(root); err != nil {
		t.Fatal(err)
	}
	return s, w
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestOpenProjectWritesDefaultConfig(t *testing.T) {
	s, w := openTestProject(t)
	if _, err := os.Stat(filepath.Join(s.Root, project.ConfigFile)); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if len(*w) != 0 {
		t.Fatalf("warnings = %v", *w)
	}
	if err := s.OpenProject(filepath.Join(s.Root, "missing")); err == nil {
		t.Fatal("opened a missing directory")
	}
}

func TestSetWindowSizePersists(t *testing.T) {
	s, _ := openTestProject(t)
	if err := s.SetWindowSize(1024, 768); err != nil {
		t.Fatal(err)
	}
	if err := s.SetWindowSize(0, 768); !errors.Is(err, ErrWindowSize) {
		t.Fatalf("err = %v", err)
	}
	cfg, err := project.LoadConfig(s.Root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WindowSize != [2]float64{1024, 768} {
		t.Fatalf("window size = %v", cfg.WindowSize)
	}
}

func TestPersistFailureKeepsState(t *testing.T) {
	s, w := openTestProject(t)
	cfgPath := filepath.Join(s.Root, project.ConfigFile)
	if err := os.Remove(cfgPath); err != nil {
		t.Fatal(err)
	}
	// a directory in the config's place makes every save fail
	if err := os.Mkdir(cfgPath, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := s.SetWindowSize(320, 240); err != nil {
		t.Fatal(err)
	}
	if len(*w) != 1 {
		t.Fatalf("warnings = %v", *w)
	}
	if s.Config.WindowSize != [2]float64{320, 240} {
		t.Fatalf("window size rolled back to %v", s.Config.WindowSize)
	}
}

func TestImportAndRemoveAssets(t *testing.T) {
	s, w := openTestProject(t)
	tex := filepath.Join(s.Root, "assets", "bg.png")
	writePNG(t, tex, 8, 8)
	results, err := s.ImportAssets([]string{tex, filepath.Join(s.Root, "notes.txt")}, project.External)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err != nil || !errors.Is(results[1].Err, project.ErrUnsupportedKind) {
		t.Fatalf("results = %+v", results)
	}
	if len(*w) != 1 || !strings.Contains((*w)[0], "notes.txt") {
		t.Fatalf("warnings = %q", *w)
	}
	assets := s.Assets()
	if len(assets) != 1 || assets[0].Path != "assets/bg.png" {
		t.Fatalf("assets = %+v", assets)
	}
	removed, err := s.RemoveAsset(assets[0].Key())
	if err != nil || !removed {
		t.Fatalf("remove = %v, %v", removed, err)
	}
	cfg, _ := project.LoadConfig(s.Root)
	if len(cfg.Assets) != 0 {
		t.Fatalf("removal not persisted: %v", cfg.Assets)
	}
}

func TestSceneCommandsNeedScene(t *testing.T) {
	s, _ := openTestProject(t)
	if _, err := s.PlaceTile(0, 0); !errors.Is(err, ErrNoScene) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.DisplayCache(0); !errors.Is(err, ErrNoScene) {
		t.Fatalf("err = %v", err)
	}
	if err := New().NewScene("x"); !errors.Is(err, ErrNoProject) {
		t.Fatalf("err = %v", err)
	}
}

func TestSceneWorkflow(t *testing.T) {
	s, _ := openTestProject(t)
	if err := s.NewScene("level"); err != nil {
		t.Fatal(err)
	}
	if s.Scene().Path != "level.json" {
		t.Fatalf("path = %q", s.Scene().Path)
	}
	if _, err := os.Stat(filepath.Join(s.Root, "level.json")); err != nil {
		t.Fatalf("scene not saved: %v", err)
	}

	tex := filepath.Join(s.Root, "assets", "tiles.png")
	writePNG(t, tex, 64, 64)
	results, _ := s.ImportAssets([]string{tex}, project.External)
	ts, err := s.AddTileSheetFromAsset(results[0].Asset.Key(), 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if ts.TileW != 16 || ts.TileH != 16 || ts.SheetW != 64 {
		t.Fatalf("sheet = %+v", ts)
	}
	if got, ok := s.SheetGeometry("assets/tiles.png"); !ok || got != ts {
		t.Fatalf("geometry = %+v, %v", got, ok)
	}

	cell, err := s.PlaceTile(7, 9)
	if err != nil {
		t.Fatal(err)
	}
	if cell != (scene.Cell{X: 0, Y: 16}) {
		t.Fatalf("cell = %v", cell)
	}
	cache, _ := s.DisplayCache(0)
	if len(cache) != 1 {
		t.Fatalf("cache = %v", cache)
	}
	if err := s.SetLayerCollision(0, true); err != nil {
		t.Fatal(err)
	}
	space, _ := s.Collision()
	if !space.Solid(1, 17) {
		t.Fatal("placed tile is not solid")
	}
	if err := s.SaveScene(); err != nil {
		t.Fatal(err)
	}

	other := New()
	if err := other.OpenProject(s.Root); err != nil {
		t.Fatal(err)
	}
	if err := other.OpenScene("level.json"); err != nil {
		t.Fatal(err)
	}
	tile, ok := other.Scene().Layers[0].Tiles[cell]
	if !ok || tile.Sheet != "assets/tiles.png" {
		t.Fatalf("tile = %+v, %v", tile, ok)
	}
	cache, _ = other.DisplayCache(0)
	if len(cache) != 1 {
		t.Fatalf("reopened cache = %v", cache)
	}
}

func TestAddTileSheetFromNonTexture(t *testing.T) {
	s, _ := openTestProject(t)
	_ = s.NewScene("a")
	sfx := filepath.Join(s.Root, "jump.wav")
	if err := os.WriteFile(sfx, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	results, _ := s.ImportAssets([]string{sfx}, project.External)
	if _, err := s.AddTileSheetFromAsset(results[0].Asset.Key(), 1, 1); !errors.Is(err, ErrNotTexture) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.AddTileSheetFromAsset(project.Key{Path: "nope.png"}, 1, 1); !errors.Is(err, project.ErrUnknownAsset) {
		t.Fatalf("err = %v", err)
	}
}

func TestOpenSceneFallsBack(t *testing.T) {
	s, w := openTestProject(t)
	if err := s.OpenScene("scenes/missing.json"); err != nil {
		t.Fatal(err)
	}
	if s.Scene().Name != "missing" || len(s.Scene().Layers) != 1 {
		t.Fatalf("scene = %+v", s.Scene())
	}
	if _, err := os.Stat(filepath.Join(s.Root, "scenes", "missing.json")); err != nil {
		t.Fatalf("fallback not saved: %v", err)
	}
	if len(*w) != 0 {
		t.Fatalf("missing file warned: %v", *w)
	}

	bad := filepath.Join(s.Root, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.OpenScene("bad.json"); err != nil {
		t.Fatal(err)
	}
	if len(*w) != 1 {
		t.Fatalf("corrupt scene did not warn: %v", *w)
	}
}

func TestGenerate(t *testing.T) {
	s, _ := openTestProject(t)
	path, err := s.Generate()
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, codegen.Stub()) {
		t.Fatalf("generated:\n%s", b)
	}
}

func TestNewProject(t *testing.T) {
	root := filepath.Join(t.TempDir(), "game")
	s := New()
	s.Settings.Scaffold.Command = []string{"/bin/sh", "-c", "printf 'module {module}\\n' > go.mod"}
	s.Settings.Scaffold.Timeout = 10 * time.Second
	if err := s.NewProject(context.Background(), root); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(root, project.SourceDir, "main.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, codegen.Stub()) {
		t.Fatalf("stub = %s", b)
	}
	if s.Config == nil || s.Root != root {
		t.Fatal("project not opened")
	}
}

func TestMarkers(t *testing.T) {
	s, _ := openTestProject(t)
	if _, err := s.AddMarker(0, 0); !errors.Is(err, ErrNoScene) {
		t.Fatalf("err = %v", err)
	}
	_ = s.NewScene("m")
	idx, err := s.AddMarker(32, -8)
	if err != nil {
		t.Fatal(err)
	}
	if m := s.Scene().Markers[idx]; m.Name != "Marker 0" || m.X != 32 || m.Y != -8 {
		t.Fatalf("marker = %+v", m)
	}
	if err := s.RemoveMarker(idx); err != nil {
		t.Fatal(err)
	}
	if len(s.Scene().Markers) != 0 {
		t.Fatal("marker not removed")
	}
}

func TestStartReportsPerProcess(t *testing.T) {
	s, _ := openTestProject(t)
	s.Settings.Run.Command = []string{"/bin/sh", "-c", "sleep 30"}
	first, err := s.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	first.Stop()

	s.Settings.Run.Command = []string{"/bin/sh", "-c", "exit 3"}
	second, err := s.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-first.Done():
		if err == nil {
			t.Fatal("stopped process exited cleanly")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("stopped process never reported")
	}
	select {
	case err := <-second.Done():
		var exit *exec.ExitError
		if !errors.As(err, &exit) || exit.ExitCode() != 3 {
			t.Fatalf("second exit = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("second process never reported")
	}
	if _, err := os.Stat(filepath.Join(s.Root, codegen.MainFile)); err != nil {
		t.Fatalf("stub not generated: %v", err)
	}
}
