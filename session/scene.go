package session

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/milk9111/tilesmith/collision"
	"github.com/milk9111/tilesmith/placement"
	"github.com/milk9111/tilesmith/project"
	"github.com/milk9111/tilesmith/scene"
)

func (s *Session) setScene(sc *scene.Scene) {
	s.scene = sc
	if s.engine == nil {
		s.engine = placement.NewEngine(sc)
		return
	}
	s.engine.Reset(sc)
}

// NewScene starts an empty scene stored at <name>.json and saves it.
func (s *Session) NewScene(name string) error {
	if err := s.requireProject(); err != nil {
		return err
	}
	if name == "" {
		return errors.New("session: scene name is empty")
	}
	s.setScene(scene.New(name, name+".json"))
	s.persistScene()
	return nil
}

// OpenScene loads a scene file relative to the project root. A missing or
// unreadable file is replaced by an empty scene of the same name, which is
// saved in its place.
func (s *Session) OpenScene(path string) error {
	if err := s.requireProject(); err != nil {
		return err
	}
	path = filepath.ToSlash(path)
	sc, err := scene.Load(filepath.Join(s.Root, filepath.FromSlash(path)))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.warn("open scene: %v", err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		sc = scene.New(name, path)
		s.setScene(sc)
		s.persistScene()
		return nil
	}
	sc.Path = path
	s.setScene(sc)
	return nil
}

func (s *Session) SaveScene() error {
	if err := s.requireScene(); err != nil {
		return err
	}
	if err := s.scene.Save(s.Root); err != nil {
		s.warn("save scene: %v", err)
		return err
	}
	return nil
}

func (s *Session) persistScene() {
	if err := s.scene.Save(s.Root); err != nil {
		s.warn("save scene: %v", err)
	}
}

func (s *Session) Scene() *scene.Scene { return s.scene }

// Engine exposes selection state to interactive callers.
func (s *Session) Engine() *placement.Engine { return s.engine }

func (s *Session) AddLayer() (int, error) {
	if err := s.requireScene(); err != nil {
		return 0, err
	}
	return s.engine.AddLayer(), nil
}

func (s *Session) SelectLayer(idx int) error {
	if err := s.requireScene(); err != nil {
		return err
	}
	return s.engine.SelectLayer(idx)
}

func (s *Session) SelectSheet(path string) error {
	if err := s.requireScene(); err != nil {
		return err
	}
	return s.engine.SelectSheet(path)
}

func (s *Session) SelectSubTile(st scene.SubTile) error {
	if err := s.requireScene(); err != nil {
		return err
	}
	return s.engine.SelectSubTile(st)
}

func (s *Session) ToggleLayerVisibility(idx int) (bool, error) {
	if err := s.requireScene(); err != nil {
		return false, err
	}
	return s.engine.ToggleLayerVisibility(idx)
}

func (s *Session) SetLayerSheet(idx int, path string) error {
	if err := s.requireScene(); err != nil {
		return err
	}
	return s.engine.SetLayerTileSheet(idx, path)
}

func (s *Session) SetLayerCollision(idx int, collision bool) error {
	if err := s.requireScene(); err != nil {
		return err
	}
	return s.engine.SetLayerCollision(idx, collision)
}

// PlaceTile places the selected sub-tile at a world position.
func (s *Session) PlaceTile(x, y float64) (scene.Cell, error) {
	if err := s.requireScene(); err != nil {
		return scene.Cell{}, err
	}
	return s.engine.Place(x, y)
}

func (s *Session) EraseTile(x, y float64) (bool, error) {
	if err := s.requireScene(); err != nil {
		return false, err
	}
	_, removed, err := s.engine.Erase(x, y)
	return removed, err
}

func (s *Session) Undo() bool {
	if s.engine == nil {
		return false
	}
	return s.engine.Undo()
}

func (s *Session) AddTileSheet(ts scene.TileSheet) error {
	if err := s.requireScene(); err != nil {
		return err
	}
	return s.engine.AddTileSheet(ts)
}

// AddTileSheetFromAsset cuts a registered texture into countX by countY
// tiles and adds it to the scene.
func (s *Session) AddTileSheetFromAsset(key project.Key, countX, countY int) (scene.TileSheet, error) {
	if err := s.requireScene(); err != nil {
		return scene.TileSheet{}, err
	}
	a, ok := s.Config.Assets[key]
	if !ok {
		return scene.TileSheet{}, fmt.Errorf("%w: %s", project.ErrUnknownAsset, key)
	}
	if a.Kind != project.KindTexture {
		return scene.TileSheet{}, fmt.Errorf("%w: %s is a %s", ErrNotTexture, key, a.Kind)
	}
	w, h, err := s.textureSize(a)
	if err != nil {
		return scene.TileSheet{}, err
	}
	ts, err := scene.NewTileSheet(a.Path, a.AbsolutePath, w, h, countX, countY)
	if err != nil {
		return scene.TileSheet{}, err
	}
	if err := s.engine.AddTileSheet(ts); err != nil {
		return scene.TileSheet{}, err
	}
	return ts, nil
}

func (s *Session) RemoveTileSheet(idx int) (scene.TileSheet, error) {
	if err := s.requireScene(); err != nil {
		return scene.TileSheet{}, err
	}
	return s.engine.RemoveTileSheet(idx)
}

// DisplayCache returns the sprites of one layer of the current scene.
func (s *Session) DisplayCache(layer int) (placement.DisplayCache, error) {
	if err := s.requireScene(); err != nil {
		return nil, err
	}
	return s.engine.Cache(layer)
}

// SheetGeometry looks up a tile sheet of the current scene by path.
func (s *Session) SheetGeometry(path string) (scene.TileSheet, bool) {
	if s.scene == nil {
		return scene.TileSheet{}, false
	}
	ts, ok := s.scene.Sheet(path)
	if !ok {
		return scene.TileSheet{}, false
	}
	return *ts, true
}

// Collision builds the collision space of the current scene.
func (s *Session) Collision() (*collision.Space, error) {
	if err := s.requireScene(); err != nil {
		return nil, err
	}
	return collision.Build(s.scene), nil
}

// AddMarker drops a new marker at (x, y) and returns its index.
func (s *Session) AddMarker(x, y float64) (int, error) {
	if err := s.requireScene(); err != nil {
		return 0, err
	}
	idx := s.scene.AddMarker()
	if err := s.scene.MoveMarker(idx, x, y); err != nil {
		return 0, err
	}
	return idx, nil
}

func (s *Session) RemoveMarker(idx int) error {
	if err := s.requireScene(); err != nil {
		return err
	}
	return s.scene.RemoveMarker(idx)
}
