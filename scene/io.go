package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Load reads a scene file. A scene without layers gets a default one, as a
// scene must always have a layer to place into.
func Load(filename string) (*Scene, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", filename, err)
	}
	var s Scene
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("scene: unmarshal %s: %w", filename, err)
	}
	if len(s.Layers) == 0 {
		s.Layers = []Layer{NewLayer("Layer 0")}
	}
	for i := range s.Layers {
		if s.Layers[i].Tiles == nil {
			s.Layers[i].Tiles = make(map[Cell]Tile)
		}
	}
	s.resolveSheetIndices()
	return &s, nil
}

// Save writes the whole scene to root/s.Path, replacing the previous file.
func (s *Scene) Save(root string) error {
	filename := filepath.Join(root, filepath.FromSlash(s.Path))
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("scene: save %s: %w", filename, err)
	}
	f, err := createFile(filename)
	if err != nil {
		return fmt.Errorf("scene: save %s: %w", filename, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		return fmt.Errorf("scene: encode %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("scene: save %s: %w", filename, err)
	}
	return nil
}

var createFile = func(name string) (io.WriteCloser, error) { return os.Create(name) }
