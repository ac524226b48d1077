package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ConfigFile is the project config's name inside the project root.
const ConfigFile = "config.json"

// Config is the per-project document: the asset registry plus project-wide
// settings the generated stub needs.
type Config struct {
	Assets     Registry   `json:"assets"`
	WindowSize [2]float64 `json:"window_size"`
}

func NewConfig() *Config {
	return &Config{
		Assets:     Registry{},
		WindowSize: [2]float64{800, 600},
	}
}

// LoadConfig reads root/config.json. It always returns a usable config: when
// the file is missing or unreadable a default is returned and written back.
// A non-nil error reports what went wrong and should be treated as a warning.
func LoadConfig(root string) (*Config, error) {
	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err == nil {
		cfg := NewConfig()
		if err = json.Unmarshal(b, cfg); err == nil {
			if cfg.Assets == nil {
				cfg.Assets = Registry{}
			}
			return cfg, nil
		}
		err = fmt.Errorf("project: parse %s: %w", path, err)
	} else if errors.Is(err, fs.ErrNotExist) {
		err = nil
	} else {
		err = fmt.Errorf("project: read %s: %w", path, err)
	}

	cfg := NewConfig()
	if werr := cfg.Save(root); werr != nil {
		return cfg, errors.Join(err, werr)
	}
	return cfg, err
}

// Save writes the config to root/config.json, replacing the old file.
func (c *Config) Save(root string) error {
	return writeJSON(filepath.Join(root, ConfigFile), c)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("project: write %s: %w", path, err)
	}
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("project: write %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("project: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("project: write %s: %w", path, err)
	}
	return nil
}

var createFile = func(name string) (io.WriteCloser, error) { return os.Create(name) }
