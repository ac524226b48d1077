package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the optional per-project editor settings file.
const SettingsFile = "tilesmith.yaml"

// RuntimeModule is the engine module the generated stub imports.
const RuntimeModule = "github.com/milk9111/lilah"

type Settings struct {
	Scaffold ScaffoldSettings `yaml:"scaffold"`
	Run      RunSettings      `yaml:"run"`
}

type ScaffoldSettings struct {
	// Command creates the project manifest. "{module}" is replaced with Module.
	Command  []string      `yaml:"command"`
	Module   string        `yaml:"module"`
	Manifest string        `yaml:"manifest"`
	Timeout  time.Duration `yaml:"timeout"`
	// Require is appended to the manifest once the scaffolder is done.
	Require string `yaml:"require"`
}

type RunSettings struct {
	// Command builds and runs the project. "{manifest}" is replaced with the
	// manifest's absolute path.
	Command []string `yaml:"command"`
}

func DefaultSettings() Settings {
	return Settings{
		Scaffold: ScaffoldSettings{
			Command:  []string{"go", "mod", "init", "{module}"},
			Manifest: "go.mod",
			Timeout:  30 * time.Second,
			Require:  "require " + RuntimeModule + " v0.1.0",
		},
		Run: RunSettings{
			Command: []string{"go", "run", "-modfile", "{manifest}", "./" + SourceDir},
		},
	}
}

// LoadSettings reads root/tilesmith.yaml over the defaults. A missing file
// is not an error.
func LoadSettings(root string) (Settings, error) {
	s, err := loadYAML(filepath.Join(root, SettingsFile), DefaultSettings())
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), err
	}
	if s.Scaffold.Timeout <= 0 {
		s.Scaffold.Timeout = DefaultSettings().Scaffold.Timeout
	}
	return s, nil
}

func loadYAML[T any](filename string, base T) (T, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return base, err
	}
	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, fmt.Errorf("project: unmarshal %s: %w", filename, err)
	}
	return out, nil
}

// ModuleName returns the module name the scaffolder should use for root.
func (s ScaffoldSettings) ModuleName(root string) string {
	if s.Module != "" {
		return s.Module
	}
	return filepath.Base(filepath.Clean(root))
}

func expandArgs(args []string, vars map[string]string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		for k, v := range vars {
			a = strings.ReplaceAll(a, "{"+k+"}", v)
		}
		out[i] = a
	}
	return out
}
