// Package session is the command and query surface shared by the editor and
// the command line tool. It owns the open project, its settings and the
// current scene, and persists changes as they happen.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/tilesmith/codegen"
	"github.com/milk9111/tilesmith/placement"
	"github.com/milk9111/tilesmith/project"
	"github.com/milk9111/tilesmith/scene"
)

var (
	ErrNoProject  = errors.New("no project open")
	ErrNoScene    = errors.New("no scene open")
	ErrNotTexture = errors.New("asset is not a texture")
	ErrWindowSize = errors.New("window size must be positive")
)

type Session struct {
	Root     string
	Config   *project.Config
	Settings project.Settings

	// Warn reports persistence failures. In-memory state is kept either way.
	Warn func(format string, args ...any)

	// Stdout and Stderr receive the output of Run.
	Stdout io.Writer
	Stderr io.Writer

	scene  *scene.Scene
	engine *placement.Engine
}

func New() *Session {
	return &Session{
		Settings: project.DefaultSettings(),
		Warn:     log.Printf,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

func (s *Session) warn(format string, args ...any) {
	if s.Warn != nil {
		s.Warn(format, args...)
	}
}

func (s *Session) requireProject() error {
	if s.Config == nil {
		return ErrNoProject
	}
	return nil
}

func (s *Session) requireScene() error {
	if s.scene == nil {
		return ErrNoScene
	}
	return nil
}

// NewProject scaffolds a project at root and opens it.
func (s *Session) NewProject(ctx context.Context, root string) error {
	cfg, err := project.Scaffold(ctx, root, s.Settings, codegen.Stub())
	if err != nil {
		return err
	}
	s.Root = root
	s.Config = cfg
	s.scene, s.engine = nil, nil
	return nil
}

// OpenProject loads root's config and settings. Problems with either file
// are warnings; the project still opens with defaults.
func (s *Session) OpenProject(root string) error {
	if fi, err := os.Stat(root); err != nil {
		return fmt.Errorf("session: open %s: %w", root, err)
	} else if !fi.IsDir() {
		return fmt.Errorf("session: open %s: not a directory", root)
	}
	cfg, err := project.LoadConfig(root)
	if err != nil {
		s.warn("config: %v", err)
	}
	settings, err := project.LoadSettings(root)
	if err != nil {
		s.warn("settings: %v", err)
	}
	s.Root = root
	s.Config = cfg
	s.Settings = settings
	s.scene, s.engine = nil, nil
	return nil
}

func (s *Session) SaveProject() error {
	if err := s.requireProject(); err != nil {
		return err
	}
	if err := s.Config.Save(s.Root); err != nil {
		s.warn("save config: %v", err)
		return err
	}
	return nil
}

func (s *Session) persistConfig() {
	if err := s.Config.Save(s.Root); err != nil {
		s.warn("save config: %v", err)
	}
}

// ImportAssets registers files with one strategy and persists the config.
// Every file gets a result; failures do not stop the batch.
func (s *Session) ImportAssets(paths []string, strategy project.Strategy) ([]project.ImportResult, error) {
	if err := s.requireProject(); err != nil {
		return nil, err
	}
	results := project.Import(s.Config.Assets, s.Root, paths, strategy)
	for _, r := range results {
		if r.Err != nil {
			s.warn("import %s: %v", r.Path, r.Err)
		}
	}
	s.persistConfig()
	return results, nil
}

func (s *Session) RemoveAsset(key project.Key) (bool, error) {
	if err := s.requireProject(); err != nil {
		return false, err
	}
	if !s.Config.Assets.Remove(key) {
		return false, nil
	}
	s.persistConfig()
	return true, nil
}

// ReorderScripts swaps the load order of two scripts.
func (s *Session) ReorderScripts(a, b project.Key) error {
	if err := s.requireProject(); err != nil {
		return err
	}
	if err := s.Config.Assets.Reorder(a, b); err != nil {
		return err
	}
	s.persistConfig()
	return nil
}

func (s *Session) SetWindowSize(w, h float64) error {
	if err := s.requireProject(); err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrWindowSize, w, h)
	}
	s.Config.WindowSize = [2]float64{w, h}
	s.persistConfig()
	return nil
}

// Assets returns the registered assets sorted by key.
func (s *Session) Assets() []project.Asset {
	if s.Config == nil {
		return nil
	}
	keys := s.Config.Assets.Keys()
	out := make([]project.Asset, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.Config.Assets[k])
	}
	return out
}

// Generate writes the project's entry point.
func (s *Session) Generate() (string, error) {
	if err := s.requireProject(); err != nil {
		return "", err
	}
	path, err := codegen.Write(s.Root, s.Config)
	if err != nil {
		return "", err
	}
	log.Printf("Generated %s", path)
	return path, nil
}

// Run regenerates the entry point and runs the project until it exits or
// ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	r, err := s.Start(ctx)
	if err != nil {
		return err
	}
	if err := <-r.Done(); err != nil {
		return fmt.Errorf("session: run: %w", err)
	}
	return nil
}

func (s *Session) textureSize(a project.Asset) (int, int, error) {
	filename := a.AbsolutePath
	if filename == "" {
		filename = filepath.Join(project.BaseDir(s.Root, a.Strategy), filepath.FromSlash(a.Path))
	}
	f, err := os.Open(filename)
	if err != nil {
		return 0, 0, fmt.Errorf("session: open texture: %w", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("session: decode %s: %w", filename, err)
	}
	return cfg.Width, cfg.Height, nil
}
