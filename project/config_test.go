package project

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingWritesDefault(t *testing.T) {
	root := t.TempDir()
	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("missing config should not warn: %v", err)
	}
	if cfg.WindowSize != [2]float64{800, 600} || len(cfg.Assets) != 0 {
		t.Fatalf("unexpected default %+v", cfg)
	}
	if _, err := os.Stat(filepath.Join(root, ConfigFile)); err != nil {
		t.Fatalf("default config not persisted: %v", err)
	}
}

func TestLoadConfigCorruptFallsBack(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ConfigFile), "{not json")
	cfg, err := LoadConfig(root)
	if err == nil {
		t.Fatal("expected a warning for a corrupt config")
	}
	if cfg == nil || cfg.Assets == nil {
		t.Fatal("fallback config must be usable")
	}
	again, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("default should have been written back: %v", err)
	}
	if again.WindowSize != [2]float64{800, 600} {
		t.Fatalf("window size = %v", again.WindowSize)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	root := t.TempDir()
	cfg := NewConfig()
	cfg.WindowSize = [2]float64{1280, 720}
	registerScripts(t, root, cfg.Assets, "a.tengo", "b.tengo")
	tex := touch(t, filepath.Join(root, "assets", "bg.png"), "")
	if _, err := cfg.Assets.Register(root, tex, KindTexture, External); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Save(root); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(root)
	if err != nil {
		t.Fatal(err)
	}
	if got.WindowSize != cfg.WindowSize {
		t.Fatalf("window size = %v", got.WindowSize)
	}
	if len(got.Assets) != len(cfg.Assets) {
		t.Fatalf("asset count = %d, want %d", len(got.Assets), len(cfg.Assets))
	}
	for k, want := range cfg.Assets {
		a, ok := got.Assets[k]
		if !ok {
			t.Fatalf("missing %s", k)
		}
		if a.Path != want.Path || a.Kind != want.Kind || a.Strategy != want.Strategy || loadOrder(a) != loadOrder(want) {
			t.Fatalf("asset %s = %+v, want %+v", k, a, want)
		}
	}
}

func TestLoadSettings(t *testing.T) {
	root := t.TempDir()
	s, err := LoadSettings(root)
	if err != nil {
		t.Fatal(err)
	}
	if s.Scaffold.Manifest != "go.mod" || s.Scaffold.Timeout != DefaultSettings().Scaffold.Timeout {
		t.Fatalf("defaults not applied: %+v", s)
	}

	touch(t, filepath.Join(root, SettingsFile), "scaffold:\n  module: example.com/game\n  timeout: 5s\n")
	s, err = LoadSettings(root)
	if err != nil {
		t.Fatal(err)
	}
	if s.Scaffold.Module != "example.com/game" || s.Scaffold.Timeout.Seconds() != 5 {
		t.Fatalf("overrides not applied: %+v", s.Scaffold)
	}
	if len(s.Run.Command) == 0 || s.Scaffold.Manifest != "go.mod" {
		t.Fatalf("unset fields should keep defaults: %+v", s)
	}
	if got := s.Scaffold.ModuleName(root); got != "example.com/game" {
		t.Fatalf("ModuleName = %q", got)
	}
}

var errFlush = errors.New("flush failed")

type failingClose struct{ *os.File }

func (f failingClose) Close() error {
	f.File.Close()
	return errFlush
}

func TestSaveReportsCloseError(t *testing.T) {
	orig := createFile
	t.Cleanup(func() { createFile = orig })
	createFile = func(name string) (io.WriteCloser, error) {
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		return failingClose{f}, nil
	}
	if err := NewConfig().Save(t.TempDir()); !errors.Is(err, errFlush) {
		t.Fatalf("err = %v", err)
	}
}
