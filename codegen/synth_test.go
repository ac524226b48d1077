package codegen

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/tilesmith/project"
)

func order(n int) *int { return &n }

func testConfig() *project.Config {
	cfg := project.NewConfig()
	add := func(path string, kind project.Kind, s project.Strategy, lo *int) {
		a := project.Asset{Name: filepath.Base(path), Path: path, Kind: kind, Strategy: s, LoadOrder: lo}
		cfg.Assets[a.Key()] = a
	}
	add("scripts/b.tengo", project.KindScript, project.Embedded, order(0))
	add("scripts/a.tengo", project.KindScript, project.Embedded, order(1))
	add("assets/hero.png", project.KindTexture, project.Embedded, nil)
	add("assets/bg.png", project.KindTexture, project.External, nil)
	add("assets/jump.wav", project.KindSfx, project.External, nil)
	add("assets/theme.ogg", project.KindMusic, project.Embedded, nil)
	add("assets/font.ttf", project.KindFont, project.Embedded, nil)
	return cfg
}

func TestRenderIsDeterministic(t *testing.T) {
	cfg := testConfig()
	first, err := Render(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		again, err := Render(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("render differs:\n%s\n---\n%s", first, again)
		}
	}
}

func TestRenderStatements(t *testing.T) {
	out, err := Render(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	src := string(out)
	for _, want := range []string{
		`state.EmbedTexture(a, embedded, "assets/hero.png")`,
		`state.LoadTexture(a, "assets/bg.png")`,
		`state.LoadSfx("assets/jump.wav")`,
		`state.EmbedMusic(embedded, "assets/theme.ogg")`,
		`state.EmbedFont(embedded, "assets/font.ttf")`,
		`app.WindowSize{W: 800, H: 600}`,
		"//go:embed assets/font.ttf assets/hero.png assets/theme.ogg scripts/a.tengo scripts/b.tengo",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q in:\n%s", want, src)
		}
	}
	if strings.Contains(src, "//ASSETS") || strings.Contains(src, "WINDOW_SIZE") || strings.Contains(src, "//EMBED") {
		t.Fatalf("placeholder left in output:\n%s", src)
	}
}

func TestRenderPathsContainingPlaceholders(t *testing.T) {
	cfg := project.NewConfig()
	for _, p := range []string{"assets/WINDOW_SIZE.png", "assets/ASSETS.png"} {
		a := project.Asset{Name: filepath.Base(p), Path: p, Kind: project.KindTexture, Strategy: project.External}
		cfg.Assets[a.Key()] = a
	}
	out, err := Render(cfg)
	if err != nil {
		t.Fatal(err)
	}
	src := string(out)
	for _, want := range []string{
		`state.LoadTexture(a, "assets/WINDOW_SIZE.png")`,
		`state.LoadTexture(a, "assets/ASSETS.png")`,
		`a := app.New("Lilah", app.WindowSize{W: 800, H: 600})`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q in:\n%s", want, src)
		}
	}
}

func TestScriptsLoadLastInOrder(t *testing.T) {
	out, err := Render(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	src := string(out)
	b := strings.Index(src, `scripting.EmbedScript(embedded, "scripts/b.tengo")`)
	a := strings.Index(src, `scripting.EmbedScript(embedded, "scripts/a.tengo")`)
	font := strings.Index(src, `state.EmbedFont`)
	if b < 0 || a < 0 || font < 0 {
		t.Fatalf("statements missing:\n%s", src)
	}
	if !(font < b && b < a) {
		t.Fatalf("scripts out of order: font=%d b=%d a=%d", font, b, a)
	}
}

func TestRenderErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *project.Config)
		want   error
	}{
		{"external script", func(cfg *project.Config) {
			a := project.Asset{Path: "x.tengo", Kind: project.KindScript, Strategy: project.External, LoadOrder: order(5)}
			cfg.Assets[a.Key()] = a
		}, project.ErrInvalidStrategy},
		{"external font", func(cfg *project.Config) {
			a := project.Asset{Path: "x.ttf", Kind: project.KindFont, Strategy: project.External}
			cfg.Assets[a.Key()] = a
		}, project.ErrInvalidStrategy},
		{"order collision", func(cfg *project.Config) {
			a := project.Asset{Path: "scripts/c.tengo", Kind: project.KindScript, Strategy: project.Embedded, LoadOrder: order(1)}
			cfg.Assets[a.Key()] = a
		}, project.ErrLoadOrderCollision},
		{"missing order", func(cfg *project.Config) {
			a := project.Asset{Path: "scripts/c.tengo", Kind: project.KindScript, Strategy: project.Embedded}
			cfg.Assets[a.Key()] = a
		}, project.ErrMissingLoadOrder},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			root := t.TempDir()
			cfg := testConfig()
			c.mutate(cfg)
			if _, err := Write(root, cfg); !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			if _, err := os.Stat(filepath.Join(root, MainFile)); !os.IsNotExist(err) {
				t.Fatalf("main.go written on error: %v", err)
			}
		})
	}
}

func TestWriteOverwrites(t *testing.T) {
	root := t.TempDir()
	filename := filepath.Join(root, MainFile)
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filename, []byte("old contents that are much longer than needed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Write(root, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got != filename {
		t.Fatalf("path = %s", got)
	}
	b, _ := os.ReadFile(filename)
	want, _ := Render(testConfig())
	if !bytes.Equal(b, want) {
		t.Fatalf("file does not match render:\n%s", b)
	}
}

func TestStub(t *testing.T) {
	src := string(Stub())
	if strings.Contains(src, "go:embed") {
		t.Fatalf("stub embeds files:\n%s", src)
	}
	if !strings.Contains(src, "var embedded embed.FS") || !strings.Contains(src, `app.New("Lilah", app.WindowSize{W: 800, H: 600})`) {
		t.Fatalf("unexpected stub:\n%s", src)
	}
}
