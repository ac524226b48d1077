package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/milk9111/tilesmith/project"
	"golang.org/x/tools/imports"
)

// MainFile is where the generated entry point lives, relative to the
// project root.
var MainFile = filepath.Join(project.SourceDir, "main.go")

// Render produces the entry point for cfg. Scripts are loaded last, in load
// order; every other asset is loaded in key order so the same config always
// renders the same bytes.
func Render(cfg *project.Config) ([]byte, error) {
	var (
		stmts   []string
		scripts []project.Asset
		embeds  []string
	)
	for _, key := range cfg.Assets.Keys() {
		a := cfg.Assets[key]
		if !a.Kind.Allows(a.Strategy) {
			return nil, fmt.Errorf("codegen: %w: %s cannot be %s", project.ErrInvalidStrategy, a.Kind, a.Strategy)
		}
		if a.Strategy == project.Embedded {
			embeds = append(embeds, embedPattern(a.Path))
		}
		if a.Kind == project.KindScript {
			scripts = append(scripts, a)
			continue
		}
		stmts = append(stmts, statement(a))
	}

	ordered, err := orderScripts(scripts)
	if err != nil {
		return nil, err
	}
	for _, a := range ordered {
		stmts = append(stmts, statement(a))
	}

	embed := ""
	if len(embeds) > 0 {
		embed = "//go:embed " + strings.Join(embeds, " ") + "\n"
	}
	// single pass: inserted paths are never searched for placeholders
	src := strings.NewReplacer(
		"//EMBED\n", embed,
		"//ASSETS", strings.Join(stmts, "\n"),
		"WINDOW_SIZE", windowSize(cfg.WindowSize),
	).Replace(Template)

	out, err := imports.Process("main.go", []byte(src), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("codegen: format: %w", err)
	}
	return out, nil
}

// Write renders cfg and replaces src/main.go under root. Nothing is written
// when rendering fails.
func Write(root string, cfg *project.Config) (string, error) {
	out, err := Render(cfg)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(root, MainFile)
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return "", fmt.Errorf("codegen: %w", err)
	}
	if err := os.WriteFile(filename, out, 0o644); err != nil {
		return "", fmt.Errorf("codegen: write %s: %w", filename, err)
	}
	return filename, nil
}

// Stub is the entry point of a project with no assets yet.
func Stub() []byte {
	out, err := Render(project.NewConfig())
	if err != nil {
		panic(err)
	}
	return out
}

func orderScripts(scripts []project.Asset) ([]project.Asset, error) {
	seen := make(map[int]string, len(scripts))
	for _, a := range scripts {
		if a.LoadOrder == nil {
			return nil, fmt.Errorf("codegen: %w: %s", project.ErrMissingLoadOrder, a.Path)
		}
		if prev, ok := seen[*a.LoadOrder]; ok {
			return nil, fmt.Errorf("codegen: %w: %s and %s both have order %d",
				project.ErrLoadOrderCollision, prev, a.Path, *a.LoadOrder)
		}
		seen[*a.LoadOrder] = a.Path
	}
	reg := make(project.Registry, len(scripts))
	for _, a := range scripts {
		reg[a.Key()] = a
	}
	return reg.Scripts(), nil
}

func statement(a project.Asset) string {
	p := strconv.Quote(a.Path)
	embedded := a.Strategy == project.Embedded
	switch a.Kind {
	case project.KindScript:
		return fmt.Sprintf("scripting.EmbedScript(embedded, %s)", p)
	case project.KindTexture:
		if embedded {
			return fmt.Sprintf("state.EmbedTexture(a, embedded, %s)", p)
		}
		return fmt.Sprintf("state.LoadTexture(a, %s)", p)
	case project.KindSfx:
		if embedded {
			return fmt.Sprintf("state.EmbedSfx(embedded, %s)", p)
		}
		return fmt.Sprintf("state.LoadSfx(%s)", p)
	case project.KindMusic:
		if embedded {
			return fmt.Sprintf("state.EmbedMusic(embedded, %s)", p)
		}
		return fmt.Sprintf("state.LoadMusic(%s)", p)
	case project.KindFont:
		return fmt.Sprintf("state.EmbedFont(embedded, %s)", p)
	}
	return ""
}

// go:embed patterns only need quoting when they contain spaces or quotes.
func embedPattern(path string) string {
	if strings.ContainsAny(path, " \t\"'`") {
		return strconv.Quote(path)
	}
	return path
}

func windowSize(ws [2]float64) string {
	return fmt.Sprintf("app.WindowSize{W: %s, H: %s}",
		strconv.FormatFloat(ws[0], 'g', -1, 64),
		strconv.FormatFloat(ws[1], 'g', -1, 64))
}
