package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"

	"github.com/milk9111/tilesmith/codegen"
	"github.com/milk9111/tilesmith/project"
	"github.com/milk9111/tilesmith/scene"
	"github.com/milk9111/tilesmith/session"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

var commands = map[string]command{
	"new":       {"new <dir>", cmdNew},
	"list":      {"list [-root dir]", cmdList},
	"import":    {"import [-root dir] [-load external|embedded] <file>...", cmdImport},
	"remove":    {"remove [-root dir] <key>", cmdRemove},
	"reorder":   {"reorder [-root dir] <key> <key>", cmdReorder},
	"window":    {"window [-root dir] <w> <h>", cmdWindow},
	"gen":       {"gen [-root dir] [-stdout]", cmdGen},
	"run":       {"run [-root dir]", cmdRun},
	"watch":     {"watch [-root dir]", cmdWatch},
	"scene-new": {"scene-new [-root dir] <name>", cmdSceneNew},
	"sheet-add": {"sheet-add [-root dir] -scene file -tiles 8x8 <texture key>", cmdSheetAdd},
	"layer-add": {"layer-add [-root dir] -scene file [-collision]", cmdLayerAdd},
	"place":     {"place [-root dir] -scene file [-layer n] [-sheet path] [-tile col,row] <x> <y>", cmdPlace},
	"erase":     {"erase [-root dir] -scene file [-layer n] <x> <y>", cmdErase},
	"solid":     {"solid [-root dir] -scene file <x> <y>", cmdSolid},
}

func usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(os.Stderr, "usage: tilesmith <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.run(ctx, os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	root := fs.String("root", ".", "Project directory")
	return fs, root
}

func open(root string) (*session.Session, error) {
	s := session.New()
	if err := s.OpenProject(root); err != nil {
		return nil, err
	}
	return s, nil
}

func openScene(root, scenePath string) (*session.Session, error) {
	if scenePath == "" {
		return nil, errors.New("-scene is required")
	}
	s, err := open(root)
	if err != nil {
		return nil, err
	}
	if err := s.OpenScene(scenePath); err != nil {
		return nil, err
	}
	return s, nil
}

func needArgs(fs *flag.FlagSet, n int) error {
	if fs.NArg() < n {
		fs.Usage()
		return fmt.Errorf("expected %d argument(s), got %d", n, fs.NArg())
	}
	return nil
}

func parsePoint(fs *flag.FlagSet) (float64, float64, error) {
	if err := needArgs(fs, 2); err != nil {
		return 0, 0, err
	}
	x, err := strconv.ParseFloat(fs.Arg(0), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(fs.Arg(1), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("y: %w", err)
	}
	return x, y, nil
}

func parsePair(s, sep string) (int, int, error) {
	var a, b int
	if _, err := fmt.Sscanf(s, "%d"+sep+"%d", &a, &b); err != nil {
		return 0, 0, fmt.Errorf("bad pair %q: %w", s, err)
	}
	return a, b, nil
}

func cmdNew(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := needArgs(fs, 1); err != nil {
		return err
	}
	s := session.New()
	return s.NewProject(ctx, fs.Arg(0))
}

func cmdList(_ context.Context, args []string) error {
	fs, root := newFlagSet("list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := open(*root)
	if err != nil {
		return err
	}
	for _, a := range s.Assets() {
		order := ""
		if a.LoadOrder != nil {
			order = fmt.Sprintf(" #%d", *a.LoadOrder)
		}
		fmt.Printf("%-8s %s%s\n", a.Kind, a.Key(), order)
	}
	fmt.Printf("window %gx%g\n", s.Config.WindowSize[0], s.Config.WindowSize[1])
	return nil
}

func cmdImport(_ context.Context, args []string) error {
	fs, root := newFlagSet("import")
	load := fs.String("load", "embedded", "Load strategy: external or embedded")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := needArgs(fs, 1); err != nil {
		return err
	}
	strategy, err := project.ParseStrategy(*load)
	if err != nil {
		return err
	}
	s, err := open(*root)
	if err != nil {
		return err
	}
	results, err := s.ImportAssets(fs.Args(), strategy)
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		fmt.Printf("imported %s as %s\n", r.Path, r.Asset.Key())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func cmdRemove(_ context.Context, args []string) error {
	fs, root := newFlagSet("remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := needArgs(fs, 1); err != nil {
		return err
	}
	key, err := project.ParseKey(fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := open(*root)
	if err != nil {
		return err
	}
	removed, err := s.RemoveAsset(key)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", project.ErrUnknownAsset, key)
	}
	return nil
}

func cmdReorder(_ context.Context, args []string) error {
	fs, root := newFlagSet("reorder")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := needArgs(fs, 2); err != nil {
		return err
	}
	a, err := project.ParseKey(fs.Arg(0))
	if err != nil {
		return err
	}
	b, err := project.ParseKey(fs.Arg(1))
	if err != nil {
		return err
	}
	s, err := open(*root)
	if err != nil {
		return err
	}
	return s.ReorderScripts(a, b)
}

func cmdWindow(_ context.Context, args []string) error {
	fs, root := newFlagSet("window")
	if err := fs.Parse(args); err != nil {
		return err
	}
	w, h, err := parsePoint(fs)
	if err != nil {
		return err
	}
	s, err := open(*root)
	if err != nil {
		return err
	}
	return s.SetWindowSize(w, h)
}

func cmdGen(_ context.Context, args []string) error {
	fs, root := newFlagSet("gen")
	stdout := fs.Bool("stdout", false, "Print the entry point instead of writing it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := open(*root)
	if err != nil {
		return err
	}
	if *stdout {
		out, err := codegen.Render(s.Config)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}
	_, err = s.Generate()
	return err
}

func cmdRun(ctx context.Context, args []string) error {
	fs, root := newFlagSet("run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := open(*root)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

// cmdWatch regenerates the entry point whenever the config or a script
// changes on disk.
func cmdWatch(ctx context.Context, args []string) error {
	fs, root := newFlagSet("watch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := open(*root)
	if err != nil {
		return err
	}
	if _, err := s.Generate(); err != nil {
		log.Printf("generate: %v", err)
	}
	w, err := project.NewWatcher(*root)
	if err != nil {
		return err
	}
	defer w.Close()
	log.Printf("Watching %s", *root)
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			log.Printf("changed: %s", path)
			if err := s.OpenProject(*root); err != nil {
				log.Printf("reload: %v", err)
				continue
			}
			if _, err := s.Generate(); err != nil {
				log.Printf("generate: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}

func cmdSceneNew(_ context.Context, args []string) error {
	fs, root := newFlagSet("scene-new")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := needArgs(fs, 1); err != nil {
		return err
	}
	s, err := open(*root)
	if err != nil {
		return err
	}
	if err := s.NewScene(fs.Arg(0)); err != nil {
		return err
	}
	return s.SaveScene()
}

func cmdSheetAdd(_ context.Context, args []string) error {
	fs, root := newFlagSet("sheet-add")
	scenePath := fs.String("scene", "", "Scene file relative to the project")
	tiles := fs.String("tiles", "1x1", "Tile count per axis, e.g. 8x8")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := needArgs(fs, 1); err != nil {
		return err
	}
	cx, cy, err := parsePair(*tiles, "x")
	if err != nil {
		return err
	}
	key, err := project.ParseKey(fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := openScene(*root, *scenePath)
	if err != nil {
		return err
	}
	ts, err := s.AddTileSheetFromAsset(key, cx, cy)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %dx%d cells of %dx%d\n", ts.Path, cx, cy, ts.TileW, ts.TileH)
	return s.SaveScene()
}

func cmdLayerAdd(_ context.Context, args []string) error {
	fs, root := newFlagSet("layer-add")
	scenePath := fs.String("scene", "", "Scene file relative to the project")
	solid := fs.Bool("collision", false, "Mark the new layer as collision")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := openScene(*root, *scenePath)
	if err != nil {
		return err
	}
	idx, err := s.AddLayer()
	if err != nil {
		return err
	}
	if err := s.SetLayerCollision(idx, *solid); err != nil {
		return err
	}
	fmt.Printf("layer %d\n", idx)
	return s.SaveScene()
}

func cmdPlace(_ context.Context, args []string) error {
	fs, root := newFlagSet("place")
	scenePath := fs.String("scene", "", "Scene file relative to the project")
	layer := fs.Int("layer", 0, "Layer index")
	sheet := fs.String("sheet", "", "Tile sheet path; defaults to the layer's sheet")
	tile := fs.String("tile", "0,0", "Sub-tile column,row")
	if err := fs.Parse(args); err != nil {
		return err
	}
	x, y, err := parsePoint(fs)
	if err != nil {
		return err
	}
	col, row, err := parsePair(*tile, ",")
	if err != nil {
		return err
	}
	s, err := openScene(*root, *scenePath)
	if err != nil {
		return err
	}
	if err := s.SelectLayer(*layer); err != nil {
		return err
	}
	if *sheet != "" {
		if err := s.SelectSheet(*sheet); err != nil {
			return err
		}
	}
	if err := s.SelectSubTile(scene.SubTile{Col: col, Row: row}); err != nil {
		return err
	}
	cell, err := s.PlaceTile(x, y)
	if err != nil {
		return err
	}
	fmt.Printf("placed at %d,%d\n", cell.X, cell.Y)
	return s.SaveScene()
}

func cmdErase(_ context.Context, args []string) error {
	fs, root := newFlagSet("erase")
	scenePath := fs.String("scene", "", "Scene file relative to the project")
	layer := fs.Int("layer", 0, "Layer index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	x, y, err := parsePoint(fs)
	if err != nil {
		return err
	}
	s, err := openScene(*root, *scenePath)
	if err != nil {
		return err
	}
	if err := s.SelectLayer(*layer); err != nil {
		return err
	}
	removed, err := s.EraseTile(x, y)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Println("nothing to erase")
		return nil
	}
	return s.SaveScene()
}

func cmdSolid(_ context.Context, args []string) error {
	fs, root := newFlagSet("solid")
	scenePath := fs.String("scene", "", "Scene file relative to the project")
	if err := fs.Parse(args); err != nil {
		return err
	}
	x, y, err := parsePoint(fs)
	if err != nil {
		return err
	}
	s, err := openScene(*root, *scenePath)
	if err != nil {
		return err
	}
	space, err := s.Collision()
	if err != nil {
		return err
	}
	fmt.Println(space.Solid(x, y))
	return nil
}
