package project

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2/parser"
)

// ImportResult is the outcome of importing a single file.
type ImportResult struct {
	Path  string
	Asset Asset
	Err   error
}

// Import registers every file in paths with the given strategy. Each file
// gets its own result; a failing file never stops the rest of the batch.
func Import(reg Registry, root string, paths []string, strategy Strategy) []ImportResult {
	results := make([]ImportResult, 0, len(paths))
	for _, p := range paths {
		res := ImportResult{Path: p}
		res.Asset, res.Err = importOne(reg, root, p, strategy)
		results = append(results, res)
	}
	return results
}

func importOne(reg Registry, root, path string, strategy Strategy) (Asset, error) {
	kind, err := KindForPath(path)
	if err != nil {
		return Asset{}, err
	}
	if !kind.Allows(strategy) {
		return Asset{}, fmt.Errorf("%w: %s cannot be %s", ErrInvalidStrategy, kind, strategy)
	}
	if kind == KindScript {
		if err := checkScript(path); err != nil {
			return Asset{}, err
		}
	}
	return reg.Register(root, path, kind, strategy)
}

// checkScript parses a tengo script without compiling it; the runtime
// supplies globals the editor does not know about.
func checkScript(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("project: read script %s: %w", path, err)
	}
	fileSet := parser.NewFileSet()
	file := fileSet.AddFile(path, -1, len(src))
	p := parser.NewParser(file, src, nil)
	if _, err := p.ParseFile(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScriptSyntax, path, err)
	}
	return nil
}
