package project

import (
	"fmt"
	"iter"
	"path/filepath"
	"sort"
	"strings"
)

// SourceDir is the directory, relative to the project root, that embedded
// asset paths are expressed against. The generated stub lives there too.
const SourceDir = "src"

// Registry is the catalog of declared assets.
type Registry map[Key]Asset

// BaseDir returns the directory asset paths of strategy s are relative to.
func BaseDir(root string, s Strategy) string {
	if s == Embedded {
		return filepath.Join(root, SourceDir)
	}
	return root
}

// Register adds the file at path to the registry. The stored path is
// relative to BaseDir(root, strategy).
func (r Registry) Register(root, path string, kind Kind, strategy Strategy) (Asset, error) {
	if !kind.Allows(strategy) {
		return Asset{}, fmt.Errorf("%w: %s cannot be %s", ErrInvalidStrategy, kind, strategy)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrPathResolution, err)
	}
	base, err := filepath.Abs(BaseDir(root, strategy))
	if err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrPathResolution, err)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Asset{}, fmt.Errorf("%w: %s is not under %s", ErrPathResolution, abs, base)
	}

	a := Asset{
		Name:         filepath.Base(abs),
		Path:         filepath.ToSlash(rel),
		AbsolutePath: abs,
		Kind:         kind,
		Strategy:     strategy,
	}
	if kind == KindScript {
		if prev, ok := r[a.Key()]; ok && prev.LoadOrder != nil {
			order := *prev.LoadOrder
			a.LoadOrder = &order
		} else {
			order := r.nextLoadOrder()
			a.LoadOrder = &order
		}
	}
	r[a.Key()] = a
	return a, nil
}

// nextLoadOrder is the script count while orders are dense. After a removal
// leaves a gap it falls back to max+1 so it never hands out a taken value.
func (r Registry) nextLoadOrder() int {
	count, max := 0, -1
	for _, a := range r {
		if a.LoadOrder == nil {
			continue
		}
		count++
		if *a.LoadOrder > max {
			max = *a.LoadOrder
		}
	}
	if max < count {
		return count
	}
	return max + 1
}

// Remove deletes the entry for key. Remaining load orders are not renumbered.
func (r Registry) Remove(key Key) bool {
	if _, ok := r[key]; !ok {
		return false
	}
	delete(r, key)
	return true
}

// Reorder swaps the load orders of two scripts.
func (r Registry) Reorder(a, b Key) error {
	x, ok := r[a]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, a)
	}
	y, ok := r[b]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, b)
	}
	if x.LoadOrder == nil {
		return fmt.Errorf("%w: %s", ErrNoLoadOrder, a)
	}
	if y.LoadOrder == nil {
		return fmt.Errorf("%w: %s", ErrNoLoadOrder, b)
	}
	xo, yo := *x.LoadOrder, *y.LoadOrder
	x.LoadOrder, y.LoadOrder = &yo, &xo
	r[a] = x
	r[b] = y
	return nil
}

// All yields every asset in storage order. The sequence can be ranged over
// any number of times.
func (r Registry) All() iter.Seq[Asset] {
	return func(yield func(Asset) bool) {
		for _, a := range r {
			if !yield(a) {
				return
			}
		}
	}
}

// Scripts returns the script assets sorted by load order.
func (r Registry) Scripts() []Asset {
	var out []Asset
	for a := range r.All() {
		if a.Kind == KindScript {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return loadOrder(out[i]) < loadOrder(out[j])
	})
	return out
}

// Keys returns the registry keys sorted by their string form.
func (r Registry) Keys() []Key {
	keys := make([]Key, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func loadOrder(a Asset) int {
	if a.LoadOrder == nil {
		return -1
	}
	return *a.LoadOrder
}
