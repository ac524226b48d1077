package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// ToolBar contains the radio-group state for the floating tool buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

func (tb *ToolBar) SetTool(t Tool) {
	idx := int(t)
	if tb == nil || tb.group == nil || idx < 0 || idx >= len(tb.buttons) {
		return
	}
	tb.group.SetActive(tb.buttons[idx])
}

// SheetPanel is the right panel: the scene's tile sheets and a palette of
// the selected sheet's sub-tiles.
type SheetPanel struct {
	Container *widget.Container
	list      *widget.List
	entries   []any
	palette   *widget.Container

	// suppressEvents keeps programmatic selection from reaching callbacks.
	suppressEvents bool
}

func (sp *SheetPanel) SetSheets(paths []string) {
	if sp == nil || sp.list == nil {
		return
	}
	sp.suppressEvents = true
	entries := make([]any, len(paths))
	for i, p := range paths {
		entries[i] = SheetEntry{Index: i, Path: p}
	}
	sp.entries = entries
	sp.list.SetEntries(entries)
	sp.suppressEvents = false
}

func (sp *SheetPanel) SetSelected(idx int) {
	if sp == nil || sp.list == nil || idx < 0 || idx >= len(sp.entries) {
		return
	}
	sp.suppressEvents = true
	sp.list.SetSelectedEntry(sp.entries[idx])
	sp.suppressEvents = false
}

// SetPalette replaces the sub-tile palette.
func (sp *SheetPanel) SetPalette(grid *widget.Container) {
	if sp == nil {
		return
	}
	if sp.palette != nil {
		sp.Container.RemoveChild(sp.palette)
	}
	sp.palette = grid
	if grid != nil {
		sp.Container.AddChild(grid)
	}
}
