package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// LayerPanel holds the list widget and small helpers used by the editor UI.
type LayerPanel struct {
	list    *widget.List
	entries []any

	onNewLayer        func()
	onToggleVisible   func(idx int)
	onToggleCollision func(idx int)
	onUseSheet        func(idx int)
	// suppressEvents, when true, causes the selection handler to ignore
	// programmatic selections.
	suppressEvents bool
}

func NewLayerPanel() *LayerPanel {
	return &LayerPanel{}
}

func (lp *LayerPanel) SetLayers(entries []LayerEntry) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = e
	}
	lp.entries = out
	lp.list.SetEntries(out)
	lp.suppressEvents = false
}

func (lp *LayerPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	if idx < 0 || idx >= len(lp.entries) {
		return
	}
	lp.suppressEvents = true
	lp.list.SetSelectedEntry(lp.entries[idx])
	lp.suppressEvents = false
}

// selected returns the index of the selected layer, or -1.
func (lp *LayerPanel) selected() int {
	if lp == nil || lp.list == nil {
		return -1
	}
	if e, ok := lp.list.SelectedEntry().(LayerEntry); ok {
		return e.Index
	}
	return -1
}
