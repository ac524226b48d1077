package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func buildLeftPanelUI(
	theme *widget.Theme,
	fontFace *text.Face,
	onLayerSelected func(layerIndex int),
	onNewLayer func(),
	onToggleVisible func(layerIndex int),
	onToggleCollision func(layerIndex int),
	onUseSheet func(layerIndex int),
	onAddMarker func(),
) (*widget.Container, *LayerPanel) {
	layerPanel := NewLayerPanel()
	layerPanel.onNewLayer = onNewLayer
	layerPanel.onToggleVisible = onToggleVisible
	layerPanel.onToggleCollision = onToggleCollision
	layerPanel.onUseSheet = onUseSheet

	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	layersLabel := widget.NewLabel(
		widget.LabelOpts.Text("Layers", fontFace, panelLabelColor()),
	)
	leftPanel.AddChild(layersLabel)

	layerList := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			entry, ok := e.(LayerEntry)
			if !ok {
				return ""
			}
			flags := ""
			if !entry.Visible {
				flags += " (hidden)"
			}
			if entry.Collision {
				flags += " [solid]"
			}
			return fmt.Sprintf("%d. %s%s", entry.Index, entry.Name, flags)
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || layerPanel.suppressEvents {
				return
			}
			if onLayerSelected != nil {
				onLayerSelected(entry.Index)
			}
		}),
	)
	leftPanel.AddChild(layerList)
	layerPanel.list = layerList

	row := func() *widget.Container {
		return widget.NewContainer(
			widget.ContainerOpts.Layout(
				widget.NewRowLayout(
					widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
					widget.RowLayoutOpts.Spacing(6),
				),
			),
		)
	}
	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}
	withSelected := func(fn func(idx int)) func() {
		return func() {
			if fn == nil {
				return
			}
			if idx := layerPanel.selected(); idx >= 0 {
				fn(idx)
			}
		}
	}

	layerRow := row()
	layerRow.AddChild(button("New", layerPanel.onNewLayer))
	layerRow.AddChild(button("Show/Hide", withSelected(layerPanel.onToggleVisible)))
	leftPanel.AddChild(layerRow)

	propsRow := row()
	propsRow.AddChild(button("Solid", withSelected(layerPanel.onToggleCollision)))
	propsRow.AddChild(button("Use Sheet", withSelected(layerPanel.onUseSheet)))
	leftPanel.AddChild(propsRow)

	markerRow := row()
	markerRow.AddChild(button("Add Marker", onAddMarker))
	leftPanel.AddChild(markerRow)

	return leftPanel, layerPanel
}
