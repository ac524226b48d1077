package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilesmith/project"
)

func buildTilesetPanelUI(
	theme *widget.Theme,
	fontFace *text.Face,
	textures []project.Asset,
	onSheetSelected func(path string),
	onAddSheet func(key project.Key, tiles string),
	onRemoveSheet func(idx int),
) *SheetPanel {
	sp := &SheetPanel{}
	labelColor := panelLabelColor()

	// Tileset panel: vertical layout (textures, sheets, then the palette)
	sp.Container = widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rightPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	textureEntries := make([]any, 0, len(textures))
	for _, a := range textures {
		textureEntries = append(textureEntries, a)
	}
	sp.Container.AddChild(widget.NewLabel(widget.LabelOpts.Text("Textures", fontFace, labelColor)))
	textureList := widget.NewList(
		widget.ListOpts.Entries(textureEntries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if a, ok := e.(project.Asset); ok {
				return a.Path
			}
			return ""
		}),
	)
	sp.Container.AddChild(textureList)

	tilesInput := newTilesInput(fontFace)
	tilesInput.SetText("8x8")
	addBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Add Sheet", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			a, ok := textureList.SelectedEntry().(project.Asset)
			if !ok || onAddSheet == nil {
				return
			}
			onAddSheet(a.Key(), tilesInput.GetText())
		}),
	)
	addRow := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	addRow.AddChild(tilesInput)
	addRow.AddChild(addBtn)
	sp.Container.AddChild(addRow)

	sp.Container.AddChild(widget.NewLabel(widget.LabelOpts.Text("Tile Sheets", fontFace, labelColor)))
	sp.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(SheetEntry); ok {
				return entry.Path
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(SheetEntry)
			if !ok || sp.suppressEvents || onSheetSelected == nil {
				return
			}
			onSheetSelected(entry.Path)
		}),
	)
	sp.Container.AddChild(sp.list)

	removeBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Remove Sheet", fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if entry, ok := sp.list.SelectedEntry().(SheetEntry); ok && onRemoveSheet != nil {
				onRemoveSheet(entry.Index)
			}
		}),
	)
	sp.Container.AddChild(removeBtn)

	return sp
}
