package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilesmith/scene"
)

// maxPaletteCell bounds how large one palette button gets.
const maxPaletteCell = 32

// NewTilesetGrid creates a widget for displaying a tile sheet as a grid of
// selectable sub-tiles.
func NewTilesetGrid(tileset *ebiten.Image, ts scene.TileSheet, onSelect func(st scene.SubTile)) *widget.Container {
	cols, rows := ts.TilesPerAxis()
	if tileset == nil || cols == 0 || rows == 0 {
		return widget.NewContainer()
	}
	cellW, cellH := ts.TileW, ts.TileH
	if cellW > maxPaletteCell {
		cellW = maxPaletteCell
	}
	if cellH > maxPaletteCell {
		cellH = maxPaletteCell
	}
	container := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(paletteColor)),
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(cols),
				widget.GridLayoutOpts.Spacing(2, 2),
			),
		),
	)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			st := scene.SubTile{Col: x, Row: y}
			sub := tileset.SubImage(ts.SubTileRect(st)).(*ebiten.Image)
			imgWidget := widget.NewGraphic(
				widget.GraphicOpts.Image(sub),
				widget.GraphicOpts.WidgetOpts(
					widget.WidgetOpts.MinSize(cellW, cellH),
					widget.WidgetOpts.MouseButtonClickedHandler(func(args *widget.WidgetMouseButtonClickedEventArgs) {
						onSelect(st)
					}),
				),
			)
			container.AddChild(imgWidget)
		}
	}
	return container
}
