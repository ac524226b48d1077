package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
)

// Colors shared by the side panels and the canvas.
var (
	panelColor     = color.RGBA{40, 40, 40, 255}
	paletteColor   = color.RGBA{60, 60, 60, 255}
	toolbarColor   = color.RGBA{220, 220, 240, 255}
	canvasColor    = color.RGBA{24, 24, 32, 255}
	gridColor      = color.RGBA{60, 60, 72, 255}
	collisionFill  = color.RGBA{R: 255, A: 48}
	collisionEdge  = color.RGBA{R: 255, A: 200}
	missingSheet   = colornames.Magenta
	markerColor    = colornames.Gold
	statusColor    = colornames.White
	statusErrColor = colornames.Orangered
)

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

// panelLabelColor is used for headings on the dark side panels.
func panelLabelColor() *widget.LabelColor {
	return &widget.LabelColor{Idle: colornames.White, Disabled: color.Gray{Y: 140}}
}

// newTilesInput is the "<cols>x<rows>" entry next to the texture list.
func newTilesInput(fontFace *text.Face) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(80, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(colornames.Whitesmoke),
			Disabled: solidNineSlice(color.Gray{Y: 200}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(fontFace),
	)
}

// newEditorTheme covers the widgets the panels build: the layer, texture and
// sheet lists, and the action buttons.
func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          color.Black,
				Selected:            colornames.Navy,
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: colornames.Lavender,
				SelectedBackground:  colornames.Lightsteelblue,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(colornames.Gainsboro),
				Mask: solidNineSlice(colornames.Gainsboro),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelColor),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(colornames.Darkgray),
				Hover:   solidNineSlice(colornames.Silver),
				Pressed: solidNineSlice(colornames.Gray),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}
