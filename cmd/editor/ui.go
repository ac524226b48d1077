package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/tilesmith/project"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	leftPanelWidth  = 200
	rightPanelWidth = 240
)

// uiCallbacks are the editor actions the widgets trigger.
type uiCallbacks struct {
	onToolSelected    func(tool Tool)
	onLayerSelected   func(idx int)
	onNewLayer        func()
	onToggleVisible   func(idx int)
	onToggleCollision func(idx int)
	onUseSheet        func(idx int)
	onAddMarker       func()
	onSheetSelected   func(path string)
	onAddSheet        func(key project.Key, tiles string)
	onRemoveSheet     func(idx int)
	actions           []toolbarAction
}

// editorUI bundles the widget tree and the panels the editor updates.
type editorUI struct {
	ui       *ebitenui.UI
	toolBar  *ToolBar
	layers   *LayerPanel
	sheets   *SheetPanel
	fontFace text.Face
}

func BuildEditorUI(cb uiCallbacks, textures []project.Asset, initialTool Tool) *editorUI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	sheetPanel := buildTilesetPanelUI(ui.PrimaryTheme, &fontFace, textures, cb.onSheetSelected, cb.onAddSheet, cb.onRemoveSheet)
	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, cb.onToolSelected, initialTool, cb.actions)
	leftPanel, layerPanel := buildLeftPanelUI(
		ui.PrimaryTheme,
		&fontFace,
		cb.onLayerSelected,
		cb.onNewLayer,
		cb.onToggleVisible,
		cb.onToggleCollision,
		cb.onUseSheet,
		cb.onAddMarker,
	)

	// Root container: anchor layout
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	sheetPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	// Toolbar: top center
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel)
	root.AddChild(sheetPanel.Container)
	root.AddChild(toolbarContainer)

	ui.Container = root
	return &editorUI{
		ui:       ui,
		toolBar:  toolBar,
		layers:   layerPanel,
		sheets:   sheetPanel,
		fontFace: fontFace,
	}
}
