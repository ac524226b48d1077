package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/event"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// toolbarAction is a one-shot button on the toolbar.
type toolbarAction struct {
	Name    string
	OnClick func()
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, onToolSelected func(tool Tool), initialTool Tool, actions []toolbarAction) (*widget.Container, *ToolBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 48),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(toolbarColor)),
	)

	var toolButtons []*widget.Button
	for _, name := range toolNames {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(name, fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(56, 40),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}

	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onToolSelected == nil {
				return
			}
			for idx, b := range toolButtons {
				if args.Active == b {
					onToolSelected(Tool(idx))
					return
				}
			}
		}),
	)

	if idx := int(initialTool); idx >= 0 && idx < len(toolButtons) {
		group.SetActive(toolButtons[idx])
	}

	for _, a := range actions {
		onClick := a.OnClick
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(a.Name, fontFace, buttonTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(56, 40),
			),
		)
		btn.ClickedEvent.AddHandler(event.WrapHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}))
		toolbar.AddChild(btn)
	}

	return toolbar, &ToolBar{group: group, buttons: toolButtons}
}
