package main

import (
	"github.com/milk9111/tilesmith/placement"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const cameraTweenSeconds = 0.4

// cameraTween scrolls the view to a world position.
type cameraTween struct {
	tweenX, tweenY *gween.Tween
	doneX, doneY   bool
}

func newCameraTween(v placement.View, x, y float64) *cameraTween {
	return &cameraTween{
		tweenX: gween.New(float32(v.CamX), float32(x), cameraTweenSeconds, ease.OutCubic),
		tweenY: gween.New(float32(v.CamY), float32(y), cameraTweenSeconds, ease.OutCubic),
	}
}

// update advances the tween by dt seconds and reports whether it finished.
func (c *cameraTween) update(v *placement.View, dt float32) bool {
	if !c.doneX {
		val, done := c.tweenX.Update(dt)
		v.CamX = float64(val)
		c.doneX = done
	}
	if !c.doneY {
		val, done := c.tweenY.Update(dt)
		v.CamY = float64(val)
		c.doneY = done
	}
	return c.doneX && c.doneY
}
