package placement

// View maps between screen pixels and world units. The world is y-up with
// the camera at the center of the screen; screen space is y-down from the
// top-left corner.
type View struct {
	CamX, CamY float64
	Zoom       float64
	ScreenW    float64
	ScreenH    float64
}

func (v View) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

func (v View) ScreenToWorld(sx, sy float64) (float64, float64) {
	z := v.zoom()
	return (sx-v.ScreenW/2)/z + v.CamX, -(sy-v.ScreenH/2)/z + v.CamY
}

func (v View) WorldToScreen(wx, wy float64) (float64, float64) {
	z := v.zoom()
	return (wx-v.CamX)*z + v.ScreenW/2, -(wy-v.CamY)*z + v.ScreenH/2
}
