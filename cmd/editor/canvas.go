package main

import (
	"math"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilesmith/collision"
	"github.com/milk9111/tilesmith/placement"
	"golang.org/x/image/colornames"
)

const defaultGridSize = 16

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(canvasColor)
	if g.sess.Scene() != nil {
		cellW, cellH := g.gridSize()
		g.drawGrid(screen, cellW, cellH)
		g.drawLayers(screen)
		if g.showCollision {
			g.drawCollision(screen)
		}
		g.drawMarkers(screen)
		g.drawHover(screen, cellW, cellH)
	}
	g.ui.ui.Draw(screen)
	g.drawStatus(screen)
}

// gridSize is the cell size of the selected sheet.
func (g *EditorGame) gridSize() (int, int) {
	if ts, ok := g.sess.SheetGeometry(g.sess.Engine().Sheet()); ok && ts.TileW > 0 && ts.TileH > 0 {
		return ts.TileW, ts.TileH
	}
	return defaultGridSize, defaultGridSize
}

// drawGrid draws cell borders. Cells are centered on multiples of the cell
// size, so borders sit at half-cell offsets.
func (g *EditorGame) drawGrid(screen *ebiten.Image, cellW, cellH int) {
	if float64(cellW)*g.view.Zoom < 4 || float64(cellH)*g.view.Zoom < 4 {
		return
	}
	minX, maxY := g.view.ScreenToWorld(0, 0)
	maxX, minY := g.view.ScreenToWorld(g.view.ScreenW, g.view.ScreenH)
	lineCol := gridColor
	cw, ch := float64(cellW), float64(cellH)
	for x := math.Floor(minX/cw)*cw - cw/2; x <= maxX+cw; x += cw {
		sx, _ := g.view.WorldToScreen(x, 0)
		vector.StrokeLine(screen, float32(sx), 0, float32(sx), float32(g.view.ScreenH), 1, lineCol, false)
	}
	for y := math.Floor(minY/ch)*ch - ch/2; y <= maxY+ch; y += ch {
		_, sy := g.view.WorldToScreen(0, y)
		vector.StrokeLine(screen, 0, float32(sy), float32(g.view.ScreenW), float32(sy), 1, lineCol, false)
	}
	ox, oy := g.view.WorldToScreen(0, 0)
	vector.StrokeLine(screen, float32(ox), 0, float32(ox), float32(g.view.ScreenH), 1, colornames.Darkred, false)
	vector.StrokeLine(screen, 0, float32(oy), float32(g.view.ScreenW), float32(oy), 1, colornames.Darkgreen, false)
}

func (g *EditorGame) drawLayers(screen *ebiten.Image) {
	sc := g.sess.Scene()
	current := g.sess.Engine().Layer()
	for li := range sc.Layers {
		cache, err := g.sess.DisplayCache(li)
		if err != nil {
			continue
		}
		for _, sp := range cache {
			if !sp.Visible {
				continue
			}
			g.drawSprite(screen, sp, li == current)
		}
	}
}

func (g *EditorGame) drawSprite(screen *ebiten.Image, sp placement.Sprite, current bool) {
	ts, ok := g.sess.SheetGeometry(sp.Sheet)
	w, h := float64(defaultGridSize), float64(defaultGridSize)
	if ok {
		w, h = float64(ts.TileW), float64(ts.TileH)
	}
	sx, sy := g.view.WorldToScreen(sp.X-w/2, sp.Y+h/2)
	var img *ebiten.Image
	if ok && !sp.Src.Empty() {
		img = g.textures.Get(ts.Path, ts.AbsolutePath)
	}
	if img == nil {
		// sheet is gone or its texture failed to load
		vector.FillRect(screen, float32(sx), float32(sy), float32(w*g.view.Zoom), float32(h*g.view.Zoom), missingSheet, false)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.view.Zoom, g.view.Zoom)
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterNearest
	if !current {
		op.ColorScale.ScaleAlpha(0.6)
	}
	screen.DrawImage(img.SubImage(sp.Src).(*ebiten.Image), op)
}

func (g *EditorGame) drawCollision(screen *ebiten.Image) {
	if g.space == nil {
		space, err := g.sess.Collision()
		if err != nil {
			return
		}
		g.space = space
	}
	drawBoxes(screen, g.view, g.space)
}

func drawBoxes(screen *ebiten.Image, v placement.View, space *collision.Space) {
	for _, bb := range space.Boxes() {
		x0, y0 := v.WorldToScreen(bb.L, bb.T)
		x1, y1 := v.WorldToScreen(bb.R, bb.B)
		vector.FillRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), collisionFill, false)
		vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 1.0, collisionEdge, false)
	}
}

func (g *EditorGame) drawMarkers(screen *ebiten.Image) {
	for _, m := range g.sess.Scene().Markers {
		sx, sy := g.view.WorldToScreen(m.X, m.Y)
		vector.FillRect(screen, float32(sx)-3, float32(sy)-3, 6, 6, markerColor, false)
		ebitenutil.DebugPrintAt(screen, m.Name, int(sx)+6, int(sy)-8)
	}
}

func (g *EditorGame) drawHover(screen *ebiten.Image, cellW, cellH int) {
	if !g.inCanvas() {
		return
	}
	cx, cy := ebiten.CursorPosition()
	wx, wy := g.view.ScreenToWorld(float64(cx), float64(cy))
	cell, err := placement.Snap(wx, wy, cellW, cellH)
	if err != nil {
		return
	}
	w, h := float64(cellW), float64(cellH)
	sx, sy := g.view.WorldToScreen(float64(cell.X)-w/2, float64(cell.Y)+h/2)
	col := statusColor
	if g.tool == ToolErase {
		col = statusErrColor
	}
	vector.StrokeRect(screen, float32(sx), float32(sy), float32(w*g.view.Zoom), float32(h*g.view.Zoom), 1.5, col, false)
}

func (g *EditorGame) drawStatus(screen *ebiten.Image) {
	y := int(g.view.ScreenH) - 20
	x := leftPanelWidth + 8
	if sc := g.sess.Scene(); sc != nil {
		ebitenutil.DebugPrintAt(screen, sc.Path+"  layer "+strconv.Itoa(g.sess.Engine().Layer())+"  "+g.tool.String(), x, y)
		y -= 16
	}
	if g.status != "" && g.statusUntil.After(time.Now()) {
		ebitenutil.DebugPrintAt(screen, g.status, x, y)
	}
}
