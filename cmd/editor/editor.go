package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilesmith/collision"
	"github.com/milk9111/tilesmith/placement"
	"github.com/milk9111/tilesmith/project"
	"github.com/milk9111/tilesmith/scene"
	"github.com/milk9111/tilesmith/session"
	"golang.design/x/clipboard"
)

const (
	toolbarHeight = 48
	statusSeconds = 4
	minZoom       = 0.25
	maxZoom       = 8.0
)

type EditorGame struct {
	sess     *session.Session
	ui       *editorUI
	textures *textureCache
	view     placement.View

	tool      Tool
	painting  bool
	isPanning bool
	lastPanX  int
	lastPanY  int

	camTween  *cameraTween
	markerIdx int

	showCollision bool
	space         *collision.Space

	paletteSheet string
	clipboardOK  bool
	running      *session.Process

	status      string
	statusUntil time.Time
}

func NewEditorGame(sess *session.Session, clipboardOK bool) *EditorGame {
	g := &EditorGame{
		sess:        sess,
		textures:    newTextureCache(),
		view:        placement.View{Zoom: 2},
		clipboardOK: clipboardOK,
	}
	sess.Warn = func(format string, args ...any) {
		g.setStatus(format, args...)
	}

	var textures []project.Asset
	for _, a := range sess.Assets() {
		if a.Kind == project.KindTexture {
			textures = append(textures, a)
		}
	}
	g.ui = BuildEditorUI(uiCallbacks{
		onToolSelected:    func(t Tool) { g.tool = t },
		onLayerSelected:   g.selectLayer,
		onNewLayer:        g.addLayer,
		onToggleVisible:   g.toggleVisible,
		onToggleCollision: g.toggleCollision,
		onUseSheet:        g.useSheet,
		onAddMarker:       g.addMarker,
		onSheetSelected:   g.selectSheet,
		onAddSheet:        g.addSheet,
		onRemoveSheet:     g.removeSheet,
		actions: []toolbarAction{
			{Name: "Save", OnClick: g.save},
			{Name: "Undo", OnClick: g.undo},
			{Name: "Generate", OnClick: g.generate},
			{Name: "Run", OnClick: g.run},
		},
	}, textures, ToolPlace)
	g.refreshPanels()
	return g
}

func (g *EditorGame) setStatus(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if msg != g.status || time.Now().After(g.statusUntil) {
		log.Print(msg)
	}
	g.status = msg
	g.statusUntil = time.Now().Add(statusSeconds * time.Second)
}

// refreshPanels mirrors the scene's layers and sheets into the side panels.
func (g *EditorGame) refreshPanels() {
	sc := g.sess.Scene()
	eng := g.sess.Engine()
	if sc == nil || eng == nil {
		return
	}
	entries := make([]LayerEntry, len(sc.Layers))
	for i, l := range sc.Layers {
		entries[i] = LayerEntry{Index: i, Name: l.Name, Visible: l.Visible, Collision: l.Collision}
	}
	g.ui.layers.SetLayers(entries)
	g.ui.layers.SetSelected(eng.Layer())

	paths := make([]string, len(sc.TileSheets))
	for i, ts := range sc.TileSheets {
		paths[i] = ts.Path
	}
	g.ui.sheets.SetSheets(paths)
	g.ui.sheets.SetSelected(sc.SheetIndex(eng.Sheet()))
	g.refreshPalette()
	g.space = nil
}

func (g *EditorGame) refreshPalette() {
	sheet := g.sess.Engine().Sheet()
	if sheet == g.paletteSheet {
		return
	}
	g.paletteSheet = sheet
	ts, ok := g.sess.SheetGeometry(sheet)
	if !ok {
		g.ui.sheets.SetPalette(nil)
		return
	}
	img := g.textures.Get(ts.Path, ts.AbsolutePath)
	g.ui.sheets.SetPalette(NewTilesetGrid(img, ts, func(st scene.SubTile) {
		if err := g.sess.SelectSubTile(st); err != nil {
			g.setStatus("select tile: %v", err)
		}
	}))
}

func (g *EditorGame) selectLayer(idx int) {
	if err := g.sess.SelectLayer(idx); err != nil {
		g.setStatus("select layer: %v", err)
		return
	}
	g.refreshPanels()
}

func (g *EditorGame) cycleLayer(delta int) {
	sc := g.sess.Scene()
	if sc == nil || len(sc.Layers) == 0 {
		return
	}
	n := len(sc.Layers)
	g.selectLayer((g.sess.Engine().Layer() + delta + n) % n)
}

func (g *EditorGame) addLayer() {
	idx, err := g.sess.AddLayer()
	if err != nil {
		g.setStatus("add layer: %v", err)
		return
	}
	g.setStatus("Added layer %d", idx)
	g.refreshPanels()
}

func (g *EditorGame) toggleVisible(idx int) {
	if _, err := g.sess.ToggleLayerVisibility(idx); err != nil {
		g.setStatus("toggle visibility: %v", err)
	}
	g.refreshPanels()
}

func (g *EditorGame) toggleCollision(idx int) {
	sc := g.sess.Scene()
	if sc == nil || idx < 0 || idx >= len(sc.Layers) {
		return
	}
	if err := g.sess.SetLayerCollision(idx, !sc.Layers[idx].Collision); err != nil {
		g.setStatus("collision: %v", err)
	}
	g.refreshPanels()
}

func (g *EditorGame) useSheet(idx int) {
	sheet := g.sess.Engine().Sheet()
	if sheet == "" {
		g.setStatus("No tile sheet selected")
		return
	}
	if err := g.sess.SetLayerSheet(idx, sheet); err != nil {
		g.setStatus("set sheet: %v", err)
	}
	g.refreshPanels()
}

func (g *EditorGame) selectSheet(path string) {
	if err := g.sess.SelectSheet(path); err != nil {
		g.setStatus("select sheet: %v", err)
	}
	g.refreshPalette()
}

func (g *EditorGame) addSheet(key project.Key, tiles string) {
	var cx, cy int
	if _, err := fmt.Sscanf(tiles, "%dx%d", &cx, &cy); err != nil {
		g.setStatus("tile count %q: want e.g. 8x8", tiles)
		return
	}
	ts, err := g.sess.AddTileSheetFromAsset(key, cx, cy)
	if err != nil {
		g.setStatus("add sheet: %v", err)
		return
	}
	g.textures.Forget(ts.Path)
	g.setStatus("Added %s (%dx%d cells)", ts.Path, ts.TileW, ts.TileH)
	g.refreshPanels()
}

func (g *EditorGame) removeSheet(idx int) {
	ts, err := g.sess.RemoveTileSheet(idx)
	if err != nil {
		g.setStatus("remove sheet: %v", err)
		return
	}
	g.textures.Forget(ts.Path)
	g.refreshPanels()
}

func (g *EditorGame) addMarker() {
	idx, err := g.sess.AddMarker(g.view.CamX, g.view.CamY)
	if err != nil {
		g.setStatus("add marker: %v", err)
		return
	}
	g.markerIdx = idx
}

// nextMarker scrolls the camera to the following marker.
func (g *EditorGame) nextMarker() {
	sc := g.sess.Scene()
	if sc == nil || len(sc.Markers) == 0 {
		return
	}
	g.markerIdx = (g.markerIdx + 1) % len(sc.Markers)
	m := sc.Markers[g.markerIdx]
	g.camTween = newCameraTween(g.view, m.X, m.Y)
}

func (g *EditorGame) save() {
	if err := g.sess.SaveScene(); err != nil {
		return
	}
	if err := g.sess.SaveProject(); err != nil {
		return
	}
	g.setStatus("Saved %s", g.sess.Scene().Path)
}

func (g *EditorGame) undo() {
	if g.sess.Undo() {
		g.space = nil
	}
}

// generate writes the entry point and, when available, copies it to the
// clipboard.
func (g *EditorGame) generate() {
	path, err := g.sess.Generate()
	if err != nil {
		g.setStatus("generate: %v", err)
		return
	}
	if !g.clipboardOK {
		g.setStatus("Generated %s", path)
		return
	}
	b, err := os.ReadFile(path)
	if err != nil {
		g.setStatus("generate: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	g.setStatus("Generated %s (copied)", path)
}

// run regenerates and starts the project in the background. A second run
// while one is active stops the first.
func (g *EditorGame) run() {
	if g.running != nil {
		g.running.Stop()
		g.running = nil
		g.setStatus("run stopped")
		return
	}
	p, err := g.sess.Start(context.Background())
	if err != nil {
		g.setStatus("run: %v", err)
		return
	}
	g.running = p
	g.setStatus("Running %s", g.sess.Root)
}

func (g *EditorGame) Update() error {
	var runDone <-chan error
	if g.running != nil {
		runDone = g.running.Done()
	}
	select {
	case err := <-runDone:
		g.running = nil
		if err != nil {
			g.setStatus("run exited: %v", err)
		} else {
			g.setStatus("run finished")
		}
	default:
	}

	// If the UI has a focused text widget (user is typing), suppress hotkeys.
	suppressHotkeys := false
	if fw := g.ui.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			suppressHotkeys = true
		}
	}
	if !suppressHotkeys {
		g.handleHotkeys()
	}

	g.ui.ui.Update()

	if g.camTween != nil && g.camTween.update(&g.view, 1/float32(ebiten.TPS())) {
		g.camTween = nil
	}
	g.handlePanZoom()
	g.handleCanvas()
	return nil
}

func (g *EditorGame) handleHotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.generate()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		g.run()
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		g.cycleLayer(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.cycleLayer(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.nextMarker()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.showCollision = !g.showCollision
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.tool = ToolPlace
		g.ui.toolBar.SetTool(g.tool)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.tool = ToolErase
		g.ui.toolBar.SetTool(g.tool)
	}
}

func (g *EditorGame) handlePanZoom() {
	// Handle pan (middle mouse drag)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.isPanning = true
		g.camTween = nil
		g.lastPanX, g.lastPanY = ebiten.CursorPosition()
	}
	if g.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cx, cy := ebiten.CursorPosition()
		g.view.CamX -= float64(cx-g.lastPanX) / g.view.Zoom
		g.view.CamY += float64(cy-g.lastPanY) / g.view.Zoom
		g.lastPanX, g.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		g.isPanning = false
	}

	// Handle zoom (mouse wheel, centered on cursor)
	if _, wy := ebiten.Wheel(); wy != 0 && g.inCanvas() {
		cx, cy := ebiten.CursorPosition()
		beforeX, beforeY := g.view.ScreenToWorld(float64(cx), float64(cy))
		if wy > 0 {
			g.view.Zoom *= 1.1
		} else {
			g.view.Zoom /= 1.1
		}
		g.view.Zoom = min(max(g.view.Zoom, minZoom), maxZoom)
		afterX, afterY := g.view.ScreenToWorld(float64(cx), float64(cy))
		g.view.CamX += beforeX - afterX
		g.view.CamY += beforeY - afterY
	}
}

func (g *EditorGame) inCanvas() bool {
	sx, sy := ebiten.CursorPosition()
	return sx >= leftPanelWidth && sx < int(g.view.ScreenW)-rightPanelWidth && sy >= toolbarHeight && sy < int(g.view.ScreenH)
}

// handleCanvas turns mouse drags into placement input. Left uses the
// current tool, right always erases. A drag is one undo step.
func (g *EditorGame) handleCanvas() {
	if g.sess.Engine() == nil {
		return
	}
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		if g.painting {
			g.sess.Engine().EndStroke()
			g.painting = false
		}
		return
	}
	if !g.inCanvas() {
		return
	}
	if !g.painting {
		g.sess.Engine().BeginStroke()
		g.painting = true
	}
	sx, sy := ebiten.CursorPosition()
	wx, wy := g.view.ScreenToWorld(float64(sx), float64(sy))
	var err error
	if right || g.tool == ToolErase {
		_, err = g.sess.EraseTile(wx, wy)
	} else {
		_, err = g.sess.PlaceTile(wx, wy)
	}
	if err != nil {
		g.setStatus("%v", err)
		return
	}
	g.space = nil
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.view.ScreenW, g.view.ScreenH = float64(outsideWidth), float64(outsideHeight)
	return outsideWidth, outsideHeight
}
