package scene

import (
	"fmt"
	"image"
	"path"
)

// TileSheet is a texture cut into a uniform grid of sub-tiles.
type TileSheet struct {
	Filename     string `json:"filename"`
	Path         string `json:"path"`
	AbsolutePath string `json:"absolute_path"`
	TileW        int    `json:"tile_w"`
	TileH        int    `json:"tile_h"`
	SheetW       int    `json:"sheet_w"`
	SheetH       int    `json:"sheet_h"`
}

// NewTileSheet derives the cell size from how many tiles the sheet holds on
// each axis.
func NewTileSheet(sheetPath, absPath string, sheetW, sheetH, countX, countY int) (TileSheet, error) {
	ts := TileSheet{
		Filename:     path.Base(sheetPath),
		Path:         sheetPath,
		AbsolutePath: absPath,
		SheetW:       sheetW,
		SheetH:       sheetH,
	}
	if err := ts.SetTileCount(countX, countY); err != nil {
		return TileSheet{}, err
	}
	return ts, nil
}

// SetTileCount recomputes the cell size. A zero count on either axis is
// rejected and the current cell size kept.
func (ts *TileSheet) SetTileCount(countX, countY int) error {
	if countX <= 0 || countY <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrZeroTileCount, countX, countY)
	}
	w, h := ts.SheetW/countX, ts.SheetH/countY
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: %dx%d tiles on a %dx%d sheet", ErrZeroTileCount, countX, countY, ts.SheetW, ts.SheetH)
	}
	ts.TileW, ts.TileH = w, h
	return nil
}

// TilesPerAxis reports how many whole tiles fit on each axis.
func (ts TileSheet) TilesPerAxis() (int, int) {
	if ts.TileW <= 0 || ts.TileH <= 0 {
		return 0, 0
	}
	return ts.SheetW / ts.TileW, ts.SheetH / ts.TileH
}

// Contains reports whether st addresses a tile inside the sheet.
func (ts TileSheet) Contains(st SubTile) bool {
	cols, rows := ts.TilesPerAxis()
	return st.Col >= 0 && st.Row >= 0 && st.Col < cols && st.Row < rows
}

// SubTileRect is the pixel rectangle of st inside the sheet texture.
func (ts TileSheet) SubTileRect(st SubTile) image.Rectangle {
	x, y := st.Col*ts.TileW, st.Row*ts.TileH
	return image.Rect(x, y, x+ts.TileW, y+ts.TileH)
}

// Clamp pulls st into the sheet's range.
func (ts TileSheet) Clamp(st SubTile) SubTile {
	cols, rows := ts.TilesPerAxis()
	return SubTile{Col: clamp(st.Col, 0, cols-1), Row: clamp(st.Row, 0, rows-1)}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
