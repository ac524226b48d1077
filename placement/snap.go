package placement

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/tilesmith/scene"
)

var (
	ErrZeroCellSize = errors.New("cell size must be positive")
	ErrNoTileSheet  = errors.New("no tile sheet selected")
	ErrSubTileRange = errors.New("sub-tile outside sheet")
)

// Snap quantizes a world position to the grid origin of the cell holding it.
// Halves round away from zero on both axes.
func Snap(x, y float64, cellW, cellH int) (scene.Cell, error) {
	if cellW <= 0 || cellH <= 0 {
		return scene.Cell{}, fmt.Errorf("%w: %dx%d", ErrZeroCellSize, cellW, cellH)
	}
	return scene.Cell{
		X: int(math.Round(x/float64(cellW))) * cellW,
		Y: int(math.Round(y/float64(cellH))) * cellH,
	}, nil
}
