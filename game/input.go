package game

import (
	"math"

	"github.com/beka-birhanu/vinom-rail/game/maze"
)

// Layout describes how cells are laid out in pixel space by the renderer.
type Layout struct {
	CellSize float64 `json:"cell_size"` // Width and height of one cell in pixels.
	Gap      float64 `json:"gap"`       // Spacing between adjacent cells in pixels.
}

// DefaultLayout matches 40px cells separated by 2px gaps.
var DefaultLayout = Layout{CellSize: 40, Gap: 2}

// PixelToCell quantises a pointer position, relative to the grid's top-left corner, into the
// cell under it. Positions left of or above the grid map to negative coordinates.
func (l Layout) PixelToCell(x, y float64) maze.Position {
	pitch := l.CellSize + l.Gap
	if pitch <= 0 {
		pitch = DefaultLayout.CellSize + DefaultLayout.Gap
	}
	return maze.Position{
		X: int(math.Floor(x / pitch)),
		Y: int(math.Floor(y / pitch)),
	}
}
