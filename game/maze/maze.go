/*
Package maze provides tools for generating and querying rail-network grids.

A Grid is a square matrix of Cells. Each cell has a type (start, station, junction, buffer,
tunnel, bridge or plain track) and a set of track connections that are always kept symmetric:
whenever a cell connects towards a neighbour, that neighbour connects back.

The package includes the meandering path generator, the network builder that lays the main line,
branches, crossings and dead-end sidings, a single breadth-first search used for every
connectivity query, and the difficulty table that scales the network with the player's score.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	minGridSize = 2
	maxGridSize = 32
)

var (
	ErrInvalidGridSize   = errors.New("invalid grid size")
	ErrOutOfBounds       = errors.New("position is out of the grid")
	ErrNotAdjacent       = errors.New("positions are not grid-adjacent")
	ErrImmutableCell     = errors.New("cell type cannot be changed")
	ErrDuplicateTerminal = errors.New("grid already has a cell of this type")
)

// Grid represents a square rail network made of cells with symmetric track connections.
type Grid struct {
	size       int      // Number of rows and columns.
	cells      [][]Cell // 2D matrix of cells indexed [y][x].
	start      Position // Position of the start cell.
	station    Position // Position of the station cell.
	hasStart   bool
	hasStation bool
}

// NewGrid creates a size×size grid whose cells are all empty and unconnected.
func NewGrid(size int) (*Grid, error) {
	if size < minGridSize || size > maxGridSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGridSize, size)
	}

	cells := make([][]Cell, size)
	for y := range cells {
		cells[y] = make([]Cell, size)
	}

	return &Grid{size: size, cells: cells}, nil
}

// Size returns the number of rows (and columns) of the grid.
func (g *Grid) Size() int {
	return g.size
}

// InBound checks whether p lies inside the grid.
func (g *Grid) InBound(p Position) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// Cell returns a copy of the cell at p. Out-of-bound positions yield an empty cell.
func (g *Grid) Cell(p Position) Cell {
	if !g.InBound(p) {
		return Cell{}
	}
	return g.cells[p.Y][p.X]
}

// Start returns the start position.
func (g *Grid) Start() Position {
	return g.start
}

// Station returns the station position.
func (g *Grid) Station() Position {
	return g.station
}

// Neighbors returns the grid-adjacent positions of p, bounds-checked.
func (g *Grid) Neighbors(p Position) []Position {
	result := make([]Position, 0, 4)
	for _, d := range Directions {
		if n := p.Add(d); g.InBound(n) {
			result = append(result, n)
		}
	}
	return result
}

// Connect lays track between two adjacent cells. Both sides get the matching direction;
// repeating the call has no further effect.
func (g *Grid) Connect(a, b Position) error {
	if !g.InBound(a) || !g.InBound(b) {
		return ErrOutOfBounds
	}
	dir, ok := DirectionBetween(a, b)
	if !ok {
		return ErrNotAdjacent
	}

	from, to := &g.cells[a.Y][a.X], &g.cells[b.Y][b.X]
	from.Connections |= dir
	to.Connections |= dir.Opposite()
	from.touched, to.touched = true, true
	return nil
}

// Connected reports whether track runs between a and b in both directions.
func (g *Grid) Connected(a, b Position) bool {
	if !g.InBound(a) || !g.InBound(b) {
		return false
	}
	dir, ok := DirectionBetween(a, b)
	if !ok {
		return false
	}
	return g.cells[a.Y][a.X].HasConnection(dir) && g.cells[b.Y][b.X].HasConnection(dir.Opposite())
}

// SetType changes the type of the cell at p. Start and station cells are immutable once set
// and a grid holds at most one of each.
func (g *Grid) SetType(p Position, t CellType) error {
	if !g.InBound(p) {
		return ErrOutOfBounds
	}
	cell := &g.cells[p.Y][p.X]
	if cell.Type.Immutable() {
		return fmt.Errorf("%w: %s at %s", ErrImmutableCell, cell.Type, p)
	}

	switch t {
	case Start:
		if g.hasStart {
			return fmt.Errorf("%w: %s", ErrDuplicateTerminal, t)
		}
		g.start, g.hasStart = p, true
	case Station:
		if g.hasStation {
			return fmt.Errorf("%w: %s", ErrDuplicateTerminal, t)
		}
		g.station, g.hasStation = p, true
	}

	cell.Type = t
	return nil
}

// ForEach calls fn for every cell in row-major order.
func (g *Grid) ForEach(fn func(Position, Cell)) {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			fn(Position{X: x, Y: y}, g.cells[y][x])
		}
	}
}

// Positions returns every position whose cell satisfies keep, in row-major order.
func (g *Grid) Positions(keep func(Position, Cell) bool) []Position {
	var result []Position
	g.ForEach(func(p Position, c Cell) {
		if keep(p, c) {
			result = append(result, p)
		}
	})
	return result
}

// Symmetric reports the first connection without a reciprocal, if any.
func (g *Grid) Symmetric() (Position, Direction, bool) {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			p := Position{X: x, Y: y}
			for _, d := range g.cells[y][x].ConnectionList() {
				n := p.Add(d)
				if !g.InBound(n) || !g.cells[n.Y][n.X].HasConnection(d.Opposite()) {
					return p, d, false
				}
			}
		}
	}
	return Position{}, 0, true
}

// String renders the grid with one track glyph per cell.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			sb.WriteString(Glyph(g.cells[y][x]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
