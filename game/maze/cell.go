package maze

import "fmt"

// Position represents the coordinates of a cell in the grid.
type Position struct {
	X int `json:"x"` // Column index of the cell
	Y int `json:"y"` // Row index of the cell
}

// Add returns the position one step away in direction d.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance between p and o.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Key returns the "x,y" key used for visited sets.
func (p Position) Key() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func (p Position) String() string {
	return "(" + p.Key() + ")"
}

// Direction is one of the four compass directions a track can leave a cell by.
type Direction uint8

const (
	Up Direction = 1 << iota
	Down
	Left
	Right
)

// Directions lists every direction in the order neighbours are explored.
var Directions = []Direction{Right, Left, Down, Up}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return 0
}

// Delta returns the x and y offsets of one step in direction d.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// DirectionBetween returns the direction leading from a to b when the two are grid-adjacent.
func DirectionBetween(a, b Position) (Direction, bool) {
	if a.Manhattan(b) != 1 {
		return 0, false
	}
	switch {
	case b.X > a.X:
		return Right, true
	case b.X < a.X:
		return Left, true
	case b.Y > a.Y:
		return Down, true
	default:
		return Up, true
	}
}

// CellType classifies what a cell represents on the rail network.
type CellType uint8

const (
	Empty CellType = iota
	Start
	Station
	Junction
	Buffer
	Tunnel
	Bridge
)

var cellTypeNames = map[CellType]string{
	Empty:    "empty",
	Start:    "start",
	Station:  "station",
	Junction: "junction",
	Buffer:   "buffer",
	Tunnel:   "tunnel",
	Bridge:   "bridge",
}

func (t CellType) String() string {
	if name, ok := cellTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Immutable reports whether a cell of this type can never be reclassified.
func (t CellType) Immutable() bool {
	return t == Start || t == Station
}

// Crossing reports whether t is a tunnel or a bridge.
func (t CellType) Crossing() bool {
	return t == Tunnel || t == Bridge
}

// Cell represents a single cell of the rail grid.
// It holds the cell type and the set of directions its track leaves by.
type Cell struct {
	Type        CellType  // Type of the cell.
	Connections Direction // Bitmask of connected directions.
	touched     bool      // Set once any connection attempt has involved this cell.
}

// HasConnection reports whether the cell's track leaves in direction d.
func (c Cell) HasConnection(d Direction) bool {
	return c.Connections&d != 0
}

// Degree returns the number of connections of the cell.
func (c Cell) Degree() int {
	n := 0
	for _, d := range Directions {
		if c.HasConnection(d) {
			n++
		}
	}
	return n
}

// ConnectionList returns the connected directions in exploration order.
func (c Cell) ConnectionList() []Direction {
	dirs := make([]Direction, 0, 4)
	for _, d := range Directions {
		if c.HasConnection(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Pristine reports whether the cell is empty and has never been connected.
func (c Cell) Pristine() bool {
	return c.Type == Empty && c.Connections == 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
