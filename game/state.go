package game

import (
	"github.com/beka-birhanu/vinom-rail/game/maze"
)

// Status is the lifecycle stage of a session.
type Status uint8

const (
	Traversing     Status = iota // The train is on the current network.
	StationReached               // The station was reached; the next network is pending.
	DeadEnded                    // The train hit a buffer. Terminal.
	Exited                       // The player left or the session was closed. Terminal.
)

var statusNames = map[Status]string{
	Traversing:     "traversing",
	StationReached: "station_reached",
	DeadEnded:      "dead_ended",
	Exited:         "exited",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further moves can be made.
func (s Status) Terminal() bool {
	return s == DeadEnded || s == Exited
}

// CellState is the renderer-facing view of one cell.
type CellState struct {
	Type        string   `json:"type"`
	Connections []string `json:"connections"`
	Glyph       string   `json:"glyph"`
}

// State is a consistent snapshot of a session handed to the renderer and the host shell.
type State struct {
	Score      int           `json:"score"`
	Status     Status        `json:"status"`
	Generation int           `json:"generation"`
	Size       int           `json:"size"`
	Position   maze.Position `json:"position"`
	Previous   maze.Position `json:"previous"`
	Start      maze.Position `json:"start"`
	Station    maze.Position `json:"station"`
	Cells      [][]CellState `json:"cells"`
}

// snapshotGrid converts g into renderer-facing rows.
func snapshotGrid(g *maze.Grid) [][]CellState {
	rows := make([][]CellState, g.Size())
	g.ForEach(func(p maze.Position, c maze.Cell) {
		dirs := c.ConnectionList()
		names := make([]string, 0, len(dirs))
		for _, d := range dirs {
			names = append(names, d.String())
		}
		rows[p.Y] = append(rows[p.Y], CellState{
			Type:        c.Type.String(),
			Connections: names,
			Glyph:       maze.Glyph(c),
		})
	})
	return rows
}
