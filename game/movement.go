package game

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-rail/game/maze"
)

// Move rejection errors. A rejected move leaves the session untouched and is a normal outcome.
var (
	ErrInvalidMove = errors.New("invalid move request")
	ErrOutOfGrid   = fmt.Errorf("%w: target is outside the grid", ErrInvalidMove)
	ErrNotAdjacent = fmt.Errorf("%w: target is not adjacent", ErrInvalidMove)
	ErrNoTrack     = fmt.Errorf("%w: no track between the cells", ErrInvalidMove)
	ErrReversal    = fmt.Errorf("%w: cannot reverse onto the previous cell", ErrInvalidMove)
)

// ValidateMove checks whether a train at current may move to proposed, having arrived from previous.
// The move must be a single step along track connected on both sides, and must not turn straight
// back onto the cell just vacated.
func ValidateMove(g *maze.Grid, current, proposed, previous maze.Position) error {
	if !g.InBound(proposed) {
		return ErrOutOfGrid
	}
	if current.Manhattan(proposed) != 1 {
		return ErrNotAdjacent
	}
	if !g.Connected(current, proposed) {
		return ErrNoTrack
	}
	if proposed == previous {
		return ErrReversal
	}
	return nil
}

// Outcome reports the side effects of an accepted move.
type Outcome struct {
	From           maze.Position `json:"from"`
	To             maze.Position `json:"to"`
	ScoreDelta     int           `json:"score_delta"`
	Junction       bool          `json:"junction"`        // A junction was visited for the first time.
	DeadEnd        bool          `json:"dead_end"`        // The train hit a buffer; the game is over.
	StationReached bool          `json:"station_reached"` // The next network will be generated.
}
