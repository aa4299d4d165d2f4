package i

import (
	"github.com/beka-birhanu/vinom-rail/game"
	"github.com/beka-birhanu/vinom-rail/game/maze"
	"github.com/google/uuid"
)

// GameSessionManager manages rail game sessions on behalf of the host shell.
type GameSessionManager interface {
	// NewSession starts a game and returns its ID, a bearer token bound to it and the first state.
	NewSession() (uuid.UUID, string, game.State, error)

	// State returns the current state of a session.
	State(id uuid.UUID) (game.State, error)

	// Move moves the train of a session to the given cell.
	Move(id uuid.UUID, to maze.Position) (game.Outcome, game.State, error)

	// MovePixel moves the train of a session to the cell under a pointer position.
	MovePixel(id uuid.UUID, x, y float64) (game.Outcome, game.State, error)

	// Exit ends a session on the player's request and returns the score reached.
	Exit(id uuid.UUID) (int, error)
}
