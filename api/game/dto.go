// Package gameapi exposes rail game sessions over HTTP.
package gameapi

import (
	"github.com/beka-birhanu/vinom-rail/game"
	"github.com/google/uuid"
)

// NewGameResponse is returned when a game starts.
type NewGameResponse struct {
	SessionID uuid.UUID  `json:"session_id"`
	Token     string     `json:"token"`
	State     game.State `json:"state"`
}

// MoveRequest carries either a target cell (x, y) or a pointer position in pixels (px, py).
type MoveRequest struct {
	X  *int     `json:"x"`
	Y  *int     `json:"y"`
	PX *float64 `json:"px"`
	PY *float64 `json:"py"`
}

// MoveResponse reports an accepted move and the resulting state.
type MoveResponse struct {
	Outcome game.Outcome `json:"outcome"`
	State   game.State   `json:"state"`
}

// RejectedMoveResponse reports why a move was refused. The state is unchanged.
type RejectedMoveResponse struct {
	Error string     `json:"error"`
	State game.State `json:"state"`
}

// ExitResponse reports the score reached when the player leaves.
type ExitResponse struct {
	FinalScore int `json:"final_score"`
}
