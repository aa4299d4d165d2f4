package game

import "github.com/beka-birhanu/vinom-rail/game/maze"

// GridBuilder defines what a session needs to obtain a fresh rail network.
type GridBuilder interface {
	// Build returns a fully generated grid sized for the given cumulative score.
	Build(score int) (*maze.Grid, error)
}

var _ GridBuilder = &maze.Builder{}
