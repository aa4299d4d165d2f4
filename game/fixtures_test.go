package game

import (
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-rail/game/maze"
	"github.com/stretchr/testify/require"
)

// testNetwork is a 5x5 network:
//
//	start(0,2) ═ (1,2) ═ junction(2,2) ═ (3,2) ═ station(4,2)
//	junction(2,2) ║ (2,3) ║ buffer(2,4)
func testNetwork(t *testing.T) *maze.Grid {
	t.Helper()
	g, err := maze.NewGrid(5)
	require.NoError(t, err)

	require.NoError(t, g.SetType(maze.Position{X: 0, Y: 2}, maze.Start))
	require.NoError(t, g.SetType(maze.Position{X: 4, Y: 2}, maze.Station))
	require.NoError(t, g.SetType(maze.Position{X: 2, Y: 2}, maze.Junction))
	require.NoError(t, g.SetType(maze.Position{X: 2, Y: 4}, maze.Buffer))

	for x := 0; x < 4; x++ {
		require.NoError(t, g.Connect(maze.Position{X: x, Y: 2}, maze.Position{X: x + 1, Y: 2}))
	}
	require.NoError(t, g.Connect(maze.Position{X: 2, Y: 2}, maze.Position{X: 2, Y: 3}))
	require.NoError(t, g.Connect(maze.Position{X: 2, Y: 3}, maze.Position{X: 2, Y: 4}))
	return g
}

// fakeBuilder hands out grids from a factory and records the scores it was asked for.
type fakeBuilder struct {
	build  func(score int) (*maze.Grid, error)
	scores []int
	sync.Mutex
}

func (f *fakeBuilder) Build(score int) (*maze.Grid, error) {
	f.Lock()
	f.scores = append(f.scores, score)
	f.Unlock()
	return f.build(score)
}

func networkBuilder(t *testing.T) *fakeBuilder {
	return &fakeBuilder{build: func(int) (*maze.Grid, error) { return testNetwork(t), nil }}
}

// fakeTimer captures a scheduled regeneration so tests decide when it fires.
type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	wasActive := !f.stopped
	f.stopped = true
	return wasActive
}

func (f *fakeTimer) fire() {
	if !f.stopped {
		f.fn()
	}
}

func withFakeTimer(s *Session) *fakeTimer {
	ft := &fakeTimer{}
	s.afterFunc = func(d time.Duration, fn func()) timer {
		ft.delay, ft.fn = d, fn
		return ft
	}
	return ft
}

func walk(t *testing.T, s *Session, path ...maze.Position) {
	t.Helper()
	for _, p := range path {
		_, err := s.Move(p)
		require.NoError(t, err, "move to %s", p)
	}
}
