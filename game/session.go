package game

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-rail/config"
	"github.com/beka-birhanu/vinom-rail/game/maze"
	"github.com/zyedidia/generic/mapset"
)

// Session errors.
var (
	ErrNoBuilder    = errors.New("session requires a grid builder")
	ErrGameOver     = errors.New("game is over")
	ErrRegenerating = errors.New("next network is being generated")
)

const (
	// DefaultRegenDelay leaves time to acknowledge the station before the next network appears.
	DefaultRegenDelay = time.Second

	reasonDeadEnd          = "dead_end"
	reasonGenerationFailed = "generation_failed"
)

// GameOver is delivered to the host shell when a game ends on its own.
type GameOver struct {
	FinalScore int       `json:"final_score"`
	Reason     string    `json:"reason"`
	At         time.Time `json:"at"`
}

// Config holds the collaborators and settings of a Session.
type Config struct {
	Builder    GridBuilder     // Source of fresh networks. Required.
	RegenDelay time.Duration   // Delay between reaching the station and the next network. Zero regenerates immediately.
	Logger     *log.Logger     // Logger. Defaults to discarding output.
	OnGameOver func(GameOver)  // Called once when the train hits a buffer or generation fails.
	OnExit     func(score int) // Called once when the player leaves.
}

// timer is the part of *time.Timer a session needs to cancel a pending regeneration.
type timer interface {
	Stop() bool
}

// Session owns one game: the current network, the train position and the cumulative score.
// All methods are safe for concurrent use; each move is applied atomically.
type Session struct {
	builder    GridBuilder
	regenDelay time.Duration
	logger     *log.Logger
	onGameOver func(GameOver)
	onExit     func(int)

	grid       *maze.Grid                // Current network.
	generation int                       // Number of networks built so far.
	score      int                       // Cumulative score across networks.
	current    maze.Position             // Train position.
	previous   maze.Position             // Cell the train arrived from.
	visited    mapset.Set[maze.Position] // Cells visited on the current network.
	status     Status
	pending    timer // Pending regeneration, if any.

	afterFunc func(time.Duration, func()) timer
	sync.Mutex
}

// NewSession creates a session and generates its first network.
func NewSession(c Config) (*Session, error) {
	if c.Builder == nil {
		return nil, ErrNoBuilder
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	if c.RegenDelay < 0 {
		c.RegenDelay = 0
	}

	s := &Session{
		builder:    c.Builder,
		regenDelay: c.RegenDelay,
		logger:     c.Logger,
		onGameOver: c.OnGameOver,
		onExit:     c.OnExit,
		afterFunc: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
	}

	if err := s.loadNetwork(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadNetwork replaces the grid with a fresh one sized for the current score and puts the
// train back on the start cell. Must be called with the lock held or before publication.
func (s *Session) loadNetwork() error {
	grid, err := s.builder.Build(s.score)
	if err != nil {
		return err
	}

	s.grid = grid
	s.generation++
	s.current, s.previous = grid.Start(), grid.Start()
	s.visited = mapset.New[maze.Position]()
	s.visited.Put(grid.Start())
	s.status = Traversing
	return nil
}

// Move tries to advance the train to the given cell.
// Rejected moves return an error wrapping ErrInvalidMove and change nothing.
func (s *Session) Move(to maze.Position) (Outcome, error) {
	out, over, err := s.move(to)
	if over != nil && s.onGameOver != nil {
		s.onGameOver(*over)
	}
	return out, err
}

// MovePixel quantises a pointer position with layout and moves the train to the cell under it.
func (s *Session) MovePixel(layout Layout, x, y float64) (Outcome, error) {
	return s.Move(layout.PixelToCell(x, y))
}

func (s *Session) move(to maze.Position) (Outcome, *GameOver, error) {
	s.Lock()
	defer s.Unlock()

	switch s.status {
	case DeadEnded, Exited:
		return Outcome{}, nil, ErrGameOver
	case StationReached:
		return Outcome{}, nil, ErrRegenerating
	}

	if err := ValidateMove(s.grid, s.current, to, s.previous); err != nil {
		return Outcome{}, nil, err
	}

	out := Outcome{From: s.current, To: to}
	s.previous, s.current = s.current, to
	if s.visited.Has(to) {
		return out, nil, nil
	}
	s.visited.Put(to)

	cell := s.grid.Cell(to)
	if cell.Type == maze.Junction {
		s.score++
		out.ScoreDelta++
		out.Junction = true
	}

	if cell.Type == maze.Buffer {
		out.DeadEnd = true
		s.status = DeadEnded
		s.logger.Printf("%s[INFO]%s train hit a buffer at %s, final score %d", config.LogInfoColor, config.LogColorReset, to, s.score)
		return out, s.gameOver(reasonDeadEnd), nil
	}

	if to == s.grid.Station() {
		s.score++
		out.ScoreDelta++
		out.StationReached = true
		s.status = StationReached
		if over := s.scheduleRegeneration(); over != nil {
			return out, over, nil
		}
	}

	return out, nil, nil
}

// scheduleRegeneration builds the next network after the configured delay, or at once when
// the delay is zero. It returns a game-over event if an immediate rebuild fails.
func (s *Session) scheduleRegeneration() *GameOver {
	if s.regenDelay == 0 {
		return s.regenerateLocked()
	}

	s.pending = s.afterFunc(s.regenDelay, func() {
		s.Lock()
		over := s.regenerateLocked()
		s.Unlock()

		if over != nil && s.onGameOver != nil {
			s.onGameOver(*over)
		}
	})
	return nil
}

func (s *Session) regenerateLocked() *GameOver {
	s.pending = nil
	if s.status != StationReached {
		return nil
	}

	if err := s.loadNetwork(); err != nil {
		s.status = Exited
		s.logger.Printf("%s[ERROR]%s generating network %d: %s", config.LogErrorColor, config.LogColorReset, s.generation+1, err)
		return s.gameOver(reasonGenerationFailed)
	}

	s.logger.Printf("%s[INFO]%s generated network %d (%dx%d) at score %d", config.LogInfoColor, config.LogColorReset, s.generation, s.grid.Size(), s.grid.Size(), s.score)
	return nil
}

func (s *Session) gameOver(reason string) *GameOver {
	return &GameOver{FinalScore: s.score, Reason: reason, At: time.Now().UTC()}
}

// Score returns the cumulative score.
func (s *Session) Score() int {
	s.Lock()
	defer s.Unlock()
	return s.score
}

// Status returns the lifecycle stage of the session.
func (s *Session) Status() Status {
	s.Lock()
	defer s.Unlock()
	return s.status
}

// Grid returns the current network. The grid is never mutated after generation.
func (s *Session) Grid() *maze.Grid {
	s.Lock()
	defer s.Unlock()
	return s.grid
}

// Snapshot returns a consistent view of the session for rendering.
func (s *Session) Snapshot() State {
	s.Lock()
	defer s.Unlock()

	return State{
		Score:      s.score,
		Status:     s.status,
		Generation: s.generation,
		Size:       s.grid.Size(),
		Position:   s.current,
		Previous:   s.previous,
		Start:      s.grid.Start(),
		Station:    s.grid.Station(),
		Cells:      snapshotGrid(s.grid),
	}
}

// Exit ends the session on the player's request and invokes the exit callback with the
// score reached. Calling Exit on a finished session only tears it down.
func (s *Session) Exit() {
	s.Lock()
	wasTerminal := s.status.Terminal()
	s.closeLocked()
	score := s.score
	s.Unlock()

	if !wasTerminal && s.onExit != nil {
		s.onExit(score)
	}
}

// Close tears the session down, cancelling any pending regeneration.
func (s *Session) Close() {
	s.Lock()
	defer s.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	if !s.status.Terminal() {
		s.status = Exited
	}
}
