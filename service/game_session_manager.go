package service

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-rail/config"
	"github.com/beka-birhanu/vinom-rail/game"
	"github.com/beka-birhanu/vinom-rail/game/maze"
	"github.com/beka-birhanu/vinom-rail/service/i"
	"github.com/google/uuid"
)

const (
	defaultTokenTTL = time.Hour
	publishTimeout  = 2 * time.Second
	reasonExit      = "exit"
)

var (
	ErrSessionNotFound = errors.New("game session not found")
	ErrMissingBuilder  = errors.New("grid builder is required")
	ErrMissingToken    = errors.New("tokenizer is required")
)

var _ i.GameSessionManager = &GameSessionManager{}

// GameSessionManager owns the live rail sessions and reports their end to the host shell.
type GameSessionManager struct {
	builder    game.GridBuilder
	tokenizer  i.Tokenizer
	publisher  i.GameOverPublisher
	tokenTTL   time.Duration
	regenDelay time.Duration
	layout     game.Layout
	logger     *log.Logger
	sessions   map[uuid.UUID]*game.Session
	sync.RWMutex
}

// Config holds the collaborators of a GameSessionManager.
type Config struct {
	Builder    game.GridBuilder
	Tokenizer  i.Tokenizer
	Publisher  i.GameOverPublisher // Optional. Game-over events are only logged when nil.
	TokenTTL   time.Duration
	RegenDelay time.Duration
	Layout     game.Layout
	Logger     *log.Logger
}

func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c.Builder == nil {
		return nil, ErrMissingBuilder
	}
	if c.Tokenizer == nil {
		return nil, ErrMissingToken
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}
	if c.Layout.CellSize <= 0 {
		c.Layout = game.DefaultLayout
	}

	return &GameSessionManager{
		builder:    c.Builder,
		tokenizer:  c.Tokenizer,
		publisher:  c.Publisher,
		tokenTTL:   c.TokenTTL,
		regenDelay: c.RegenDelay,
		layout:     c.Layout,
		logger:     c.Logger,
		sessions:   make(map[uuid.UUID]*game.Session),
	}, nil
}

// NewSession implements i.GameSessionManager.
func (g *GameSessionManager) NewSession() (uuid.UUID, string, game.State, error) {
	id := g.newID()

	s, err := game.NewSession(game.Config{
		Builder:    g.builder,
		RegenDelay: g.regenDelay,
		Logger:     g.logger,
		OnGameOver: func(over game.GameOver) {
			g.finish(id, over.FinalScore, over.Reason, over.At)
		},
		OnExit: func(score int) {
			g.finish(id, score, reasonExit, time.Now().UTC())
		},
	})
	if err != nil {
		g.logger.Printf("%s[ERROR]%s creating game session: %s", config.LogErrorColor, config.LogColorReset, err)
		return uuid.Nil, "", game.State{}, err
	}

	token, err := g.tokenizer.Generate(id, g.tokenTTL)
	if err != nil {
		s.Close()
		g.logger.Printf("%s[ERROR]%s issuing token for session %s: %s", config.LogErrorColor, config.LogColorReset, id, err)
		return uuid.Nil, "", game.State{}, err
	}

	g.Lock()
	g.sessions[id] = s
	g.Unlock()

	g.logger.Printf("%s[INFO]%s started game session: %s", config.LogInfoColor, config.LogColorReset, id)
	return id, token, s.Snapshot(), nil
}

// State implements i.GameSessionManager.
func (g *GameSessionManager) State(id uuid.UUID) (game.State, error) {
	s, err := g.session(id)
	if err != nil {
		return game.State{}, err
	}
	return s.Snapshot(), nil
}

// Move implements i.GameSessionManager.
func (g *GameSessionManager) Move(id uuid.UUID, to maze.Position) (game.Outcome, game.State, error) {
	s, err := g.session(id)
	if err != nil {
		return game.Outcome{}, game.State{}, err
	}

	out, err := s.Move(to)
	return out, s.Snapshot(), err
}

// MovePixel implements i.GameSessionManager.
func (g *GameSessionManager) MovePixel(id uuid.UUID, x, y float64) (game.Outcome, game.State, error) {
	s, err := g.session(id)
	if err != nil {
		return game.Outcome{}, game.State{}, err
	}

	out, err := s.MovePixel(g.layout, x, y)
	return out, s.Snapshot(), err
}

// Exit implements i.GameSessionManager.
func (g *GameSessionManager) Exit(id uuid.UUID) (int, error) {
	s, err := g.session(id)
	if err != nil {
		return 0, err
	}

	s.Exit()
	g.clean(id)
	return s.Score(), nil
}

// StopAll closes every live session without reporting them as finished.
func (g *GameSessionManager) StopAll() {
	g.Lock()
	defer g.Unlock()

	for id, s := range g.sessions {
		s.Close()
		delete(g.sessions, id)
	}
}

// Len returns the number of live sessions.
func (g *GameSessionManager) Len() int {
	g.RLock()
	defer g.RUnlock()
	return len(g.sessions)
}

func (g *GameSessionManager) session(id uuid.UUID) (*game.Session, error) {
	g.RLock()
	defer g.RUnlock()

	s, ok := g.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (g *GameSessionManager) newID() uuid.UUID {
	g.RLock()
	defer g.RUnlock()

	id := uuid.New()
	for {
		if _, ok := g.sessions[id]; !ok {
			return id
		}
		id = uuid.New()
	}
}

// finish reports the end of a session and forgets it.
func (g *GameSessionManager) finish(id uuid.UUID, score int, reason string, at time.Time) {
	g.clean(id)
	g.logger.Printf("%s[INFO]%s session %s ended (%s) with score %d", config.LogInfoColor, config.LogColorReset, id, reason, score)

	if g.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := g.publisher.PublishGameOver(ctx, i.GameOverEvent{SessionID: id, FinalScore: score, Reason: reason, At: at})
	if err != nil {
		g.logger.Printf("%s[ERROR]%s publishing game over for session %s: %s", config.LogErrorColor, config.LogColorReset, id, err)
	}
}

func (g *GameSessionManager) clean(id uuid.UUID) {
	g.Lock()
	defer g.Unlock()
	delete(g.sessions, id)
}
