package i

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GameOverEvent is published to the host shell when a game ends.
type GameOverEvent struct {
	SessionID  uuid.UUID `json:"session_id"`
	FinalScore int       `json:"final_score"`
	Reason     string    `json:"reason"`
	At         time.Time `json:"at"`
}

// GameOverPublisher delivers game-over events to the host shell.
type GameOverPublisher interface {
	PublishGameOver(ctx context.Context, e GameOverEvent) error
}
