package notifier

import (
	"context"
	"log"

	"github.com/beka-birhanu/vinom-rail/config"
	"github.com/beka-birhanu/vinom-rail/service/i"
)

var _ i.GameOverPublisher = &LogPublisher{}

// LogPublisher writes game-over events to a logger. It is used when no Redis is configured.
type LogPublisher struct {
	logger *log.Logger
}

// NewLogPublisher creates a publisher writing to logger.
func NewLogPublisher(logger *log.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// PublishGameOver implements i.GameOverPublisher.
func (p *LogPublisher) PublishGameOver(_ context.Context, e i.GameOverEvent) error {
	p.logger.Printf("%s[INFO]%s game over for session %s: %s, final score %d", config.LogInfoColor, config.LogColorReset, e.SessionID, e.Reason, e.FinalScore)
	return nil
}
