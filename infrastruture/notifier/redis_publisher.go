package notifier

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/beka-birhanu/vinom-rail/service/i"
	"github.com/redis/go-redis/v9"
)

const defaultChannel = "rail:game_over"

var ErrNilClient = errors.New("redis client is required")

var _ i.GameOverPublisher = &RedisPublisher{}

// RedisPublisher publishes game-over events on a Redis pub/sub channel for the host shell.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher creates a publisher writing to channel on the given Redis client.
func NewRedisPublisher(client *redis.Client, channel string) (*RedisPublisher, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if channel == "" {
		channel = defaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}, nil
}

// PublishGameOver implements i.GameOverPublisher.
func (p *RedisPublisher) PublishGameOver(ctx context.Context, e i.GameOverEvent) error {
	payload, err := encodeEvent(e)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}

// Channel returns the channel events are published on.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

func encodeEvent(e i.GameOverEvent) ([]byte, error) {
	return json.Marshal(e)
}
