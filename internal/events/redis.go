package events

import (
	"context"
	"encoding/json" // JSON encoding

	"ledger_system/internal/domain" // Domain models

	"github.com/redis/go-redis/v9" // Redis client
)

// DefaultChannel is the pub/sub channel used when none is configured
const DefaultChannel = "ledger:events"

// Redis publishes notifications as JSON on a pub/sub channel
type Redis struct {
	rdb     *redis.Client
	channel string
}

// NewRedis creates a Redis sink. An empty channel selects DefaultChannel.
func NewRedis(rdb *redis.Client, channel string) *Redis {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Redis{rdb: rdb, channel: channel}
}

// Publish sends e to the channel
func (r *Redis) Publish(ctx context.Context, e domain.Event) error {
	b, err := json.Marshal(e) // Marshal event to JSON
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, r.channel, b).Err()
}
