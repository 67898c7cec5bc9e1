package realtime

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// topicPrefix namespaces the per-owner update channels in Redis.
const topicPrefix = "collab-updates/"

// Topic returns the Redis channel for one owner's updates.
func Topic(ownerEmail string) string {
	return topicPrefix + ownerEmail
}

// RedisNotifier publishes owner updates through Redis pub/sub, so a
// confirmation handled by one instance reaches WebSocket clients
// connected to any instance.
type RedisNotifier struct {
	client redis.UniversalClient
}

// NewRedisNotifier creates a new Redis-backed notifier.
func NewRedisNotifier(client redis.UniversalClient) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// Publish sends a payload to the owner's topic. Delivery is fire and
// forget: subscribers that are offline miss the message.
func (n *RedisNotifier) Publish(ctx context.Context, ownerEmail, payload string) error {
	if err := n.client.Publish(ctx, Topic(ownerEmail), payload).Err(); err != nil {
		return fmt.Errorf("publish update: %w", err)
	}
	return nil
}
