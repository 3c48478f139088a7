package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis dials the Redis instance backing the job queues and dead letter
// lists. A failed ping is fatal: the notification pipeline cannot run
// without its queues, so the server refuses to start half-wired.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
