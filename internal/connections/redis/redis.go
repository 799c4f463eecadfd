package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"tableside/internal/config"
)

// Connect opens the Redis client used by the menu cache. A failed ping is
// returned to the caller; the menu falls back to the database without it.
func Connect(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
