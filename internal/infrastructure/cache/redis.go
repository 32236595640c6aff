package cache

import (
	"context"
	"fmt"
	"time"

	"loan-ledger/internal/config"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects and pings within five seconds.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.Ping(pingCtx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return r, nil
}
