package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Connect opens a Redis client and checks it answers. An unreachable server
// is not fatal: the caller gets a nil client and runs without resume.
func Connect(ctx context.Context, addr, password string, db int, log *zap.SugaredLogger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnw("could not connect to redis, resume disabled", "addr", addr, zap.Error(err))
		client.Close()
		return nil
	}

	log.Infow("connected to redis", "addr", addr)
	return client
}
