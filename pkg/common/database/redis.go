package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/synaptica-ai/diagnostics/pkg/common/config"
	"github.com/synaptica-ai/diagnostics/pkg/common/logger"
)

// OpenRedis returns a client even when the first ping fails; go-redis reconnects on
// demand and cache misses degrade to recomputation.
func OpenRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Log.WithError(err).WithField("addr", cfg.RedisAddr()).Warn("Failed to connect to Redis")
		return client, err
	}
	logger.Log.WithField("addr", cfg.RedisAddr()).Info("Connected to Redis")
	return client, nil
}

func CloseRedis(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
