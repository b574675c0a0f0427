package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/nlitvinov/go-task-api/internal/config"
)

var globalRedisClient *redis.Client

// MustConnectRedis dials Redis when the cache is enabled. With the
// cache disabled it is a no-op and globalRedisClient stays nil.
func MustConnectRedis() {
	cfg := config.Global().Redis
	if !cfg.Enabled {
		globalLogger.Info().Msg("redis cache disabled")
		return
	}

	globalRedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := globalRedisClient.Ping(context.Background()).Err()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping redis")
		panic(err)
	}
	globalLogger.Info().
		Str("addr", cfg.Addr).
		Msg("connected to redis")
}

func DisconnectRedis() {
	if globalRedisClient == nil {
		return
	}

	err := globalRedisClient.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close redis client")
		return
	}
	globalLogger.Info().Msg("disconnected from redis")
}
