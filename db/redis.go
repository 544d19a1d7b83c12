package db

import (
	"context"
	"fmt"

	"incident-hub/config"
	"incident-hub/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis initializes and pings a Redis client for the user cache.
func ConnectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	redisAddr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.Password,
		DB:       0,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logger.Log.WithError(err).Error("Failed to ping Redis")
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Log.WithField("address", redisAddr).Info("Redis connection established successfully")
	return rdb, nil
}
