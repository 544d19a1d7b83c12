package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ICacheClient defines the contract for a cache client. The abstraction
// decouples the user service from a concrete Redis client so tests can
// substitute canned command results.
type ICacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
