package ratelimit

import (
	"petition-backend/internal/storage"
)

// NewLimiter prefers the shared Redis store so that multiple instances count
// against the same buckets; the in-memory limiter is a single-instance
// fallback for development.
func NewLimiter(redisClient *storage.RedisClient, rules map[string]Rule) Limiter {
	if redisClient != nil {
		return NewRedisLimiter(redisClient, rules)
	}

	return NewMemory(rules)
}
