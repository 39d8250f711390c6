package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"petition-backend/internal/storage"
)

// The whole read-modify-write runs server-side so concurrent submissions for
// the same key serialize on Redis. Bucket state is a hash {count, windowStart}
// in milliseconds; the TTL is set when a window opens, so stale buckets expire
// on their own and a rolled-over window starts fresh.
var checkAndIncrementScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])

local bucket = redis.call('HMGET', KEYS[1], 'count', 'windowStart')
local count = tonumber(bucket[1])
local windowStart = tonumber(bucket[2])

if count == nil or now - windowStart > window then
	redis.call('HSET', KEYS[1], 'count', 1, 'windowStart', now)
	redis.call('PEXPIRE', KEYS[1], window)
	return {1, 1}
end

if count + 1 > max then
	return {0, count}
end

count = redis.call('HINCRBY', KEYS[1], 'count', 1)
return {1, count}
`)

type RedisLimiter struct {
	redis *storage.RedisClient
	rules map[string]Rule
}

func NewRedisLimiter(redisClient *storage.RedisClient, rules map[string]Rule) *RedisLimiter {
	return &RedisLimiter{
		redis: redisClient,
		rules: rules,
	}
}

func (l *RedisLimiter) CheckAndIncrement(ctx context.Context, dimension, key string) (Result, error) {
	rule, ok := l.rules[dimension]
	if !ok {
		return Result{}, fmt.Errorf("unknown rate limit dimension %q", dimension)
	}

	redisKey := fmt.Sprintf("ratelimit:%s:%s", dimension, key)

	raw, err := l.redis.RunScript(ctx, checkAndIncrementScript, []string{redisKey},
		time.Now().UnixMilli(),
		rule.Window.Milliseconds(),
		rule.Max,
	)
	if err != nil {
		return Result{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	vals, ok := raw.([]interface{})
	if !ok || len(vals) != 2 {
		return Result{}, fmt.Errorf("unexpected rate limit script reply: %v", raw)
	}

	allowed, _ := vals[0].(int64)
	count, _ := vals[1].(int64)

	return Result{
		Allowed: allowed == 1,
		Count:   int(count),
	}, nil
}
