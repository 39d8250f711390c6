package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryLimiter keeps buckets in process memory. Only safe when exactly one
// instance serves traffic; multi-instance deployments need the Redis limiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	rules   map[string]Rule
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	count       int
	windowStart time.Time
}

func NewMemory(rules map[string]Rule) *MemoryLimiter {
	return &MemoryLimiter{
		rules:   rules,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) CheckAndIncrement(ctx context.Context, dimension, key string) (Result, error) {
	rule, ok := l.rules[dimension]
	if !ok {
		return Result{}, fmt.Errorf("unknown rate limit dimension %q", dimension)
	}

	now := l.now()
	bucketKey := dimension + ":" + key

	l.mu.Lock()
	defer l.mu.Unlock()

	b, exists := l.buckets[bucketKey]
	if !exists || now.Sub(b.windowStart) > rule.Window {
		l.buckets[bucketKey] = &bucket{count: 1, windowStart: now}
		return Result{Allowed: true, Count: 1}, nil
	}

	if b.count+1 > rule.Max {
		// Denied attempts must not consume quota
		return Result{Allowed: false, Count: b.count}, nil
	}

	b.count++

	return Result{Allowed: true, Count: b.count}, nil
}
