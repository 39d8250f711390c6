package ratelimit

import (
	"context"
	"time"
)

// Dimensions gated on the submission path.
const (
	DimensionIP = "ip"
	DimensionID = "tipusid"
)

type Result struct {
	Allowed bool
	Count   int
}

// Limiter gates one attempt for a (dimension, key) pair.
//
// CheckAndIncrement must be atomic with respect to concurrent callers on the
// same pair: two callers racing at the cap must not both be allowed, and a
// denied attempt never consumes quota.
type Limiter interface {
	CheckAndIncrement(ctx context.Context, dimension, key string) (Result, error)
}

// Rule is the cap and fixed-window length for one dimension.
type Rule struct {
	Max    int
	Window time.Duration
}
