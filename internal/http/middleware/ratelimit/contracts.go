package ratelimit

import "time"

// Limiter is a keyed rate limiter. When it refuses, wait is how long until the key
// has a token again.
type Limiter interface {
	Allow(key string) (ok bool, wait time.Duration)
}
