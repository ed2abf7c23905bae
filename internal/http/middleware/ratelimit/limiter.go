// Package ratelimit throttles HTTP clients with one token bucket per client address.
package ratelimit

import "time"

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Unlimited lets every request through. It is used when rate limiting is disabled.
type Unlimited struct{}

// Allow always returns true.
func (Unlimited) Allow(string) bool { return true }
