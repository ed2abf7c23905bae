package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-parcel/internal/config"
	"service-parcel/internal/http/middleware/ratelimit"
	"service-parcel/internal/logx"
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.Unlimited{}
	}
	return ratelimit.NewBuckets(clock, ratelimit.Settings{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		IdleTTL:    rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

// newRateLimitClock returns nil so the limiter falls back to wall time.
func newRateLimitClock() ratelimit.Clock {
	return nil
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}
