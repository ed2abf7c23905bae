package ratelimit

import (
	"sync"
	"time"
)

// Settings configure a Buckets limiter.
type Settings struct {
	Rate       float64       // refill, tokens per second
	Burst      int           // bucket capacity
	IdleTTL    time.Duration // buckets unused this long are dropped; 0 keeps them forever
	MaxBuckets int           // 0 means unbounded
}

// Buckets keeps a token bucket per key.
type Buckets struct {
	s     Settings
	clock Clock

	mu        sync.Mutex
	byKey     map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	tokens   float64
	refilled time.Time
	seen     time.Time
}

// NewBuckets creates a limiter. A nil clock uses wall time.
func NewBuckets(clock Clock, s Settings) *Buckets {
	if clock == nil {
		clock = systemClock{}
	}
	if s.Rate <= 0 {
		s.Rate = 1
	}
	if s.Burst <= 0 {
		s.Burst = 1
	}
	if s.MaxBuckets < 0 {
		s.MaxBuckets = 0
	}
	return &Buckets{s: s, clock: clock, byKey: make(map[string]*bucket)}
}

// Allow spends one token from key's bucket. New keys are refused while the
// table is full and nothing idle can be evicted.
func (l *Buckets) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now, false)

	b, ok := l.byKey[key]
	if !ok {
		if l.s.MaxBuckets > 0 && len(l.byKey) >= l.s.MaxBuckets {
			l.sweep(now, true)
			if len(l.byKey) >= l.s.MaxBuckets {
				return false
			}
		}
		b = &bucket{tokens: float64(l.s.Burst), refilled: now}
		l.byKey[key] = b
	}
	return b.take(now, l.s.Rate, float64(l.s.Burst))
}

// Len returns the number of tracked keys.
func (l *Buckets) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byKey)
}

func (b *bucket) take(now time.Time, rate, capacity float64) bool {
	if dt := now.Sub(b.refilled); dt > 0 {
		b.tokens = min(capacity, b.tokens+dt.Seconds()*rate)
		b.refilled = now
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops idle buckets. Without force it runs at most every max(IdleTTL/2, 1m).
func (l *Buckets) sweep(now time.Time, force bool) {
	if l.s.IdleTTL <= 0 {
		return
	}
	if !force {
		every := max(l.s.IdleTTL/2, time.Minute)
		if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < every {
			return
		}
	}
	l.lastSweep = now

	for k, b := range l.byKey {
		if now.Sub(b.seen) > l.s.IdleTTL {
			delete(l.byKey, k)
		}
	}
}
