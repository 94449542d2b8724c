package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// ResourceLimiter throttles outbound calls per remote resource collection
// (flights, bookings, airports) so a busy screen cannot hammer the API host.
type ResourceLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

type Config struct {
	RequestsPerSecond float64
	Burst             int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 20,
		Burst:             40,
	}
}

func New(cfg Config) *ResourceLimiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultConfig()
	}
	return &ResourceLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: cfg,
	}
}

// SetLimit overrides the defaults for one resource.
func (l *ResourceLimiter) SetLimit(resource string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[resource] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until the resource's limiter admits one request or the context
// is cancelled.
func (l *ResourceLimiter) Wait(ctx context.Context, resource string) error {
	return l.limiter(resource).Wait(ctx)
}

func (l *ResourceLimiter) limiter(resource string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[resource]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok = l.limiters[resource]; ok {
		return lim
	}
	lim = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.Burst)
	l.limiters[resource] = lim
	return lim
}
