package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter holds one token bucket per key (provider name, booking ID,
// client IP). Buckets are created on first use with the default config.
type KeyedLimiter struct {
	entries  map[string]*entry
	mu       sync.RWMutex
	defaults RateLimitConfig
	now      func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

func NewKeyedLimiter(config RateLimitConfig) *KeyedLimiter {
	return &KeyedLimiter{
		entries:  make(map[string]*entry),
		defaults: config,
		now:      time.Now,
	}
}

func NewKeyedLimiterWithDefaults() *KeyedLimiter {
	return NewKeyedLimiter(DefaultConfig())
}

func (l *KeyedLimiter) GetLimiter(key string) *rate.Limiter {
	now := l.now()

	l.mu.RLock()
	e, exists := l.entries[key]
	l.mu.RUnlock()

	if exists {
		l.touch(e, now)
		return e.limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e, exists = l.entries[key]; exists {
		e.lastSeen = now
		return e.limiter
	}

	e = &entry{
		limiter:  rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.BurstSize),
		lastSeen: now,
	}
	l.entries[key] = e
	return e.limiter
}

func (l *KeyedLimiter) touch(e *entry, now time.Time) {
	l.mu.Lock()
	e.lastSeen = now
	l.mu.Unlock()
}

// SetLimit overrides the bucket for a single key.
func (l *KeyedLimiter) SetLimit(key string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[key] = &entry{
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		lastSeen: l.now(),
	}
}

func (l *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return l.GetLimiter(key).Wait(ctx)
}

func (l *KeyedLimiter) Allow(key string) bool {
	return l.GetLimiter(key).Allow()
}

// Prune drops buckets not used for maxIdle and returns how many were
// removed.
func (l *KeyedLimiter) Prune(maxIdle time.Duration) int {
	cutoff := l.now().Add(-maxIdle)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

func (l *KeyedLimiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// RunPruner calls Prune every interval until ctx is done.
func (l *KeyedLimiter) RunPruner(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Prune(maxIdle)
		}
	}
}
