package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultLimiterIdle is how long a key may go unseen before its bucket is
// forgotten.
const DefaultLimiterIdle = 10 * time.Minute

type keyBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyLimiter rate limits requests per key using token buckets, so one noisy
// caller cannot starve the others. Buckets unseen for the idle timeout are
// dropped; keys supplied by callers therefore cost memory only while active.
type KeyLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*keyBucket
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// KeyLimiterOption configures a KeyLimiter.
type KeyLimiterOption func(*KeyLimiter)

// WithIdleTimeout overrides DefaultLimiterIdle.
func WithIdleTimeout(d time.Duration) KeyLimiterOption {
	return func(l *KeyLimiter) {
		l.idle = d
	}
}

// NewKeyLimiter creates a KeyLimiter allowing perMinute requests per key on
// average, with bursts of up to burst requests.
func NewKeyLimiter(perMinute float64, burst int, opts ...KeyLimiterOption) *KeyLimiter {
	if burst < 1 {
		burst = 1
	}
	l := &KeyLimiter{
		buckets: make(map[string]*keyBucket),
		limit:   rate.Limit(perMinute / 60),
		burst:   burst,
		idle:    DefaultLimiterIdle,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l
}

// Allow reports whether a request for key may proceed now.
func (l *KeyLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &keyBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys.
func (l *KeyLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets. Must be called with mu held.
func (l *KeyLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idle {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
