// Package ratelimit guards mutating operations against abuse.
// File: ratelimit/limiter.go
package ratelimit

import (
	"sync"
	"time"
)

// Per-action limits, all over a 60 second window.
const (
	Window = 60 * time.Second

	ApplyLimit       = 5  // application creation per user
	ScoreLimit       = 10 // score updates per coordinator
	InterviewLimit   = 10 // interview-done marks per coordinator
	DecisionLimit    = 10 // accept/reject per coordinator
	AdminActionLimit = 3  // freeze/unfreeze/publish per admin
	AuthLimit        = 20 // auth route hits per client IP
)

// Limiter decides whether a subject may perform an action right now.
// Implementations must be safe for concurrent use.
type Limiter interface {
	// Allow reports whether the call is within the limit. When it is not,
	// retryAfter says how long until the current window expires.
	Allow(action, subject string, max int, window time.Duration) (ok bool, retryAfter time.Duration)
}

// sweepInterval bounds how often expired entries are dropped. The sweep
// runs opportunistically inside Allow, not on its own goroutine.
const sweepInterval = 5 * time.Minute

type entry struct {
	count       int
	windowStart time.Time
}

// MemoryLimiter is a fixed-window counter keyed by action:subject. It is
// process-local: counts are not shared across instances. Deployments that
// run more than one replica should use the Redis limiter instead.
type MemoryLimiter struct {
	mu        sync.Mutex
	entries   map[string]entry
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiter returns a limiter using the wall clock.
func NewMemoryLimiter() *MemoryLimiter {
	return NewMemoryLimiterAt(time.Now)
}

// NewMemoryLimiterAt returns a limiter with an injectable clock for tests.
func NewMemoryLimiterAt(now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		entries:   make(map[string]entry),
		lastSweep: now(),
		now:       now,
	}
}

// Allow implements Limiter with fixed-window semantics: the first call
// opens a window, calls within it increment the count, and the window
// resets once it has fully elapsed.
func (l *MemoryLimiter) Allow(action, subject string, max int, window time.Duration) (bool, time.Duration) {
	key := action + ":" + subject
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now, window)

	e, ok := l.entries[key]
	if !ok || now.Sub(e.windowStart) > window {
		l.entries[key] = entry{count: 1, windowStart: now}
		return true, 0
	}

	if e.count >= max {
		remaining := window - now.Sub(e.windowStart)
		if remaining < 0 {
			remaining = 0
		}
		return false, remaining
	}

	e.count++
	l.entries[key] = e
	return true, 0
}

// Reset drops all counters. Only used from tests and admin tooling.
func (l *MemoryLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]entry)
}

// sweep drops entries whose window has expired. Caller holds l.mu.
func (l *MemoryLimiter) sweep(now time.Time, window time.Duration) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, e := range l.entries {
		if now.Sub(e.windowStart) > window {
			delete(l.entries, key)
		}
	}
}
