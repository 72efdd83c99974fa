// file: ratelimit/limiter_test.go
package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests move time by hand.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(1700000000, 0)} }

func TestAllowWithinLimit(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiterAt(clock.Now)

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("apply", "PES1UG25CS001", 5, Window)
		assert.True(t, ok, "call %d should be allowed", i+1)
	}
}

func TestRejectOverLimitWithRetryAfter(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiterAt(clock.Now)

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("apply", "PES1UG25CS001", 5, Window)
		assert.True(t, ok)
	}

	clock.Advance(20 * time.Second)
	ok, retryAfter := l.Allow("apply", "PES1UG25CS001", 5, Window)
	assert.False(t, ok, "6th call inside the window must be rejected")
	assert.Equal(t, 40*time.Second, retryAfter, "retry-after is the remaining window")
}

func TestWindowResets(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiterAt(clock.Now)

	for i := 0; i < 5; i++ {
		l.Allow("apply", "PES1UG25CS001", 5, Window)
	}
	ok, _ := l.Allow("apply", "PES1UG25CS001", 5, Window)
	assert.False(t, ok)

	// once the window has fully elapsed the count starts over at 1
	clock.Advance(Window + time.Second)
	ok, _ = l.Allow("apply", "PES1UG25CS001", 5, Window)
	assert.True(t, ok)
	ok, _ = l.Allow("apply", "PES1UG25CS001", 5, Window)
	assert.True(t, ok)
}

func TestKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiterAt(clock.Now)

	for i := 0; i < 5; i++ {
		l.Allow("apply", "PES1UG25CS001", 5, Window)
	}
	ok, _ := l.Allow("apply", "PES1UG25CS001", 5, Window)
	assert.False(t, ok)

	// a different subject and a different action are untouched
	ok, _ = l.Allow("apply", "PES1UG25CS002", 5, Window)
	assert.True(t, ok)
	ok, _ = l.Allow("score", "PES1UG25CS001", 10, Window)
	assert.True(t, ok)
}

func TestSweepDropsExpiredEntries(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiterAt(clock.Now)

	l.Allow("apply", "PES1UG25CS001", 5, Window)
	l.Allow("apply", "PES1UG25CS002", 5, Window)
	assert.Len(t, l.entries, 2)

	// past the sweep interval, the next call cleans out dead windows
	clock.Advance(sweepInterval + time.Second)
	l.Allow("apply", "PES1UG25CS003", 5, Window)
	assert.Len(t, l.entries, 1, "only the fresh entry should remain")
}

func TestReset(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiterAt(clock.Now)

	for i := 0; i < 5; i++ {
		l.Allow("apply", "PES1UG25CS001", 5, Window)
	}
	l.Reset()
	ok, _ := l.Allow("apply", "PES1UG25CS001", 5, Window)
	assert.True(t, ok)
}
