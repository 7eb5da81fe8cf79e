package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window admission gate shared by all outbound requests.
// Admission never blocks: a request over the limit is rejected immediately and
// the caller decides whether to back off.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time

	// now is swappable in tests.
	now func() time.Time
}

// New creates a limiter admitting at most limit requests per window.
func New(limit int, window time.Duration) *Limiter {
	return NewWithClock(limit, window, time.Now)
}

// NewWithClock creates a limiter with an injectable clock.
func NewWithClock(limit int, window time.Duration, clock func() time.Time) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		now:    clock,
	}
}

// Admit prunes timestamps older than the window, then admits the call iff the
// remaining count is below the limit, recording the admission.
func (l *Limiter) Admit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)
	if len(l.stamps) >= l.limit {
		return false
	}
	l.stamps = append(l.stamps, now)
	return true
}

// Remaining reports how many admissions are left in the current window.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(l.now())
	return l.limit - len(l.stamps)
}

// Limit returns the configured maximum per window.
func (l *Limiter) Limit() int { return l.limit }

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration { return l.window }

// prune drops timestamps at or before now-window. Caller holds the lock.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}
}
