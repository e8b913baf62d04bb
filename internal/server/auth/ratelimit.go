package auth

import (
	"sync"
	"time"
)

// LoginLimiter throttles login attempts per client key (normally the client
// network address). It keeps the timestamps of recent failures and locks a
// key out once maxAttempts failures land inside the rolling window.
//
// The state is process-wide and shared by every login attempt, so all access
// happens under one mutex. Entries are pruned lazily on each check and the
// whole key is dropped on a successful login, which bounds each key's queue
// to the window.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewLoginLimiter creates a limiter allowing maxAttempts failures per window.
// The now func is injectable for deterministic tests; pass nil for time.Now.
func NewLoginLimiter(maxAttempts int, window time.Duration, now func() time.Time) *LoginLimiter {
	if now == nil {
		now = time.Now
	}
	return &LoginLimiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         now,
	}
}

// Check prunes expired failures for key and reports whether another attempt
// is allowed. When the key is locked out it returns the remaining wait until
// the oldest recorded failure leaves the window; a locked-out check records
// nothing and changes no state.
func (l *LoginLimiter) Check(key string) (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(key, now)

	if len(recent) >= l.maxAttempts {
		retryAfter := l.window - now.Sub(recent[0])
		return retryAfter, false
	}

	return 0, true
}

// RecordFailure appends a failed attempt for key at the current time.
func (l *LoginLimiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.attempts[key] = append(l.prune(key, now), now)
}

// Reset clears every recorded failure for key, returning it to a clean state.
// Called on successful login.
func (l *LoginLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, key)
}

// prune drops timestamps older than the window. Caller must hold the mutex.
func (l *LoginLimiter) prune(key string, now time.Time) []time.Time {
	recent := l.attempts[key][:0]
	for _, t := range l.attempts[key] {
		if now.Sub(t) < l.window {
			recent = append(recent, t)
		}
	}
	if len(recent) == 0 {
		delete(l.attempts, key)
		return nil
	}
	l.attempts[key] = recent
	return recent
}
