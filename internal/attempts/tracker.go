// Package attempts tracks consecutive failed login attempts per email.
// The counts live in process memory only; a restart clears them.
package attempts

import "sync"

// Tracker is a concurrency-safe map from normalized email to the number
// of consecutive authentication failures since the last success.
type Tracker struct {
	mu     sync.Mutex
	counts map[string]int
	max    int
}

// New creates a Tracker that locks a key after max consecutive failures.
func New(max int) *Tracker {
	return &Tracker{
		counts: make(map[string]int),
		max:    max,
	}
}

// Get returns the current failure count for key (0 if never seen).
func (t *Tracker) Get(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key]
}

// Increment records one more failure for key and returns the new count.
// The count never exceeds the lockout threshold.
func (t *Tracker) Increment(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.counts[key] < t.max {
		t.counts[key]++
	}
	return t.counts[key]
}

// Reset clears the failure count for key.
func (t *Tracker) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.counts, key)
}

// Locked reports whether key has reached the lockout threshold.
func (t *Tracker) Locked(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key] >= t.max
}

// Remaining returns how many attempts are left before key is locked.
func (t *Tracker) Remaining(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.max - t.counts[key]
}
