// Package keytracker turns key press events into held and just-pressed state
// for frontends whose input source has no key release events.
package keytracker

import "time"

// DefaultHold covers the gap between a terminal's first key event and its
// autorepeat events.
const DefaultHold = 550 * time.Millisecond

// Tracker remembers when each key was last reported. A key counts as held
// until hold has passed without a new report.
type Tracker[K comparable] struct {
	hold    time.Duration
	seen    map[K]time.Time
	pending map[K]bool
}

func New[K comparable](hold time.Duration) *Tracker[K] {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Tracker[K]{
		hold:    hold,
		seen:    make(map[K]time.Time),
		pending: make(map[K]bool),
	}
}

// Press records a key event at t. A press of a key that was not held also
// queues a just-pressed edge.
func (k *Tracker[K]) Press(key K, t time.Time) {
	if !k.Held(key, t) {
		k.pending[key] = true
	}
	k.seen[key] = t
}

// Held reports whether key was reported within the hold window before now.
func (k *Tracker[K]) Held(key K, now time.Time) bool {
	last, ok := k.seen[key]
	return ok && now.Sub(last) < k.hold
}

// IsKeyJustPressed returns true once per press edge and clears it.
func (k *Tracker[K]) IsKeyJustPressed(key K) bool {
	if !k.pending[key] {
		return false
	}
	delete(k.pending, key)
	return true
}

// Release forgets key immediately.
func (k *Tracker[K]) Release(key K) {
	delete(k.seen, key)
	delete(k.pending, key)
}

// Reset forgets every key.
func (k *Tracker[K]) Reset() {
	clear(k.seen)
	clear(k.pending)
}
