package dedup

import (
	"context"
	"sync"
	"time"

	"obedio-core/internal/clock"
)

const DefaultWindow = 500 * time.Millisecond

// Window suppresses repeats of a key seen less than the window ago.
type Window struct {
	clock  clock.Clock
	window time.Duration

	mu        sync.Mutex
	seen      map[string]time.Time
	lastSweep time.Time
}

func New(c clock.Clock, window time.Duration) *Window {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Window{
		clock:     c,
		window:    window,
		seen:      make(map[string]time.Time),
		lastSweep: c.Now(),
	}
}

// Seen reports whether key was already recorded inside the window. A key
// that is not a repeat is recorded as of now.
func (w *Window) Seen(_ context.Context, key string) (bool, error) {
	now := w.clock.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	if now.Sub(w.lastSweep) >= w.window {
		w.sweep(now)
	}

	if at, ok := w.seen[key]; ok && now.Sub(at) < w.window {
		return true, nil
	}
	w.seen[key] = now
	return false, nil
}

func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.seen)
}

func (w *Window) sweep(now time.Time) {
	for key, at := range w.seen {
		if now.Sub(at) >= w.window {
			delete(w.seen, key)
		}
	}
	w.lastSweep = now
}
