package performance

import (
	"sync"
	"time"
)

// debouncer coalesces rapid successive triggers per key into a single
// callback invocation once the quiet window elapses. Used to batch bursts of
// ledger-change notifications so reconciliation is not recomputed per
// transaction.
type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[int]*time.Timer
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		pending: make(map[int]*time.Timer),
	}
}

// trigger schedules fn to run after the quiet window. Triggering the same
// key again before the window elapses restarts the window; only the latest
// fn runs.
func (d *debouncer) trigger(key int, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[key]; ok {
		timer.Stop()
	}
	d.pending[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.pending, key)
		d.mu.Unlock()
		fn()
	})
}

// stop cancels all pending callbacks.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, timer := range d.pending {
		timer.Stop()
		delete(d.pending, key)
	}
}
