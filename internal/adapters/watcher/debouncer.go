package watcher

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"go.trai.ch/impacted/internal/core/ports"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

// Debouncer coalesces rapid file events into batches.
// The latest kind recorded for a path wins.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]ports.ChangeKind
	timer    *time.Timer
	window   time.Duration
	callback func(batch []ports.FileEvent)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(batch []ports.FileEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]ports.ChangeKind),
		window:   window,
		callback: callback,
	}
}

// Add records an event and restarts the debounce window.
func (d *Debouncer) Add(event ports.FileEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[event.Path] = event.Kind

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire runs when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()
	batch := d.drain()
	d.timer = nil
	d.mu.Unlock()

	if len(batch) > 0 && d.callback != nil {
		go d.callback(batch)
	}
}

// Flush immediately delivers all pending events and blocks until the callback returns.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired; its batch is on its way.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	batch := d.drain()
	d.mu.Unlock()

	if len(batch) > 0 && d.callback != nil {
		d.callback(batch)
	}
}

// drain empties the pending set into a batch sorted by path. Callers hold mu.
func (d *Debouncer) drain() []ports.FileEvent {
	if len(d.pending) == 0 {
		return nil
	}
	batch := make([]ports.FileEvent, 0, len(d.pending))
	for path, kind := range d.pending {
		batch = append(batch, ports.FileEvent{Path: path, Kind: kind})
	}
	d.pending = make(map[string]ports.ChangeKind)
	slices.SortFunc(batch, func(a, b ports.FileEvent) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return batch
}
