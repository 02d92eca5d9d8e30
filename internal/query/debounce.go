package query

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay applied when a Debouncer is created without
// an explicit one.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer emits the latest value passed to Set once it has been stable
// for the configured delay. Each new value cancels the pending emission, so
// a burst of rapid changes produces exactly one emission carrying the final
// value. Stop cancels any pending emission for good.
type Debouncer[T any] struct {
	delay time.Duration
	emit  func(T)

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a Debouncer that calls emit from a timer goroutine
// once a value has settled. A non-positive delay falls back to
// [DefaultDebounce]. emit must not call back into the Debouncer.
func NewDebouncer[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer[T]{delay: delay, emit: emit}
}

// Set schedules value for emission after the delay, cancelling any pending
// emission of a previous value.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		if d.stopped {
			return
		}
		d.emit(value)
	})
}

// Stop cancels any pending emission. No emission fires after Stop returns.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
