package metadata

import (
	"sync"
	"time"
)

// Debouncer collapses rapid successive triggers into a single call: each
// Trigger cancels any pending timer and re-arms it with the latest
// function, which fires once after the full delay passes with no further
// triggers.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	fn     func()
	closed bool
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period, replacing any
// previously scheduled function. Ignored after Close.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.fn = fn
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Stop cancels any pending call. The debouncer stays usable; a later
// Trigger re-arms it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}

// Close cancels any pending call and rejects all future triggers. Used
// on view teardown: a fetch still in flight may try to schedule a
// write-back after the user has moved on, and that trigger must not
// re-arm the timer.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
}

// Flush runs any pending call immediately instead of waiting out the
// delay.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	timer := d.timer
	d.mu.Unlock()

	if timer != nil && timer.Stop() {
		d.fire()
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
