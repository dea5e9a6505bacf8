package metadata_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/blackwell-systems/bookctl/internal/metadata"
)

func TestDebouncer_LastTriggerWins(t *testing.T) {
	d := metadata.NewDebouncer(30 * time.Millisecond)

	var calls int32
	var got atomic.Value
	for _, text := range []string{"first", "second", "third"} {
		text := text
		d.Trigger(func() {
			atomic.AddInt32(&calls, 1)
			got.Store(text)
		})
	}

	time.Sleep(100 * time.Millisecond)

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fired %d times, want exactly 1", n)
	}
	if got.Load() != "third" {
		t.Errorf("fired with %v, want the last trigger's arguments", got.Load())
	}
}

func TestDebouncer_EachTriggerRestartsTimer(t *testing.T) {
	d := metadata.NewDebouncer(50 * time.Millisecond)

	var calls int32
	fn := func() { atomic.AddInt32(&calls, 1) }

	// Keep triggering inside the quiet window; nothing may fire until the
	// full delay elapses after the final trigger.
	for i := 0; i < 4; i++ {
		d.Trigger(fn)
		time.Sleep(20 * time.Millisecond)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("fired %d times during the quiet window", n)
	}

	time.Sleep(100 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fired %d times, want 1", n)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := metadata.NewDebouncer(20 * time.Millisecond)

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("fired %d times after Stop", n)
	}
	if d.Pending() {
		t.Error("Pending() = true after Stop")
	}
}

func TestDebouncer_StopLeavesDebouncerUsable(t *testing.T) {
	d := metadata.NewDebouncer(20 * time.Millisecond)

	var calls int32
	fn := func() { atomic.AddInt32(&calls, 1) }

	d.Trigger(fn)
	d.Stop()
	d.Trigger(fn)

	time.Sleep(60 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fired %d times after Stop then re-Trigger, want 1", n)
	}
}

func TestDebouncer_TriggerAfterCloseIsIgnored(t *testing.T) {
	d := metadata.NewDebouncer(20 * time.Millisecond)
	d.Close()

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })

	if d.Pending() {
		t.Error("Pending() = true after a post-Close trigger")
	}
	time.Sleep(60 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("fired %d times after Close", n)
	}
}

func TestDebouncer_CloseCancelsPending(t *testing.T) {
	d := metadata.NewDebouncer(20 * time.Millisecond)

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Close()

	time.Sleep(60 * time.Millisecond)
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("fired %d times after Close", n)
	}
}

func TestDebouncer_Flush(t *testing.T) {
	d := metadata.NewDebouncer(time.Hour)

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Flush()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fired %d times after Flush, want 1", n)
	}
	if d.Pending() {
		t.Error("Pending() = true after Flush")
	}

	// Flushing with nothing pending is a no-op.
	d.Flush()
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("fired %d times after second Flush, want 1", n)
	}
}
