package notify

import (
	"bytes"
	"testing"
	"time"

	"github.com/harrisonrobin/taskflow/pkg/store"
)

func TestConsoleAlertFormat(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}
	c.Alert("Task \"x\" created successfully!", store.SeveritySuccess)
	want := "[success] Task \"x\" created successfully!\n"
	if buf.String() != want {
		t.Errorf("Alert output = %q, want %q", buf.String(), want)
	}
}

func TestTimersFlushRunsPending(t *testing.T) {
	timers := NewTimers()
	fired := make([]int, 0, 2)
	timers.After(time.Hour, func() { fired = append(fired, 1) })
	timers.After(time.Hour, func() { fired = append(fired, 2) })

	timers.Flush()
	if len(fired) != 2 {
		t.Fatalf("expected both pending callbacks to run, got %v", fired)
	}

	// A second flush finds nothing and must not re-run callbacks.
	timers.Flush()
	if len(fired) != 2 {
		t.Errorf("flush re-ran callbacks: %v", fired)
	}
}

func TestTimersFlushSkipsAlreadyFired(t *testing.T) {
	timers := NewTimers()
	ch := make(chan struct{})
	timers.After(time.Millisecond, func() { close(ch) })

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}

	// The callback already ran; Flush must not run it again (close of
	// a closed channel would panic).
	timers.Flush()
}
