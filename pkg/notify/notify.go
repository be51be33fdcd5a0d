// Package notify provides the alert sink and scheduler used by the
// CLI: console output and real timers with a drain for one-shot runs.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/harrisonrobin/taskflow/pkg/store"
)

// Console writes alerts to a stream, one line per alert, tagged with
// the severity.
type Console struct {
	Out io.Writer
}

// NewConsole returns a console notifier writing to stdout.
func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

// Alert implements store.Notifier.
func (c *Console) Alert(message string, severity store.Severity) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "[%s] %s\n", severity, message)
}

// Timers schedules callbacks with real wall-clock timers. A one-shot
// command can Flush before exiting so pending alerts still print
// instead of being lost with the process.
type Timers struct {
	mu      sync.Mutex
	pending []*pendingTimer
}

type pendingTimer struct {
	timer *time.Timer
	fn    func()
}

// NewTimers returns an empty timer scheduler.
func NewTimers() *Timers {
	return &Timers{}
}

// After implements store.Scheduler.
func (t *Timers) After(d time.Duration, fn func()) {
	p := &pendingTimer{fn: fn}
	p.timer = time.AfterFunc(d, fn)
	t.mu.Lock()
	t.pending = append(t.pending, p)
	t.mu.Unlock()
}

// Flush runs every callback that has not fired yet and forgets the
// rest. Safe to call more than once.
func (t *Timers) Flush() {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()

	for _, p := range pending {
		if p.timer.Stop() {
			p.fn()
		}
	}
}
