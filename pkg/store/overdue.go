package store

import (
	"context"
	"fmt"
	"time"

	"github.com/harrisonrobin/taskflow/pkg/task"
)

const (
	// overdueCheckInterval is the cadence of the periodic re-evaluation
	// of time-dependent state.
	overdueCheckInterval = time.Minute

	// overdueEarlyCheck runs one check shortly after startup so a task
	// that went overdue while the process was down alerts promptly.
	overdueEarlyCheck = 5 * time.Second
)

// CheckNewlyOverdue scans the non-completed, due-dated tasks for ones
// whose due instant crossed into the past since the previous check,
// alerts once per crossing and advances the check mark. Tracking the
// mark explicitly keeps the scan race-free even when a check is
// delayed or skipped: a task alerts exactly once per crossing.
func (s *Store) CheckNewlyOverdue() []*task.Task {
	s.mu.Lock()
	now := s.now()
	since := s.lastCheck
	s.lastCheck = now

	var crossed []*task.Task
	for _, t := range s.tasks {
		if t.Completed {
			continue
		}
		due, ok := t.DueAt()
		if !ok {
			continue
		}
		if due.After(since) && !due.After(now) {
			crossed = append(crossed, t)
		}
	}
	s.mu.Unlock()

	for _, t := range crossed {
		s.alert(fmt.Sprintf("⏰ Task %q is now overdue!", t.Title), SeverityWarning)
	}
	return crossed
}

// RunOverdueLoop re-evaluates overdue state for the lifetime of the
// store: one early check after startup, then one per interval. It
// returns when the context is cancelled.
func (s *Store) RunOverdueLoop(ctx context.Context) {
	early := time.NewTimer(overdueEarlyCheck)
	defer early.Stop()
	ticker := time.NewTicker(overdueCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-early.C:
			s.CheckNewlyOverdue()
		case <-ticker.C:
			s.CheckNewlyOverdue()
		}
	}
}
