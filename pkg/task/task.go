// Package task defines the task record and its derived due-state logic.
package task

import (
	"strings"
	"time"
)

// Priority levels for a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the numeric ordering of a priority, higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// DueStatus classifies a task's urgency relative to a point in time.
type DueStatus string

const (
	DueNone     DueStatus = "none"
	DueOverdue  DueStatus = "overdue"
	DueToday    DueStatus = "today"
	DueUpcoming DueStatus = "upcoming"
	DueNormal   DueStatus = "normal"
)

// dueSoonWindow is the look-ahead horizon for flagging upcoming deadlines.
const dueSoonWindow = 3 * 24 * time.Hour

// Task is a single task record. Identity (ID, CreatedAt) is fixed at
// construction; all other fields are mutated in place via Apply and
// ToggleCompletion, which refresh UpdatedAt. Time-dependent state
// (overdue, due-today, due-soon) is derived on demand from an explicit
// clock value and never cached.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Category    string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     *DueDate
	DueTime     *DayTime
}

// New constructs a task with a fresh identity. Callers outside the
// store should not construct tasks directly.
func New(id, title, description string, priority Priority, category string, now time.Time) *Task {
	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Patch is a partial update of the editable fields. Nil pointers leave
// the current value untouched. ClearDue removes both the due date and
// the due time.
type Patch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Category    *string
	DueDate     *DueDate
	DueTime     *DayTime
	ClearDue    bool
}

// Apply overwrites every field the patch carries and refreshes
// UpdatedAt exactly once, regardless of how many fields changed.
func (t *Task) Apply(p Patch, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.ClearDue {
		t.DueDate = nil
		t.DueTime = nil
	} else {
		if p.DueDate != nil {
			t.DueDate = p.DueDate
		}
		if p.DueTime != nil {
			t.DueTime = p.DueTime
		}
	}
	t.UpdatedAt = now
}

// ToggleCompletion flips the completion flag and refreshes UpdatedAt.
func (t *Task) ToggleCompletion(now time.Time) {
	t.Completed = !t.Completed
	t.UpdatedAt = now
}

// SearchMatch reports whether the trimmed query is a case-insensitive
// substring of the title or the description.
func (t *Task) SearchMatch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// DueAt resolves the due instant in local time. A task with a due date
// but no due time is due at end of day (23:59:59.999). A due time with
// no due date has no derivable due instant, the same as no due date.
func (t *Task) DueAt() (time.Time, bool) {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return time.Time{}, false
	}
	year, month, day := t.DueDate.Date()
	if t.DueTime != nil {
		return time.Date(year, month, day, t.DueTime.Hour, t.DueTime.Minute, 0, 0, time.Local), true
	}
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), time.Local), true
}

// IsOverdue reports whether the due instant has passed. Completed
// tasks are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := t.DueAt()
	return ok && due.Before(now)
}

// IsDueToday reports whether the due date falls on now's local
// calendar date. Completed tasks are never due today.
func (t *Task) IsDueToday(now time.Time) bool {
	if t.Completed || t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	dy, dm, dd := t.DueDate.Date()
	ny, nm, nd := now.Date()
	return dy == ny && dm == nm && dd == nd
}

// IsDueSoon reports whether the due instant is strictly in the future
// and within the due-soon window. Completed tasks are never due soon.
func (t *Task) IsDueSoon(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := t.DueAt()
	if !ok {
		return false
	}
	return due.After(now) && due.Sub(now) <= dueSoonWindow
}

// DueStatusAt derives the task's urgency class at the given instant.
// Precedence: overdue > today > upcoming > normal. Completed tasks and
// tasks without a due date are DueNone.
func (t *Task) DueStatusAt(now time.Time) DueStatus {
	if t.Completed {
		return DueNone
	}
	if _, ok := t.DueAt(); !ok {
		return DueNone
	}
	switch {
	case t.IsOverdue(now):
		return DueOverdue
	case t.IsDueToday(now):
		return DueToday
	case t.IsDueSoon(now):
		return DueUpcoming
	default:
		return DueNormal
	}
}
