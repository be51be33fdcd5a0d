// Package store implements the task collection engine: filtering,
// sorting, statistics, persistence and notification scheduling.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrisonrobin/taskflow/pkg/task"
)

// ErrNotFound is returned when an operation references a task id that
// is not in the collection. This is a routine condition (e.g. a stale
// reference after a concurrent delete), not a failure.
var ErrNotFound = errors.New("task not found")

// Storage persists the full ordered collection. The in-memory state is
// authoritative; a save failure is surfaced but never rolls back a
// mutation.
type Storage interface {
	Load() ([]task.Snapshot, error)
	Save([]task.Snapshot) error
}

// Severity classifies an alert for the notification sink.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notifier is the alert sink supplied by the UI collaborator.
type Notifier interface {
	Alert(message string, severity Severity)
}

// Scheduler defers a callback. Scheduled alerts are fire-and-forget:
// the callback re-looks-up its task by id and skips silently if the
// task has been deleted in the interim.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// SortMode selects the view-time ordering of the filtered list.
type SortMode string

const (
	SortByPriority SortMode = "priority"
	SortByCreated  SortMode = "createdDate"
	SortByDueDate  SortMode = "dueDate"
)

// FilterField names one criterion of the conjunctive filter set.
type FilterField string

const (
	FilterCategory FilterField = "category"
	FilterPriority FilterField = "priority"
	FilterStatus   FilterField = "status"
	FilterSearch   FilterField = "searchTerm"
)

// FilterAll is the unconstrained value for category/priority/status.
const FilterAll = "all"

// Filter is the current conjunctive filter criteria.
type Filter struct {
	Category   string
	Priority   string
	Status     string
	SearchTerm string
}

// Stats summarizes the collection irrespective of the current filter.
type Stats struct {
	Total        int
	Active       int
	Completed    int
	Overdue      int
	HighPriority int
}

// Input carries the caller-validated fields for a new task.
type Input struct {
	Title       string
	Description string
	Priority    task.Priority
	Category    string
	DueDate     *task.DueDate
	DueTime     *task.DayTime
}

// Notification delays. The attention alerts trail the immediate
// acknowledgment so the two don't visually collide; due-date alerts
// trail slightly more.
const (
	attentionDelay = 1500 * time.Millisecond
	dueAlertDelay  = 2 * time.Second
)

// Store owns the ordered task collection. Insertion order is the
// canonical storage order; sorting is a view-time projection. All
// mutations persist via the storage collaborator and emit alerts via
// the notifier. The mutex exists because scheduled alert callbacks and
// the overdue loop interleave with caller-triggered mutations.
type Store struct {
	mu        sync.Mutex
	tasks     []*task.Task
	filter    Filter
	sortMode  SortMode
	editingID string

	// lastCheck is the mark of the previous overdue scan: a task whose
	// due instant falls in (lastCheck, now] has just crossed into
	// overdue and alerts exactly once.
	lastCheck time.Time

	storage  Storage
	notifier Notifier
	sched    Scheduler
	now      func() time.Time
}

// New builds a store from its collaborators and loads the persisted
// collection. Restored tasks keep their original identity and
// timestamps. A nil clock defaults to time.Now.
func New(storage Storage, notifier Notifier, sched Scheduler, now func() time.Time) (*Store, error) {
	if now == nil {
		now = time.Now
	}
	s := &Store{
		filter:   Filter{Category: FilterAll, Priority: FilterAll, Status: FilterAll},
		sortMode: SortByPriority,
		storage:  storage,
		notifier: notifier,
		sched:    sched,
		now:      now,
	}
	s.lastCheck = now()

	snaps, err := storage.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load task collection: %w", err)
	}
	for _, snap := range snaps {
		s.tasks = append(s.tasks, task.Restore(snap))
	}
	return s, nil
}

// Create constructs and appends a new task, persists the collection
// and emits the creation acknowledgment. When notify is false the
// delayed attention/due alerts are suppressed (used for bulk seeding);
// persistence always happens.
func (s *Store) Create(in Input, notify bool) (*task.Task, error) {
	s.mu.Lock()
	now := s.now()
	t := task.New(uuid.NewString(), in.Title, in.Description, in.Priority, in.Category, now)
	t.DueDate = in.DueDate
	t.DueTime = in.DueTime
	s.tasks = append(s.tasks, t)
	err := s.persistLocked()
	s.mu.Unlock()

	s.alert(fmt.Sprintf("Task %q created successfully!", t.Title), SeveritySuccess)
	if notify {
		if t.Priority == task.PriorityHigh {
			s.scheduleFor(t.ID, attentionDelay, func(t *task.Task) (string, Severity) {
				return fmt.Sprintf("⚠️ High priority task %q needs attention!", t.Title), SeverityWarning
			})
		}
		s.scheduleDueAlert(t, now)
	}
	return t, err
}

// Update applies a partial patch to the task with the given id,
// persists and schedules transition alerts by comparing the fields
// immediately before and after the mutation.
func (s *Store) Update(id string, p task.Patch) (*task.Task, error) {
	s.mu.Lock()
	t := s.findLocked(id)
	if t == nil {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	now := s.now()
	prevPriority := t.Priority
	hadDue := t.DueDate != nil
	t.Apply(p, now)
	err := s.persistLocked()
	s.mu.Unlock()

	s.alert(fmt.Sprintf("Task %q updated successfully!", t.Title), SeveritySuccess)
	if prevPriority != task.PriorityHigh && t.Priority == task.PriorityHigh {
		s.scheduleFor(t.ID, attentionDelay, func(t *task.Task) (string, Severity) {
			return fmt.Sprintf("🔥 Task %q is now high priority!", t.Title), SeverityWarning
		})
	}
	if !hadDue && t.DueDate != nil {
		s.scheduleDueAlert(t, now)
	}
	return t, err
}

// Delete removes the task with the given id, persists and reports
// whether a task was actually removed.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	idx := -1
	for i, t := range s.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return false, nil
	}
	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	err := s.persistLocked()
	s.mu.Unlock()

	s.alert(fmt.Sprintf("Task %q deleted successfully!", removed.Title), SeveritySuccess)
	return true, err
}

// ToggleCompletion flips the completion state of the task with the
// given id, persists and schedules the completion-transition alerts.
func (s *Store) ToggleCompletion(id string) (*task.Task, error) {
	s.mu.Lock()
	t := s.findLocked(id)
	if t == nil {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	now := s.now()
	wasOverdue := t.IsOverdue(now)
	t.ToggleCompletion(now)
	err := s.persistLocked()
	s.mu.Unlock()

	if t.Completed {
		s.alert(fmt.Sprintf("Task %q completed!", t.Title), SeveritySuccess)
		if t.Priority == task.PriorityHigh {
			s.scheduleFor(t.ID, attentionDelay, func(t *task.Task) (string, Severity) {
				return fmt.Sprintf("🎉 High priority task %q completed! Excellent work!", t.Title), SeveritySuccess
			})
		}
		if wasOverdue {
			s.scheduleFor(t.ID, attentionDelay, func(t *task.Task) (string, Severity) {
				return fmt.Sprintf("Overdue task %q completed!", t.Title), SeveritySuccess
			})
		}
	} else {
		s.alert(fmt.Sprintf("Task %q reactivated!", t.Title), SeveritySuccess)
		if t.Priority == task.PriorityHigh {
			s.scheduleFor(t.ID, attentionDelay, func(t *task.Task) (string, Severity) {
				return fmt.Sprintf("⚠️ High priority task %q is active again!", t.Title), SeverityWarning
			})
		}
		if t.IsOverdue(now) {
			s.scheduleFor(t.ID, dueAlertDelay, func(t *task.Task) (string, Severity) {
				return fmt.Sprintf("⏰ Task %q is overdue!", t.Title), SeverityWarning
			})
		}
	}
	return t, err
}

// ClearCompleted removes every completed task in one step and persists
// once. Zero removals is a valid outcome, reported distinctly.
func (s *Store) ClearCompleted() (int, error) {
	s.mu.Lock()
	kept := make([]*task.Task, 0, len(s.tasks))
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	err := s.persistLocked()
	s.mu.Unlock()

	if removed > 0 {
		s.alert(fmt.Sprintf("%d completed task(s) cleared!", removed), SeveritySuccess)
	} else {
		s.alert("No completed tasks to clear!", SeverityInfo)
	}
	return removed, err
}

// FindByID returns the task with the given id, or nil.
func (s *Store) FindByID(id string) *task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

// SetFilter updates one criterion of the filter set.
func (s *Store) SetFilter(field FilterField, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case FilterCategory:
		s.filter.Category = value
	case FilterPriority:
		s.filter.Priority = value
	case FilterStatus:
		s.filter.Status = value
	case FilterSearch:
		s.filter.SearchTerm = value
	}
}

// CurrentFilter returns the active filter criteria.
func (s *Store) CurrentFilter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetSortMode selects the view-time ordering.
func (s *Store) SetSortMode(mode SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortMode = mode
}

// StartEditing marks the task the caller is editing. The mark gates
// create-vs-update routing in Submit.
func (s *Store) StartEditing(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLocked(id) == nil {
		return ErrNotFound
	}
	s.editingID = id
	return nil
}

// StopEditing clears the editing mark.
func (s *Store) StopEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
}

// EditingID returns the id of the task currently being edited, or "".
func (s *Store) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// Submit routes collected form input: an active editing mark updates
// that task (and clears the mark), otherwise a new task is created.
func (s *Store) Submit(in Input) (*task.Task, error) {
	s.mu.Lock()
	id := s.editingID
	s.editingID = ""
	s.mu.Unlock()

	if id != "" {
		p := task.Patch{
			Title:       &in.Title,
			Description: &in.Description,
			Priority:    &in.Priority,
			Category:    &in.Category,
			DueDate:     in.DueDate,
			DueTime:     in.DueTime,
		}
		return s.Update(id, p)
	}
	return s.Create(in, true)
}

// FilteredList applies the filter criteria in order (category,
// priority, status, search) and sorts the survivors per the current
// sort mode. The stored order is never mutated; sorting operates on a
// copy and is stable for equal keys.
func (s *Store) FilteredList() []*task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	filtered := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if s.filter.Category != "" && s.filter.Category != FilterAll && t.Category != s.filter.Category {
			continue
		}
		if s.filter.Priority != "" && s.filter.Priority != FilterAll && string(t.Priority) != s.filter.Priority {
			continue
		}
		switch s.filter.Status {
		case "", FilterAll:
		case "completed":
			if !t.Completed {
				continue
			}
		case "pending":
			if t.Completed {
				continue
			}
		case "overdue":
			if !t.IsOverdue(now) {
				continue
			}
		}
		if s.filter.SearchTerm != "" && !t.SearchMatch(s.filter.SearchTerm) {
			continue
		}
		filtered = append(filtered, t)
	}

	s.sortTasks(filtered)
	return filtered
}

func (s *Store) sortTasks(tasks []*task.Task) {
	switch s.sortMode {
	case SortByPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			if tasks[i].Priority.Rank() != tasks[j].Priority.Rank() {
				return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
			}
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	case SortByCreated:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	case SortByDueDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			di, iOK := tasks[i].DueAt()
			dj, jOK := tasks[j].DueAt()
			switch {
			case iOK && jOK:
				return di.Before(dj)
			case iOK:
				return true
			case jOK:
				return false
			default:
				return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
			}
		})
	}
}

// Statistics summarizes the whole collection, ignoring the filter.
func (s *Store) Statistics() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	stats := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
			continue
		}
		stats.Active++
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		if t.Priority == task.PriorityHigh {
			stats.HighPriority++
		}
	}
	return stats
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Snapshots returns the persisted form of every task in storage order.
func (s *Store) Snapshots() []task.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotsLocked()
}

// Reload replaces the in-memory collection with the persisted one.
// Used when the storage file changes underneath a long-running watch.
func (s *Store) Reload() error {
	snaps, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("failed to reload task collection: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = s.tasks[:0]
	for _, snap := range snaps {
		s.tasks = append(s.tasks, task.Restore(snap))
	}
	return nil
}

func (s *Store) findLocked(id string) *task.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) snapshotsLocked() []task.Snapshot {
	snaps := make([]task.Snapshot, 0, len(s.tasks))
	for _, t := range s.tasks {
		snaps = append(snaps, t.Snapshot())
	}
	return snaps
}

func (s *Store) persistLocked() error {
	if err := s.storage.Save(s.snapshotsLocked()); err != nil {
		return fmt.Errorf("failed to persist task collection: %w", err)
	}
	return nil
}

func (s *Store) alert(message string, severity Severity) {
	if s.notifier != nil {
		s.notifier.Alert(message, severity)
	}
}

// scheduleFor defers an alert for the task with the given id. The
// callback re-resolves the id at fire time so a task deleted in the
// interim is skipped silently.
func (s *Store) scheduleFor(id string, delay time.Duration, build func(*task.Task) (string, Severity)) {
	if s.sched == nil {
		return
	}
	s.sched.After(delay, func() {
		s.mu.Lock()
		t := s.findLocked(id)
		s.mu.Unlock()
		if t == nil {
			return
		}
		msg, sev := build(t)
		s.alert(msg, sev)
	})
}

func (s *Store) scheduleDueAlert(t *task.Task, now time.Time) {
	switch {
	case t.IsDueToday(now):
		s.scheduleFor(t.ID, dueAlertDelay, func(t *task.Task) (string, Severity) {
			return fmt.Sprintf("📅 Task %q is due today!", t.Title), SeverityWarning
		})
	case t.IsDueSoon(now):
		s.scheduleFor(t.ID, dueAlertDelay, func(t *task.Task) (string, Severity) {
			return fmt.Sprintf("📅 Task %q is due soon!", t.Title), SeverityWarning
		})
	}
}
