package task

import "time"

// Snapshot is the persisted form of a task. The field set is the full
// record including identity and timestamps, so a load/save round trip
// reconstructs the task exactly, never regenerating IDs or timestamps.
type Snapshot struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Category    string    `json:"category" yaml:"category"`
	Completed   bool      `json:"isCompleted" yaml:"completed"`
	CreatedAt   time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updated_at"`
	DueDate     *DueDate  `json:"dueDate,omitempty" yaml:"due_date,omitempty"`
	DueTime     *DayTime  `json:"dueTime,omitempty" yaml:"due_time,omitempty"`
}

// Snapshot returns the persisted form of the task.
func (t *Task) Snapshot() Snapshot {
	return Snapshot{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Category:    t.Category,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DueDate:     t.DueDate,
		DueTime:     t.DueTime,
	}
}

// Restore rebuilds a task from its persisted form, preserving the
// original identity, timestamps and completion state.
func Restore(s Snapshot) *Task {
	t := &Task{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Priority:    s.Priority,
		Category:    s.Category,
		Completed:   s.Completed,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		DueDate:     s.DueDate,
		DueTime:     s.DueTime,
	}
	if t.DueDate != nil && t.DueDate.IsZero() {
		t.DueDate = nil
	}
	return t
}
