package google

import (
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskflow/pkg/colors"
	"github.com/harrisonrobin/taskflow/pkg/task"
)

// taskIDProperty is the private extended property that ties a calendar
// event back to its task.
const taskIDProperty = "taskflow_id"

// eventDuration is the block a mirrored task occupies on the calendar,
// ending at the due instant.
const eventDuration = 30 * time.Minute

// ConvertTaskToEvent maps a due-dated task onto a calendar event. The
// event ends at the due instant; completed tasks are prefixed with a
// check mark and overdue tasks with an exclamation mark.
func ConvertTaskToEvent(t *task.Task, now time.Time) (*calendar.Event, error) {
	if t == nil {
		return nil, fmt.Errorf("could not convert nil task")
	}
	due, ok := t.DueAt()
	if !ok {
		return nil, fmt.Errorf("task has no due date: %s", t.ID)
	}

	prefix := ""
	if t.Completed {
		prefix = "✓"
	} else if t.IsOverdue(now) {
		prefix = "!"
	}
	summary := t.Title
	if prefix != "" {
		summary = fmt.Sprintf("%s %s", prefix, t.Title)
	}

	colorID := "1"
	cache, err := colors.NewColorCache()
	if err == nil {
		colorID = cache.GetColorID(t.Category)
		if err := cache.Save(); err != nil {
			log.Printf("Warning: could not save color cache: %v", err)
		}
	} else {
		log.Printf("Warning: could not load color cache: %v", err)
	}

	var desc strings.Builder
	if t.Category != "" {
		desc.WriteString(fmt.Sprintf("#%s\n\n", t.Category))
	}
	desc.WriteString(fmt.Sprintf("Priority: %s\n", t.Priority))
	if t.Completed {
		desc.WriteString("Status: completed\n")
	} else {
		desc.WriteString(fmt.Sprintf("Status: %s\n", t.DueStatusAt(now)))
	}
	desc.WriteString(fmt.Sprintf("ID: %s\n", t.ID))
	if t.Description != "" {
		desc.WriteString(fmt.Sprintf("\nNotes:\n‣ %s\n", t.Description))
	}

	start := due.Add(-eventDuration)
	event := &calendar.Event{
		Summary: summary,
		ColorId: colorID,
		Start: &calendar.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: due.UTC().Format(time.RFC3339),
		},
		Description: desc.String(),
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				taskIDProperty: t.ID,
			},
		},
	}
	return event, nil
}

// EventNeedsUpdate returns a patch event when the mirrored fields of
// the existing event differ from the freshly converted target, or nil
// when the event is already current.
func EventNeedsUpdate(existing, target *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		needsUpdate = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		needsUpdate = true
	}
	if existing.ColorId != target.ColorId {
		patch.ColorId = target.ColorId
		needsUpdate = true
	}

	existingStart, err := time.Parse(time.RFC3339, existing.Start.DateTime)
	if err != nil {
		return nil, err
	}
	targetStart, err := time.Parse(time.RFC3339, target.Start.DateTime)
	if err != nil {
		return nil, err
	}
	existingEnd, err := time.Parse(time.RFC3339, existing.End.DateTime)
	if err != nil {
		return nil, err
	}
	targetEnd, err := time.Parse(time.RFC3339, target.End.DateTime)
	if err != nil {
		return nil, err
	}
	if !existingStart.Equal(targetStart) || !existingEnd.Equal(targetEnd) {
		patch.Start = target.Start
		patch.End = target.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}
