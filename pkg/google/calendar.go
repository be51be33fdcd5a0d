// Package google mirrors due-dated tasks onto a Google Calendar.
package google

import (
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskflow/pkg/index"
	"github.com/harrisonrobin/taskflow/pkg/task"
)

// CalendarClient is a Google Calendar API client scoped to one
// calendar, with a local task-id index to avoid API searches.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
}

// NewCalendarClient creates a new Google Calendar client.
func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx}
}

// SyncTask creates or patches the event mirroring a task. Tasks
// without a due date have nothing to mirror and return an error.
func (c *CalendarClient) SyncTask(t *task.Task, now time.Time) (*calendar.Event, error) {
	event, err := ConvertTaskToEvent(t, now)
	if err != nil {
		return nil, err
	}

	var existing *calendar.Event
	if c.index != nil {
		if eventID := c.index.Get(t.ID); eventID != "" {
			existing, err = c.srv.Events.Get(c.calendarID, eventID).Do()
			if err != nil {
				// Index was stale, fall back to the API search.
				existing = nil
			}
		}
	}
	if existing == nil {
		existing, err = c.GetEventByTaskID(t.ID)
		if err != nil {
			return nil, fmt.Errorf("error searching for event: %w", err)
		}
	}

	if existing != nil {
		patch, err := EventNeedsUpdate(existing, event)
		if err != nil {
			log.Printf("could not compare task with its calendar event: %v", err)
			return nil, err
		}
		if patch != nil {
			updated, err := c.PatchEvent(existing.Id, patch)
			if err == nil && c.index != nil {
				c.index.Set(t.ID, updated.Id)
			}
			return updated, err
		}
		return existing, nil
	}

	created, err := c.srv.Events.Insert(c.calendarID, event).Do()
	if err == nil && c.index != nil {
		c.index.Set(t.ID, created.Id)
	}
	return created, err
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Do()
}

// DeleteEvent deletes an event from the calendar.
func (c *CalendarClient) DeleteEvent(eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Do()
}

// GetEventByTaskID searches for the event carrying the given task id
// in its private extended properties.
func (c *CalendarClient) GetEventByTaskID(taskID string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", taskIDProperty, taskID)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to search calendar events: %w", err)
	}
	if len(events.Items) == 0 {
		return nil, nil
	}
	return events.Items[0], nil
}
