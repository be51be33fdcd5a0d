package google

import (
	"strings"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskflow/pkg/task"
)

func newDueTask(t *testing.T) *task.Task {
	t.Helper()
	// Keep the color cache inside the test sandbox.
	t.Setenv("HOME", t.TempDir())

	created := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)
	tk := task.New("id-1", "Dentist appointment", "bring insurance card", task.PriorityHigh, "health", created)
	due := task.NewDueDate(2026, time.March, 20)
	at := task.DayTime{Hour: 15, Minute: 0}
	tk.DueDate = &due
	tk.DueTime = &at
	return tk
}

func TestConvertTaskToEvent(t *testing.T) {
	tk := newDueTask(t)
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.Local)

	event, err := ConvertTaskToEvent(tk, now)
	if err != nil {
		t.Fatalf("ConvertTaskToEvent: %v", err)
	}
	if event.Summary != "Dentist appointment" {
		t.Errorf("Summary = %q", event.Summary)
	}

	due := time.Date(2026, time.March, 20, 15, 0, 0, 0, time.Local)
	end, err := time.Parse(time.RFC3339, event.End.DateTime)
	if err != nil {
		t.Fatal(err)
	}
	if !end.Equal(due) {
		t.Errorf("End = %v, want the due instant %v", end, due)
	}
	start, err := time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		t.Fatal(err)
	}
	if !start.Equal(due.Add(-eventDuration)) {
		t.Errorf("Start = %v, want %v", start, due.Add(-eventDuration))
	}

	if got := event.ExtendedProperties.Private[taskIDProperty]; got != "id-1" {
		t.Errorf("task id property = %q", got)
	}
	for _, want := range []string{"#health", "Priority: high", "ID: id-1", "‣ bring insurance card"} {
		if !strings.Contains(event.Description, want) {
			t.Errorf("Description missing %q:\n%s", want, event.Description)
		}
	}
}

func TestConvertTaskToEventPrefixes(t *testing.T) {
	tk := newDueTask(t)

	// Past the due instant: overdue marker.
	late := time.Date(2026, time.March, 21, 0, 0, 0, 0, time.Local)
	event, err := ConvertTaskToEvent(tk, late)
	if err != nil {
		t.Fatal(err)
	}
	if event.Summary != "! Dentist appointment" {
		t.Errorf("overdue Summary = %q", event.Summary)
	}

	// Completed wins over overdue.
	tk.Completed = true
	event, err = ConvertTaskToEvent(tk, late)
	if err != nil {
		t.Fatal(err)
	}
	if event.Summary != "✓ Dentist appointment" {
		t.Errorf("completed Summary = %q", event.Summary)
	}
	if !strings.Contains(event.Description, "Status: completed") {
		t.Errorf("Description = %q", event.Description)
	}
}

func TestConvertTaskToEventRequiresDue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tk := task.New("id-2", "No due", "", task.PriorityLow, "", time.Now())
	if _, err := ConvertTaskToEvent(tk, time.Now()); err == nil {
		t.Error("expected error for a task without a due instant")
	}
}

func TestEventNeedsUpdate(t *testing.T) {
	tk := newDueTask(t)
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.Local)
	target, err := ConvertTaskToEvent(tk, now)
	if err != nil {
		t.Fatal(err)
	}

	// Identical events need no patch.
	same := &calendar.Event{
		Summary:     target.Summary,
		Description: target.Description,
		ColorId:     target.ColorId,
		Start:       &calendar.EventDateTime{DateTime: target.Start.DateTime},
		End:         &calendar.EventDateTime{DateTime: target.End.DateTime},
	}
	patch, err := EventNeedsUpdate(same, target)
	if err != nil {
		t.Fatal(err)
	}
	if patch != nil {
		t.Errorf("expected no patch, got %+v", patch)
	}

	// A stale summary produces a patch carrying only the changed field.
	same.Summary = "old title"
	patch, err = EventNeedsUpdate(same, target)
	if err != nil {
		t.Fatal(err)
	}
	if patch == nil || patch.Summary != target.Summary {
		t.Fatalf("expected summary patch, got %+v", patch)
	}
	if patch.Start != nil {
		t.Error("unchanged times must not appear in the patch")
	}

	// Equivalent instants in different zones are not a change.
	same.Summary = target.Summary
	end, err := time.Parse(time.RFC3339, target.End.DateTime)
	if err != nil {
		t.Fatal(err)
	}
	same.End.DateTime = end.In(time.FixedZone("X", 3600)).Format(time.RFC3339)
	patch, err = EventNeedsUpdate(same, target)
	if err != nil {
		t.Fatal(err)
	}
	if patch != nil {
		t.Errorf("zone-shifted equal instant flagged as change: %+v", patch)
	}
}
