package orgmode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrisonrobin/taskflow/pkg/task"
)

const sampleOrg = `#+TITLE: Inbox

* TODO [#A] Fix the boiler :home:urgent:
  DEADLINE: <2026-04-02 Thu 09:00>
  Call the plumber first thing.
  Gate code is 4412.
* DONE [#B] Renew passport :admin:
* TODO Water the plants
  DEADLINE: <2026-04-05 Sun>
* Some non-task heading
  This body belongs to no entry.
* TODO [#C]
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(sampleOrg))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}

	first := entries[0]
	if first.Title != "Fix the boiler" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Priority != task.PriorityHigh {
		t.Errorf("Priority = %q, want high", first.Priority)
	}
	if first.Category != "home" {
		t.Errorf("Category = %q, want first tag", first.Category)
	}
	if first.Completed {
		t.Error("TODO heading parsed as completed")
	}
	if first.DueDate == nil || first.DueDate.String() != "2026-04-02" {
		t.Errorf("DueDate = %v", first.DueDate)
	}
	if first.DueTime == nil || first.DueTime.String() != "09:00" {
		t.Errorf("DueTime = %v", first.DueTime)
	}
	if want := "Call the plumber first thing.\nGate code is 4412."; first.Description != want {
		t.Errorf("Description = %q, want %q", first.Description, want)
	}

	done := entries[1]
	if !done.Completed || done.Title != "Renew passport" || done.Priority != task.PriorityMedium {
		t.Errorf("DONE entry = %+v", done)
	}
	if done.Category != "admin" {
		t.Errorf("Category = %q", done.Category)
	}

	plain := entries[2]
	if plain.Title != "Water the plants" || plain.Priority != task.PriorityLow {
		t.Errorf("plain entry = %+v", plain)
	}
	if plain.DueDate == nil || plain.DueDate.String() != "2026-04-05" {
		t.Errorf("DueDate = %v", plain.DueDate)
	}
	if plain.DueTime != nil {
		t.Errorf("date-only deadline must not set a time, got %v", plain.DueTime)
	}
}

func TestParseSkipsPropertyDrawers(t *testing.T) {
	input := `* TODO Review notes
  :PROPERTIES:
  :CREATED: [2026-01-01]
  :END:
  Actual body line.
`
	entries, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Description != "Actual body line." {
		t.Errorf("Description = %q", entries[0].Description)
	}
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.org")
	b := filepath.Join(dir, "b.org")
	if err := os.WriteFile(a, []byte("* TODO First\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("* TODO Second\n"), 0600); err != nil {
		t.Fatal(err)
	}

	entries, err := ParseFiles([]string{a, b})
	if err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "First" || entries[1].Title != "Second" {
		t.Errorf("entries = %+v", entries)
	}

	if _, err := ParseFiles([]string{filepath.Join(dir, "missing.org")}); err == nil {
		t.Error("expected error for missing file")
	}
}
