package task

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2026-03-14")
	if err != nil {
		t.Fatalf("ParseDueDate failed: %v", err)
	}
	year, month, day := d.Date()
	if year != 2026 || month != time.March || day != 14 {
		t.Errorf("expected 2026-03-14, got %04d-%02d-%02d", year, month, day)
	}
	if d.Location() != time.Local {
		t.Errorf("expected local timezone, got %v", d.Location())
	}

	if _, err := ParseDueDate("14/03/2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestParseDayTime(t *testing.T) {
	dt, err := ParseDayTime("09:30")
	if err != nil {
		t.Fatalf("ParseDayTime failed: %v", err)
	}
	if dt.Hour != 9 || dt.Minute != 30 {
		t.Errorf("expected 09:30, got %s", dt)
	}

	if _, err := ParseDayTime("9.30"); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestDueDateJSON(t *testing.T) {
	d := NewDueDate(2026, time.March, 14)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2026-03-14"` {
		t.Errorf("expected \"2026-03-14\", got %s", data)
	}

	var parsed DueDate
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Errorf("expected %v, got %v", d.Time, parsed.Time)
	}

	// Empty string means unset.
	var empty DueDate
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil {
		t.Fatalf("unmarshal of empty string failed: %v", err)
	}
	if !empty.IsZero() {
		t.Error("expected zero value for empty string")
	}
}

func TestDayTimeJSON(t *testing.T) {
	dt := DayTime{Hour: 18, Minute: 5}
	data, err := json.Marshal(dt)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"18:05"` {
		t.Errorf("expected \"18:05\", got %s", data)
	}

	var parsed DayTime
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if parsed != dt {
		t.Errorf("expected %v, got %v", dt, parsed)
	}
}
