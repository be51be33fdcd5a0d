package task

import (
	"fmt"
	"strings"
	"time"
)

const (
	dueDateLayout = "2006-01-02" // calendar date, timezone-naive
	dayTimeLayout = "15:04"
)

// DueDate is a timezone-naive calendar date (year-month-day). It is
// always anchored in the local timezone so that combining it with a
// time-of-day never shifts the date across a UTC offset boundary.
type DueDate struct {
	time.Time
}

// NewDueDate builds a DueDate from explicit components.
func NewDueDate(year int, month time.Month, day int) DueDate {
	return DueDate{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// ParseDueDate parses a YYYY-MM-DD string in the local timezone.
func ParseDueDate(s string) (DueDate, error) {
	t, err := time.ParseInLocation(dueDateLayout, s, time.Local)
	if err != nil {
		return DueDate{}, fmt.Errorf("failed to parse due date '%s': %w", s, err)
	}
	return DueDate{t}, nil
}

func (d DueDate) String() string {
	return d.Format(dueDateLayout)
}

// UnmarshalJSON implements the json.Unmarshaler interface for DueDate.
func (d *DueDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDueDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}

// MarshalJSON implements the json.Marshaler interface for DueDate.
func (d DueDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// MarshalYAML implements the yaml.Marshaler interface for DueDate.
func (d DueDate) MarshalYAML() (interface{}, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for DueDate.
func (d *DueDate) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDueDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}

// DayTime is a time-of-day (hour and minute). It is only meaningful
// alongside a DueDate.
type DayTime struct {
	Hour   int
	Minute int
}

// ParseDayTime parses an HH:MM string.
func ParseDayTime(s string) (DayTime, error) {
	t, err := time.Parse(dayTimeLayout, s)
	if err != nil {
		return DayTime{}, fmt.Errorf("failed to parse due time '%s': %w", s, err)
	}
	return DayTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (dt DayTime) String() string {
	return fmt.Sprintf("%02d:%02d", dt.Hour, dt.Minute)
}

// UnmarshalJSON implements the json.Unmarshaler interface for DayTime.
func (dt *DayTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*dt = DayTime{}
		return nil
	}
	parsed, err := ParseDayTime(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

// MarshalJSON implements the json.Marshaler interface for DayTime.
func (dt DayTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.String() + `"`), nil
}

// MarshalYAML implements the yaml.Marshaler interface for DayTime.
func (dt DayTime) MarshalYAML() (interface{}, error) {
	return dt.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for DayTime.
func (dt *DayTime) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*dt = DayTime{}
		return nil
	}
	parsed, err := ParseDayTime(s)
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}
