// Package orgmode imports Org-mode TODO entries as task drafts.
package orgmode

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/harrisonrobin/taskflow/pkg/task"
)

// Entry is a task draft parsed from an Org-mode heading. The store
// assigns identity at creation; an entry only carries editable fields.
type Entry struct {
	Title       string
	Description string
	Priority    task.Priority
	Category    string
	Completed   bool
	DueDate     *task.DueDate
	DueTime     *task.DayTime
}

var (
	todoRegex = regexp.MustCompile(`^\* TODO\s*(?:\[#([A-Z])\])?\s*(.*?)(?:\s+(:(\w+(:\w+)*):))?\s*$`)
	doneRegex = regexp.MustCompile(`^\* DONE\s*(?:\[#([A-Z])\])?\s*(.*?)(?:\s+(:(\w+(:\w+)*):))?\s*$`)

	// DEADLINE: <2024-01-15 Mon 14:00> or <2024-01-15 Mon>
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})\s+[A-Za-z]{3}(?:\s+(\d{2}:\d{2}))?>`)
)

// ParseFile parses one Org-mode file.
func ParseFile(filePath string) ([]Entry, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ParseFiles parses multiple Org-mode files in order.
func ParseFiles(filePaths []string) ([]Entry, error) {
	var all []Entry
	for _, filePath := range filePaths {
		entries, err := ParseFile(filePath)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// Parse reads Org-mode headings and returns one entry per TODO/DONE
// heading with a non-empty title. A DEADLINE line below a heading
// becomes the due date (and time, when present); the first tag becomes
// the category; body lines become the description.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var current *Entry
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Title != "" {
			entries = append(entries, *current)
		}
		current = nil
		body = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		isTodo := strings.HasPrefix(line, "* TODO")
		isDone := strings.HasPrefix(line, "* DONE")
		if isTodo || isDone {
			flush()
			var matches []string
			if isTodo {
				matches = todoRegex.FindStringSubmatch(line)
			} else {
				matches = doneRegex.FindStringSubmatch(line)
			}
			current = &Entry{Priority: task.PriorityLow, Completed: isDone}
			if len(matches) > 0 {
				current.Priority = orgPriority(matches[1])
				current.Title = strings.TrimSpace(matches[2])
				if len(matches) > 3 && matches[3] != "" {
					tags := strings.Split(strings.Trim(matches[3], ":"), ":")
					current.Category = tags[0]
				}
			}
			continue
		}

		if current == nil || strings.HasPrefix(line, "* ") {
			flush()
			continue
		}

		if matches := deadlineRegex.FindStringSubmatch(line); len(matches) > 0 {
			if d, err := task.ParseDueDate(matches[1]); err == nil {
				current.DueDate = &d
			}
			if matches[2] != "" {
				if dt, err := task.ParseDayTime(matches[2]); err == nil {
					current.DueTime = &dt
				}
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			// Property drawer lines carry no task fields we keep.
			continue
		}
		if line != "" {
			body = append(body, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// orgPriority maps Org [#A]/[#B]/[#C] cookies onto priority levels.
// Headings without a cookie default to low.
func orgPriority(cookie string) task.Priority {
	switch cookie {
	case "A":
		return task.PriorityHigh
	case "B":
		return task.PriorityMedium
	default:
		return task.PriorityLow
	}
}
