// Package index maps task ids to their mirrored calendar event ids so
// repeat syncs can patch events in place instead of searching the
// calendar API.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	xdgAppName = "taskflow"
	indexFile  = "events.json"
)

// EventIndex is the persisted task-id → event-id mapping. Lookups that
// miss fall back to an API search in the caller; the index is a cache,
// losing it only costs extra searches.
type EventIndex struct {
	path     string
	mu       sync.RWMutex
	mappings map[string]string
	dirty    bool
}

// NewEventIndex opens the index at ~/.config/taskflow/events.json,
// loading existing mappings when the file is present.
func NewEventIndex() (*EventIndex, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	idx := &EventIndex{
		path:     filepath.Join(home, ".config", xdgAppName, indexFile),
		mappings: make(map[string]string),
	}
	if err := idx.load(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *EventIndex) load() error {
	f, err := os.Open(idx.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&idx.mappings); err != nil {
		return fmt.Errorf("failed to decode event index: %w", err)
	}
	return nil
}

// Save writes the mappings back out, skipping the write entirely when
// nothing changed since the last save.
func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(idx.path), 0700); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}
	f, err := os.Create(idx.path)
	if err != nil {
		return fmt.Errorf("failed to open event index for writing: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(idx.mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

// Get returns the event id mirrored for a task, or "" when the task
// has no known event.
func (idx *EventIndex) Get(taskID string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.mappings[taskID]
}

// Set records the event mirroring a task.
func (idx *EventIndex) Set(taskID, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.mappings[taskID] != eventID {
		idx.mappings[taskID] = eventID
		idx.dirty = true
	}
}

// Remove forgets the mapping for a task.
func (idx *EventIndex) Remove(taskID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.mappings[taskID]; exists {
		delete(idx.mappings, taskID)
		idx.dirty = true
	}
}

// Prune drops mappings whose task id is no longer in the collection
// and returns the orphaned event ids so the caller can delete the
// events themselves.
func (idx *EventIndex) Prune(live map[string]bool) []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	var orphaned []string
	for taskID, eventID := range idx.mappings {
		if !live[taskID] {
			orphaned = append(orphaned, eventID)
			delete(idx.mappings, taskID)
			idx.dirty = true
		}
	}
	return orphaned
}
