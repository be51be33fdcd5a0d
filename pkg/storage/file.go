// Package storage persists the task collection as a JSON file under
// the user's config directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/taskflow/pkg/task"
)

const (
	xdgAppName = "taskflow"
	tasksFile  = "tasks.json"
)

// FileStore reads and writes the full ordered task collection. The
// serialized form is the task snapshot schema, so identifiers and
// timestamps survive a round trip exactly.
type FileStore struct {
	Path string
}

// NewFileStore opens the default store at ~/.config/taskflow/tasks.json.
func NewFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &FileStore{Path: filepath.Join(home, ".config", xdgAppName, tasksFile)}, nil
}

// NewFileStoreAt opens a store at an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load returns the persisted collection in storage order. A missing
// file is an empty collection, not an error.
func (fs *FileStore) Load() ([]task.Snapshot, error) {
	f, err := os.Open(fs.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var snaps []task.Snapshot
	if err := json.NewDecoder(f).Decode(&snaps); err != nil {
		return nil, fmt.Errorf("failed to decode tasks file: %w", err)
	}
	return snaps, nil
}

// Save writes the collection, creating the config directory if needed.
func (fs *FileStore) Save(snaps []task.Snapshot) error {
	dir := filepath.Dir(fs.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create tasks directory: %w", err)
	}

	f, err := os.OpenFile(fs.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open tasks file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if snaps == nil {
		snaps = []task.Snapshot{}
	}
	return encoder.Encode(snaps)
}
