package storage

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long to wait for more changes before firing.
// Editors and atomic writers produce bursts of events per save.
const watchDebounce = 500 * time.Millisecond

// Watcher observes the tasks file for external modifications and
// invokes a callback after each settled change. The parent directory
// is watched rather than the file itself so renames and re-creates
// (atomic saves) keep being observed.
type Watcher struct {
	path     string
	onChange func()
}

// NewWatcher builds a watcher for the given tasks file.
func NewWatcher(path string, onChange func()) *Watcher {
	return &Watcher{path: path, onChange: onChange}
}

// Run watches until the context is cancelled. The callback runs on the
// watch goroutine; it must be safe to call at any time.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	var debounce *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fire:
			w.onChange()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Warning: tasks file watch error: %v", err)
		}
	}
}
