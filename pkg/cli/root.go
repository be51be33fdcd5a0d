// Package cli wires the taskflow commands.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/notify"
	"github.com/harrisonrobin/taskflow/pkg/storage"
	"github.com/harrisonrobin/taskflow/pkg/store"
)

var (
	tasksFilePath string
	quiet         bool
	rootCmd       *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow - personal task tracker",
		Long: `TaskFlow is a personal task tracker: create, edit, complete, delete,
filter, sort and search short-lived tasks, with optional due dates that
drive overdue/due-today/due-soon states and timed notifications.

Tasks live in ~/.config/taskflow/tasks.json. Due-dated tasks can be
mirrored to a Google Calendar with the sync command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&tasksFilePath, "file", "", "Path to the tasks file (default ~/.config/taskflow/tasks.json)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress alert output")
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(watchCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

type discardNotifier struct{}

func (discardNotifier) Alert(string, store.Severity) {}

// openStore builds the store from its file-backed collaborators. The
// returned flush drains pending scheduled alerts; one-shot commands
// call it before exiting so delayed alerts still print.
func openStore() (*store.Store, func(), error) {
	fileStore, err := openFileStore()
	if err != nil {
		return nil, nil, err
	}

	var notifier store.Notifier = notify.NewConsole()
	if quiet {
		notifier = discardNotifier{}
	}
	timers := notify.NewTimers()

	s, err := store.New(fileStore, notifier, timers, nil)
	if err != nil {
		return nil, nil, err
	}
	return s, timers.Flush, nil
}

func openFileStore() (*storage.FileStore, error) {
	if tasksFilePath != "" {
		return storage.NewFileStoreAt(tasksFilePath), nil
	}
	return storage.NewFileStore()
}

func timeNow() time.Time {
	return time.Now()
}

// resolveID matches a full task id or a unique id prefix.
func resolveID(s *store.Store, arg string) (string, error) {
	if t := s.FindByID(arg); t != nil {
		return arg, nil
	}
	var matches []string
	for _, snap := range s.Snapshots() {
		if strings.HasPrefix(snap.ID, arg) {
			matches = append(matches, snap.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no task matches id %q", arg)
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d matches)", arg, len(matches))
	}
}
