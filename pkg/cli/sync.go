package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/config"
	"github.com/harrisonrobin/taskflow/pkg/google"
	"github.com/harrisonrobin/taskflow/pkg/index"
	"github.com/harrisonrobin/taskflow/pkg/task"
)

var (
	syncCalendar string

	syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Mirror due-dated tasks to a Google Calendar",
		RunE:  runSync,
	}
)

func init() {
	syncCmd.Flags().StringVar(&syncCalendar, "calendar", "", "Google Calendar name (overrides config)")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	calendarName := cfg.Calendar
	if syncCalendar != "" {
		calendarName = syncCalendar
	}

	s, flush, err := openStore()
	if err != nil {
		return err
	}
	defer flush()

	evtIndex, err := index.NewEventIndex()
	if err != nil {
		log.Printf("Warning: failed to initialize event index: %v", err)
	}

	gClient, err := google.NewClient(cmd.Context(), calendarName, evtIndex)
	if err != nil {
		return fmt.Errorf("error creating Google Calendar client: %w", err)
	}

	now := time.Now()
	live := make(map[string]bool)
	synced := 0
	for _, snap := range s.Snapshots() {
		live[snap.ID] = true
		t := task.Restore(snap)
		if _, ok := t.DueAt(); !ok {
			continue
		}
		if _, err := gClient.SyncTask(t, now); err != nil {
			log.Printf("Error syncing task %s: %v", shortID(t.ID), err)
			continue
		}
		synced++
	}

	// Events whose task was deleted since the last sync.
	if evtIndex != nil {
		for _, eventID := range evtIndex.Prune(live) {
			if err := gClient.DeleteEvent(eventID); err != nil {
				log.Printf("Error deleting orphaned event %s: %v", eventID, err)
			}
		}
		if err := evtIndex.Save(); err != nil {
			log.Printf("Warning: failed to save event index: %v", err)
		}
	}

	fmt.Printf("Synced %d task(s) to calendar %q.\n", synced, calendarName)
	return nil
}
