package cli

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the overdue watcher until interrupted",
	Long: `Keeps the store alive, re-evaluating time-dependent state: an early
check shortly after startup, then one per minute. Tasks that cross
into overdue alert exactly once. External changes to the tasks file
are picked up automatically.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fileStore, err := openFileStore()
	if err != nil {
		return err
	}

	s, flush, err := openStore()
	if err != nil {
		return err
	}
	defer flush()

	watcher := storage.NewWatcher(fileStore.Path, func() {
		if err := s.Reload(); err != nil {
			log.Printf("Warning: %v", err)
		}
	})
	go func() {
		if err := watcher.Run(ctx); err != nil {
			log.Printf("Warning: tasks file watcher stopped: %v", err)
		}
	}()

	fmt.Println("Watching for overdue tasks. Press Ctrl-C to stop.")
	s.RunOverdueLoop(ctx)
	return nil
}
