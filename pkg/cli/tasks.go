package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task between completed and active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, flush, err := openStore()
		if err != nil {
			return err
		}
		defer flush()

		id, err := resolveID(s, args[0])
		if err != nil {
			return err
		}
		_, err = s.ToggleCompletion(id)
		return err
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, flush, err := openStore()
		if err != nil {
			return err
		}
		defer flush()

		id, err := resolveID(s, args[0])
		if err != nil {
			return err
		}
		removed, err := s.Delete(id)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no task matches id %q", args[0])
		}
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all completed tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, flush, err := openStore()
		if err != nil {
			return err
		}
		defer flush()

		_, err = s.ClearCompleted()
		return err
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, flush, err := openStore()
		if err != nil {
			return err
		}
		defer flush()

		stats := s.Statistics()
		fmt.Printf("Total:         %d\n", stats.Total)
		fmt.Printf("Active:        %d\n", stats.Active)
		fmt.Printf("Completed:     %d\n", stats.Completed)
		fmt.Printf("Overdue:       %d\n", stats.Overdue)
		fmt.Printf("High priority: %d\n", stats.HighPriority)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed an empty collection with starter tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, flush, err := openStore()
		if err != nil {
			return err
		}
		defer flush()

		if s.Len() > 0 {
			fmt.Println("Collection already has tasks, nothing to seed.")
			return nil
		}
		return s.SeedWelcome()
	},
}
