package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/config"
	"github.com/harrisonrobin/taskflow/pkg/store"
	"github.com/harrisonrobin/taskflow/pkg/task"
)

var (
	addDescription string
	addPriority    string
	addCategory    string
	addDueDate     string
	addDueTime     string

	addCmd = &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority: low, medium or high")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category tag, e.g. personal or work")
	addCmd.Flags().StringVar(&addDueDate, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addDueTime, "at", "", "Due time (HH:MM), requires --due")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addPriority == "" {
		addPriority = cfg.DefaultPriority
	}
	if addCategory == "" {
		addCategory = cfg.DefaultCategory
	}

	priority := task.Priority(addPriority)
	if !priority.Valid() {
		return fmt.Errorf("invalid priority %q (want low, medium or high)", addPriority)
	}

	in := store.Input{
		Title:       args[0],
		Description: addDescription,
		Priority:    priority,
		Category:    addCategory,
	}
	if in.DueDate, in.DueTime, err = parseDueFlags(addDueDate, addDueTime); err != nil {
		return err
	}

	s, flush, err := openStore()
	if err != nil {
		return err
	}
	defer flush()

	t, err := s.Create(in, true)
	if err != nil {
		return err
	}
	fmt.Printf("Created task %s\n", shortID(t.ID))
	return nil
}

// parseDueFlags turns the --due/--at strings into due field values.
// A time without a date is rejected up front rather than silently
// becoming an end-of-day default.
func parseDueFlags(dueDate, dueTime string) (*task.DueDate, *task.DayTime, error) {
	if dueDate == "" {
		if dueTime != "" {
			return nil, nil, fmt.Errorf("--at requires --due")
		}
		return nil, nil, nil
	}
	d, err := task.ParseDueDate(dueDate)
	if err != nil {
		return nil, nil, err
	}
	if dueTime == "" {
		return &d, nil, nil
	}
	dt, err := task.ParseDayTime(dueTime)
	if err != nil {
		return nil, nil, err
	}
	return &d, &dt, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
