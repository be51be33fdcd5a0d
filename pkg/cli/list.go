package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/config"
	"github.com/harrisonrobin/taskflow/pkg/store"
	"github.com/harrisonrobin/taskflow/pkg/task"
)

var (
	listCategory string
	listPriority string
	listStatus   string
	listSearch   string
	listSort     string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List tasks with filtering and sorting",
		RunE:  runList,
	}
)

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", store.FilterAll, "Filter by category")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", store.FilterAll, "Filter by priority")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", store.FilterAll, "Filter by status: completed, pending or overdue")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search term matched against title and description")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort mode: priority, createdDate or dueDate")
}

func runList(cmd *cobra.Command, args []string) error {
	s, flush, err := openStore()
	if err != nil {
		return err
	}
	defer flush()

	s.SetFilter(store.FilterCategory, listCategory)
	s.SetFilter(store.FilterPriority, listPriority)
	s.SetFilter(store.FilterStatus, listStatus)
	s.SetFilter(store.FilterSearch, listSearch)

	sortMode := listSort
	if sortMode == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		sortMode = cfg.SortMode
	}
	switch store.SortMode(sortMode) {
	case store.SortByPriority, store.SortByCreated, store.SortByDueDate:
		s.SetSortMode(store.SortMode(sortMode))
	default:
		return fmt.Errorf("invalid sort mode %q (want priority, createdDate or dueDate)", sortMode)
	}

	tasks := s.FilteredList()
	if len(tasks) == 0 {
		if s.Len() == 0 {
			fmt.Println("No tasks yet. Create your first task with 'taskflow add'.")
		} else {
			fmt.Println("No tasks match the current filters.")
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t\tTITLE\tPRIORITY\tCATEGORY\tDUE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID), statusMark(t), t.Title, t.Priority, t.Category, dueColumn(t))
	}
	return w.Flush()
}

func statusMark(t *task.Task) string {
	if t.Completed {
		return "✓"
	}
	return " "
}

func dueColumn(t *task.Task) string {
	if t.DueDate == nil {
		return "-"
	}
	due := t.DueDate.String()
	if t.DueTime != nil {
		due += " " + t.DueTime.String()
	}
	switch t.DueStatusAt(timeNow()) {
	case task.DueOverdue:
		return due + " (overdue)"
	case task.DueToday:
		return due + " (today)"
	case task.DueUpcoming:
		return due + " (soon)"
	}
	return due
}
