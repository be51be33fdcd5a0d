package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/task"
)

var (
	editTitle       string
	editDescription string
	editPriority    string
	editCategory    string
	editDueDate     string
	editDueTime     string
	editClearDue    bool

	editCmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of an existing task",
		Args:  cobra.ExactArgs(1),
		RunE:  runEdit,
	}
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority: low, medium or high")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
	editCmd.Flags().StringVar(&editDueDate, "due", "", "New due date (YYYY-MM-DD)")
	editCmd.Flags().StringVar(&editDueTime, "at", "", "New due time (HH:MM)")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date and time")
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, flush, err := openStore()
	if err != nil {
		return err
	}
	defer flush()

	id, err := resolveID(s, args[0])
	if err != nil {
		return err
	}

	var p task.Patch
	if cmd.Flags().Changed("title") {
		p.Title = &editTitle
	}
	if cmd.Flags().Changed("description") {
		p.Description = &editDescription
	}
	if cmd.Flags().Changed("priority") {
		priority := task.Priority(editPriority)
		if !priority.Valid() {
			return fmt.Errorf("invalid priority %q (want low, medium or high)", editPriority)
		}
		p.Priority = &priority
	}
	if cmd.Flags().Changed("category") {
		p.Category = &editCategory
	}
	if editClearDue {
		p.ClearDue = true
	} else if editDueDate != "" || editDueTime != "" {
		hasDue := s.FindByID(id) != nil && s.FindByID(id).DueDate != nil
		if editDueDate == "" && !hasDue {
			return fmt.Errorf("--at requires --due on a task without one")
		}
		if editDueDate != "" {
			d, err := task.ParseDueDate(editDueDate)
			if err != nil {
				return err
			}
			p.DueDate = &d
		}
		if editDueTime != "" {
			dt, err := task.ParseDayTime(editDueTime)
			if err != nil {
				return err
			}
			p.DueTime = &dt
		}
	}

	if _, err := s.Update(id, p); err != nil {
		return err
	}
	return nil
}
