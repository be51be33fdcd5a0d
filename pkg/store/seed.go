package store

import "github.com/harrisonrobin/taskflow/pkg/task"

// SeedWelcome populates an empty collection with a few starter tasks.
// Scheduled alerts are suppressed so seeding doesn't fire attention
// notifications; each create still persists and acknowledges.
func (s *Store) SeedWelcome() error {
	if s.Len() > 0 {
		return nil
	}
	samples := []Input{
		{
			Title:       "Welcome to TaskFlow!",
			Description: "This is your first task. You can edit, complete, or delete it to get started.",
			Priority:    task.PriorityMedium,
			Category:    "personal",
		},
		{
			Title:       "Review quarterly reports",
			Description: "Analyze Q3 performance metrics and prepare summary for stakeholders",
			Priority:    task.PriorityHigh,
			Category:    "work",
		},
		{
			Title:       "Plan weekend activities",
			Description: "Research local events and make reservations",
			Priority:    task.PriorityLow,
			Category:    "personal",
		},
	}
	for _, in := range samples {
		if _, err := s.Create(in, false); err != nil {
			return err
		}
	}
	return nil
}
