package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/config"
)

var (
	cfgCalendar string
	cfgCategory string
	cfgPriority string
	cfgSortMode string

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		RunE:  runConfig,
	}
)

func init() {
	configCmd.Flags().StringVar(&cfgCalendar, "calendar", "", "Set the Google Calendar name for sync")
	configCmd.Flags().StringVar(&cfgCategory, "default-category", "", "Set the default category for new tasks")
	configCmd.Flags().StringVar(&cfgPriority, "default-priority", "", "Set the default priority for new tasks")
	configCmd.Flags().StringVar(&cfgSortMode, "sort", "", "Set the default sort mode for list")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	changed := false
	if cfgCalendar != "" {
		cfg.Calendar = cfgCalendar
		changed = true
	}
	if cfgCategory != "" {
		cfg.DefaultCategory = cfgCategory
		changed = true
	}
	if cfgPriority != "" {
		cfg.DefaultPriority = cfgPriority
		changed = true
	}
	if cfgSortMode != "" {
		cfg.SortMode = cfgSortMode
		changed = true
	}

	if changed {
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
	}

	fmt.Printf("calendar:         %s\n", cfg.Calendar)
	fmt.Printf("default-category: %s\n", cfg.DefaultCategory)
	fmt.Printf("default-priority: %s\n", cfg.DefaultPriority)
	fmt.Printf("sort:             %s\n", cfg.SortMode)
	return nil
}
