package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrisonrobin/taskflow/pkg/orgmode"
	"github.com/harrisonrobin/taskflow/pkg/store"
	"github.com/harrisonrobin/taskflow/pkg/task"
)

var importCmd = &cobra.Command{
	Use:   "import <file.org> [more.org ...]",
	Short: "Import Org-mode TODO entries as tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	entries, err := orgmode.ParseFiles(args)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No TODO entries found.")
		return nil
	}

	s, flush, err := openStore()
	if err != nil {
		return err
	}
	defer flush()

	for _, e := range entries {
		in := store.Input{
			Title:       e.Title,
			Description: e.Description,
			Priority:    e.Priority,
			Category:    e.Category,
			DueDate:     e.DueDate,
			DueTime:     e.DueTime,
		}
		t, err := s.Create(in, false)
		if err != nil {
			return err
		}
		if e.Completed {
			if _, err := s.ToggleCompletion(t.ID); err != nil {
				return err
			}
		}
	}
	fmt.Printf("Imported %d task(s).\n", len(entries))
	return nil
}

// manifest is the export envelope, one document per collection.
type manifest struct {
	Version    int             `json:"version" yaml:"version"`
	ExportedAt time.Time       `json:"exportedAt" yaml:"exported_at"`
	Tasks      []task.Snapshot `json:"tasks" yaml:"tasks"`
}

var (
	exportFormat string

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export the task collection to stdout",
		RunE:  runExport,
	}
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Output format: yaml or json")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, flush, err := openStore()
	if err != nil {
		return err
	}
	defer flush()

	m := manifest{
		Version:    1,
		ExportedAt: time.Now(),
		Tasks:      s.Snapshots(),
	}

	switch exportFormat {
	case "yaml":
		out, err := yaml.Marshal(m)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(m)
	default:
		return fmt.Errorf("invalid format %q (want yaml or json)", exportFormat)
	}
}
