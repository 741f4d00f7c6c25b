package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/output"
	"github.com/fastygo/taskboard/internal/report"
	"github.com/fastygo/taskboard/internal/store"
)

var (
	errLoad   = errors.New(store.LoadErrorMessage)
	errCreate = errors.New("failed to create task")
	errToggle = errors.New("failed to update task status")
	errUpdate = errors.New("failed to update task")
	errDelete = errors.New("failed to delete task")
)

func newListCmd() *cobra.Command {
	var status, format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := loadedStore(cmd)
			if err != nil {
				return err
			}
			tasks, err := filterByStatus(s.Tasks(), status)
			if err != nil {
				return err
			}
			return output.Tasks(out(cmd), f, tasks)
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "Filter by status: all, pending or completed")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json or yaml")
	return cmd
}

func newAddCmd() *cobra.Command {
	var description, format string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			draft := domain.TaskDraft{Title: strings.Join(args, " "), Description: description}.Normalize()
			if err := draft.Validate(); err != nil {
				return err
			}
			s, err := store.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			if !s.AddTask(cmd.Context(), draft) {
				return errCreate
			}
			tasks := s.Tasks()
			return output.Task(out(cmd), f, tasks[len(tasks)-1])
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json or yaml")
	return cmd
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadedStore(cmd)
			if err != nil {
				return err
			}
			id := args[0]
			if _, ok := s.Find(id); !ok {
				return notFound(id)
			}
			if !s.ToggleTask(cmd.Context(), id) {
				return errToggle
			}
			task, _ := s.Find(id)
			fmt.Fprintf(out(cmd), "Task %s is now %s\n", task.ID, task.Status())
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	var (
		title, description string
		completed          bool
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title, description or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("description") && !flags.Changed("completed") {
				return errors.New("nothing to change: pass --title, --description or --completed")
			}
			s, err := loadedStore(cmd)
			if err != nil {
				return err
			}
			task, ok := s.Find(args[0])
			if !ok {
				return notFound(args[0])
			}
			if flags.Changed("title") {
				task.Title = title
			}
			if flags.Changed("description") {
				task.Description = description
			}
			if flags.Changed("completed") {
				task.Completed = completed
			}
			if err := (domain.TaskDraft{Title: task.Title}).Normalize().Validate(); err != nil {
				return err
			}
			if !s.UpdateTask(cmd.Context(), task) {
				return errUpdate
			}
			fmt.Fprintln(out(cmd), "Task updated successfully")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark the task completed (--completed=false reopens it)")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			if !s.DeleteTask(cmd.Context(), args[0]) {
				return errDelete
			}
			fmt.Fprintln(out(cmd), "Task deleted successfully")
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := loadedStore(cmd)
			if err != nil {
				return err
			}
			return output.Stats(out(cmd), f, s.Stats())
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format: table, json or yaml")
	return cmd
}

func newReportCmd(st *rootState) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a PDF report of all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadedStore(cmd)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = st.cfg.Report.Dir
			}
			path, err := report.Export(dir, s.Tasks(), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Report saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory for the report (defaults to REPORT_DIR)")
	return cmd
}

func loadedStore(cmd *cobra.Command) (*store.Store, error) {
	s, err := store.FromContext(cmd.Context())
	if err != nil {
		return nil, err
	}
	if err := s.Load(cmd.Context()); err != nil {
		return nil, fmt.Errorf("%w: %v", errLoad, err)
	}
	return s, nil
}

func filterByStatus(tasks []domain.Task, status string) ([]domain.Task, error) {
	pending, completed := domain.SplitByStatus(tasks)
	switch strings.ToLower(status) {
	case "", "all":
		return tasks, nil
	case "pending":
		return pending, nil
	case "completed":
		return completed, nil
	default:
		return nil, fmt.Errorf("unknown status %q (want all, pending or completed)", status)
	}
}

func notFound(id string) error {
	return fmt.Errorf("%s: %s", domain.ErrTaskNotFound.Message, id)
}
