// Package output formats tasks and statistics for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/timefmt"
)

// Format selects how results are printed.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Tasks prints tasks in the requested format.
func Tasks(w io.Writer, format Format, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatYAML:
		return writeYAML(w, tasks)
	}

	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet.")
		return err
	}
	t := newTable("ID", "Status", "Title", "Description", "Created", "Updated")
	for _, task := range tasks {
		updated := ""
		if task.WasUpdated() {
			updated = timefmt.FormatDate(task.UpdatedAt)
		}
		t.Row(task.ID, task.Status(), task.Title, task.Description, timefmt.FormatDate(task.CreatedAt), updated)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Task prints a single task.
func Task(w io.Writer, format Format, task domain.Task) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, task)
	case FormatYAML:
		return writeYAML(w, task)
	}
	return Tasks(w, format, []domain.Task{task})
}

// Stats prints the dashboard counters.
func Stats(w io.Writer, format Format, stats domain.Stats) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, stats)
	case FormatYAML:
		return writeYAML(w, stats)
	}
	t := newTable("Total Tasks", "Completed", "Pending", "Completion Rate").
		Row(
			fmt.Sprintf("%d", stats.Total),
			fmt.Sprintf("%d", stats.Completed),
			fmt.Sprintf("%d", stats.Pending),
			fmt.Sprintf("%d%%", stats.CompletionRate),
		)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
