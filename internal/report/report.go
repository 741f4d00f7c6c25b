// Package report renders the task list as a downloadable PDF.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/timefmt"
)

const (
	fontFamily = "Helvetica"
	rowHeight  = 7.0
)

type column struct {
	title string
	width float64
}

var columns = []column{
	{title: "Title", width: 55},
	{title: "Description", width: 65},
	{title: "Created", width: 35},
	{title: "Updated", width: 35},
}

// FileName returns the conventional report name for the given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("task-report-%s.pdf", now.Format("2006-01-02"))
}

// Export writes the report into dir and returns the file path.
func Export(dir string, tasks []domain.Task, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: create dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: create file: %w", err)
	}
	if err := Generate(f, tasks, now); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("report: close file: %w", err)
	}
	return path, nil
}

// Generate writes a PDF summarizing tasks: statistics, then pending and completed tables.
func Generate(w io.Writer, tasks []domain.Task, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task Management Report", true)
	pdf.SetCreator("taskboard", true)
	pdf.SetCreationDate(now)
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 10, "Task Management Report", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, "Generated: "+timefmt.FormatDateTime(now), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeSummary(pdf, domain.ComputeStats(tasks))

	pending, completed := domain.SplitByStatus(tasks)
	writeSection(pdf, tr, fmt.Sprintf("Pending Tasks (%d)", len(pending)), pending)
	writeSection(pdf, tr, fmt.Sprintf("Completed Tasks (%d)", len(completed)), completed)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("report: render pdf: %w", err)
	}
	return nil
}

func writeSummary(pdf *fpdf.Fpdf, stats domain.Stats) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")

	rows := [][2]string{
		{"Total Tasks", fmt.Sprintf("%d", stats.Total)},
		{"Completed", fmt.Sprintf("%d", stats.Completed)},
		{"Pending", fmt.Sprintf("%d", stats.Pending)},
		{"Completion Rate", fmt.Sprintf("%d%%", stats.CompletionRate)},
	}
	pdf.SetFont(fontFamily, "", 11)
	for _, row := range rows {
		pdf.CellFormat(50, rowHeight, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(30, rowHeight, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, heading string, tasks []domain.Task) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")

	if len(tasks) == 0 {
		pdf.SetFont(fontFamily, "I", 10)
		pdf.CellFormat(0, rowHeight, "No tasks.", "", 1, "L", false, 0, "")
		pdf.Ln(3)
		return
	}

	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for _, col := range columns {
		pdf.CellFormat(col.width, rowHeight, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 9)
	for _, t := range tasks {
		updated := ""
		if t.WasUpdated() {
			updated = timefmt.FormatDate(t.UpdatedAt)
		}
		cells := []string{t.Title, t.Description, timefmt.FormatDate(t.CreatedAt), updated}
		for i, col := range columns {
			text := fit(pdf, tr, cells[i], col.width-2)
			pdf.CellFormat(col.width, rowHeight, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// fit truncates text with an ellipsis so it stays inside width at the current font.
// text is UTF-8; the result is translated for the core fonts.
func fit(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) string {
	if pdf.GetStringWidth(tr(text)) <= width {
		return tr(text)
	}
	const ellipsis = "..."
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := tr(string(runes) + ellipsis)
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ellipsis
}
