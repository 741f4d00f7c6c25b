package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/fastygo/taskboard/domain"
)

func sampleTasks() []domain.Task {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []domain.Task{
		{ID: "a", Title: "Complete project documentation", Description: "README and API docs", CreatedAt: created, UpdatedAt: created},
		{ID: "b", Title: "Review code changes", Completed: true, CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
		{ID: "c", Title: strings.Repeat("very long title ", 20), Description: "Café crème", CreatedAt: created, UpdatedAt: created},
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	if err := Generate(&buf, sampleTasks(), now); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:16])
	}
	if buf.Len() < 500 {
		t.Fatalf("suspiciously small report: %d bytes", buf.Len())
	}
}

func TestGenerateWithNoTasks(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, nil, time.Now()); err != nil {
		t.Fatalf("generate empty: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("empty report is not a PDF")
	}
}

func TestExportWritesNamedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

	path, err := Export(dir, sampleTasks(), now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "task-report-2024-03-05.pdf" {
		t.Fatalf("unexpected file name %q", path)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty report file, err=%v", err)
	}
}

func TestFitTruncatesAccentedText(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont(fontFamily, "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	got := fit(pdf, tr, strings.Repeat("Café résumé ", 20), 53)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if pdf.GetStringWidth(got) > 53 {
		t.Fatalf("truncated text wider than the column: %q", got)
	}
	if strings.Contains(got, "\xef\xbf\xbd") {
		t.Fatalf("replacement characters in output: %q", got)
	}
	if !strings.HasPrefix(got, "Caf\xe9 r\xe9sum\xe9") {
		t.Fatalf("expected cp1252 accents to survive, got % x", got)
	}

	if short := fit(pdf, tr, "Café", 53); short != "Caf\xe9" {
		t.Fatalf("short text should only be translated, got % x", short)
	}
}
