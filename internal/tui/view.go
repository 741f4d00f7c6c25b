package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/timefmt"
)

func (a *App) View() string {
	sections := []string{
		a.renderHeader(),
		a.renderStats(),
		a.renderTabs(),
	}

	switch a.tab {
	case tabCreate:
		sections = append(sections, a.renderForm())
	case tabReports:
		sections = append(sections, a.renderReports())
	default:
		sections = append(sections, a.renderTasks())
	}

	sections = append(sections, a.help.ShortHelpView(a.helpBindings()))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n\n"))
}

func (a *App) helpBindings() []key.Binding {
	switch {
	case a.confirmID != "":
		return a.keys.confirmHelp()
	case a.tab == tabCreate:
		return a.keys.formHelp()
	case a.tab == tabReports:
		return a.keys.reportsHelp()
	default:
		return a.keys.tasksHelp()
	}
}

func (a *App) renderHeader() string {
	return titleStyle.Render("Task Management Dashboard") + "\n" +
		subtitleStyle.Render("Manage your tasks efficiently and generate comprehensive reports")
}

func (a *App) renderStats() string {
	stats := a.store.Stats()
	values := []struct {
		label string
		value string
	}{
		{"Total Tasks", fmt.Sprintf("%d", stats.Total)},
		{"Completed", fmt.Sprintf("%d", stats.Completed)},
		{"Pending", fmt.Sprintf("%d", stats.Pending)},
		{"Completion Rate", fmt.Sprintf("%d%%", stats.CompletionRate)},
	}

	cards := make([]string, 0, len(values))
	for i, v := range values {
		color := cardColors[i%len(cardColors)]
		cards = append(cards, cardStyle.BorderForeground(color).Render(
			mutedStyle.Render(v.label)+"\n"+cardValueStyle.Foreground(color).Render(v.value),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (a *App) renderTabs() string {
	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if tab(i) == a.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
			continue
		}
		tabs = append(tabs, inactiveTabStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderTasks() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("All Tasks"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("View and manage all your tasks. Toggle completion status or delete tasks as needed."))

	if a.loading || a.store.IsLoading() {
		b.WriteString("\n\n" + a.spinner.View() + " Loading tasks...")
		return b.String()
	}
	if errMsg := a.store.Err(); errMsg != "" {
		b.WriteString("\n\n" + errorStyle.Render(errMsg) + mutedStyle.Render("  (press r to retry)"))
	}
	if a.notice != "" {
		b.WriteString("\n\n" + errorStyle.Render(a.notice))
	}
	if a.form.success != "" && a.form.editingID == "" {
		b.WriteString("\n\n" + successStyle.Render(a.form.success))
	}

	pending, completed := domain.SplitByStatus(a.store.Tasks())
	if len(pending)+len(completed) == 0 {
		b.WriteString("\n\n" + mutedStyle.Render("No tasks yet. Create your first task to get started."))
		return b.String()
	}

	index := 0
	renderSection := func(heading string, tasks []domain.Task) {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(heading))
		for _, task := range tasks {
			b.WriteString("\n")
			b.WriteString(a.renderTask(task, index == a.cursor))
			index++
		}
	}
	renderSection(fmt.Sprintf("Pending Tasks (%d)", len(pending)), pending)
	renderSection(fmt.Sprintf("Completed Tasks (%d)", len(completed)), completed)

	if a.confirmID != "" {
		b.WriteString("\n\n" + errorStyle.Render(msgConfirmDelete+" (y/n)"))
	}
	return b.String()
}

func (a *App) renderTask(task domain.Task, selected bool) string {
	pointer := "  "
	if selected {
		pointer = cursorStyle.Render("> ")
	}

	mark, title, badge := "○", pendingTitleStyle.Render(task.Title), pendingBadgeStyle.Render("[Pending]")
	if task.Completed {
		mark, title, badge = "●", completedTitleStyle.Render(task.Title), completedBadgeStyle.Render("[Completed]")
	}

	lines := []string{fmt.Sprintf("%s%s %s  %s", pointer, mark, title, badge)}
	if task.Description != "" {
		lines = append(lines, "    "+mutedStyle.Render(task.Description))
	}
	now := a.now()
	dates := "Created: " + timefmt.FormatDate(task.CreatedAt)
	if timefmt.IsToday(task.CreatedAt, now) {
		dates = "Created: " + timefmt.FormatDateTime(task.CreatedAt)
	}
	if task.WasUpdated() {
		dates += "  Updated: " + timefmt.FormatDate(task.UpdatedAt)
	}
	dates = mutedStyle.Render(dates)
	if !task.Completed && timefmt.IsOverdue(task.CreatedAt, now) {
		dates += "  " + pendingBadgeStyle.Render("carried over")
	}
	lines = append(lines, "    "+dates)
	return strings.Join(lines, "\n")
}

func (a *App) renderForm() string {
	heading, hint := "Create New Task", "Add a new task to your list. Title is required, description is optional."
	if a.form.editing() {
		heading, hint = "Edit Task", "Update the title or description, then save."
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(heading) + "\n" + mutedStyle.Render(hint) + "\n\n")
	b.WriteString(labelStyle.Render("Title *") + "\n" + a.form.title.View() + "\n\n")
	b.WriteString(labelStyle.Render("Description") + "\n" + a.form.description.View())

	switch {
	case a.form.submitting && a.form.editing():
		b.WriteString("\n\n" + a.spinner.View() + " " + msgSaving)
	case a.form.submitting:
		b.WriteString("\n\n" + a.spinner.View() + " " + msgCreating)
	case a.form.err != "":
		b.WriteString("\n\n" + errorStyle.Render(a.form.err))
	case a.form.success != "":
		b.WriteString("\n\n" + successStyle.Render(a.form.success))
	}
	return b.String()
}

func (a *App) renderReports() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Generate Reports") + "\n")
	b.WriteString(mutedStyle.Render("Download comprehensive PDF reports of your tasks with timestamps and completion status."))
	b.WriteString("\n\n" + fmt.Sprintf("Reports are written to %s", a.reportDir))

	switch {
	case a.exporting:
		b.WriteString("\n\n" + a.spinner.View() + " Generating report...")
	case a.reportErr != nil:
		b.WriteString("\n\n" + errorStyle.Render("Failed to generate report: "+a.reportErr.Error()))
	case a.reportPath != "":
		b.WriteString("\n\n" + successStyle.Render("Report saved to "+a.reportPath))
	default:
		b.WriteString("\n\n" + mutedStyle.Render("Press enter to export a PDF report."))
	}
	return b.String()
}
