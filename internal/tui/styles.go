package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5F5F5"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Padding(1, 0, 0, 0)
	labelStyle    = lipgloss.NewStyle().Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Width(21)
	cardValueStyle = lipgloss.NewStyle().Bold(true)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5B8DEF")).
			Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CCCCCC")).
				Padding(0, 2)

	cursorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	pendingTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F5F5"))
	completedTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Strikethrough(true)
	pendingBadgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	completedBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
)

// cardColors follow the stat order: total, completed, pending, completion rate.
var cardColors = []lipgloss.Color{"#5B8DEF", "#4CAF50", "#F7B801", "#B388FF"}
