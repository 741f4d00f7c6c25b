package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fastygo/taskboard/internal/store"
	"github.com/fastygo/taskboard/internal/tui"
)

func (st *rootState) runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := store.FromContext(ctx)
	if err != nil {
		return err
	}

	app := tui.New(s,
		tui.WithContext(ctx),
		tui.WithReportDir(st.cfg.Report.Dir),
		tui.WithLogger(st.logger),
	)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
