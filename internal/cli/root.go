// Package cli wires the taskboard command line: the dashboard by default, plus
// non-interactive sub-commands that drive the same task store.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/client"
	"github.com/fastygo/taskboard/internal/config"
	"github.com/fastygo/taskboard/internal/services/lifecycle"
	"github.com/fastygo/taskboard/internal/store"
	"github.com/fastygo/taskboard/pkg/logger"
)

// Options customizes how the root command builds its dependencies.
type Options struct {
	// LoadConfig defaults to config.Load.
	LoadConfig func() (*config.Config, error)
	// NewAPI defaults to the HTTP client pointed at the configured base URL.
	NewAPI func(cfg *config.Config, logger *zap.Logger) store.TaskAPI
	// Logger, when set, replaces the logger built from configuration.
	Logger *zap.Logger
}

type rootState struct {
	opts    Options
	cfg     *config.Config
	logger  *zap.Logger
	apiURL  string
	logFile string
}

// NewRootCommand builds the taskboard command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.NewAPI == nil {
		opts.NewAPI = newHTTPAPI
	}
	st := &rootState{opts: opts}

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "Task management dashboard",
		Long: `taskboard manages tasks stored behind the task API.

Run without arguments to open the interactive dashboard, or use the
sub-commands to list, create, toggle, edit and delete tasks from scripts.`,
		PersistentPreRunE: st.setup,
		RunE:              st.runDashboard,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.PersistentFlags().StringVar(&st.apiURL, "api-url", "", "Task API base URL (overrides TASKS_API_URL)")
	root.PersistentFlags().StringVar(&st.logFile, "log-file", "", "Write logs to this file")

	root.AddCommand(
		newListCmd(),
		newAddCmd(),
		newToggleCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newStatsCmd(),
		newReportCmd(st),
	)
	return root
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute(version string) error {
	ctx, stop := lifecycle.New(0, nil).Listen(context.Background())
	defer stop()

	root := NewRootCommand(Options{})
	root.Version = version
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// setup loads configuration and attaches a task store to the command context.
func (st *rootState) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := st.opts.LoadConfig()
	if err != nil {
		return err
	}
	if st.apiURL != "" {
		cfg.Client.BaseURL = st.apiURL
	}
	st.cfg = cfg

	log, err := st.buildLogger(cmd)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	st.logger = log

	s := store.New(st.opts.NewAPI(cfg, log), log)
	cmd.SetContext(store.NewContext(cmd.Context(), s))
	return nil
}

// buildLogger keeps the dashboard's terminal clean: without --log-file it only
// logs when running a sub-command, and then to stderr.
func (st *rootState) buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if st.opts.Logger != nil {
		return st.opts.Logger, nil
	}
	output := st.logFile
	if output == "" {
		if !cmd.HasParent() {
			return zap.NewNop(), nil
		}
		output = "stderr"
	}
	return logger.New(logger.Config{
		Level:    st.cfg.Logger.Level,
		Encoding: "console",
		Output:   output,
	})
}

func newHTTPAPI(cfg *config.Config, log *zap.Logger) store.TaskAPI {
	return client.New(cfg.Client.BaseURL,
		client.WithTimeout(cfg.Client.Timeout),
		client.WithLogger(log),
	)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
