// Package cli holds the agencyd command tree.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/agencyd/internal/app"
	"github.com/sandeepkv93/agencyd/internal/clock"
	"github.com/sandeepkv93/agencyd/internal/config"
	"github.com/sandeepkv93/agencyd/internal/logging"
	"github.com/sandeepkv93/agencyd/internal/update"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var configPath string

// newClock is swapped by tests for a fake clock.
var newClock = func() clock.Clock { return clock.Real{} }

var rootCmd = &cobra.Command{
	Use:   "agencyd",
	Short: "Getting It Done - agency operations dashboard",
	Long: `agencyd is a terminal dashboard for a creative agency: clients, projects,
tasks on a kanban board, a meeting calendar and workspace scores.

While signed in, a reminder scheduler checks every task's deadline and raises
a notification one day and two hours before it is due.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// the TUI owns the terminal, so logs go to log.path or nowhere
		logger, closer, err := logging.New(cfg, nil)
		if err != nil {
			return err
		}
		defer closer.Close()

		a, err := app.Build(cmd.Context(), cfg, logger, app.WithClock(newClock()))
		if err != nil {
			return err
		}
		defer a.Close()

		program := tea.NewProgram(update.NewModel(a.Session, a.Clock), tea.WithContext(cmd.Context()))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("run dashboard: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "agencyd %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (config.RuntimeConfig, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.RuntimeConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
