package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/agencyd/internal/config"
	"github.com/sandeepkv93/agencyd/internal/journal"
	"github.com/sandeepkv93/agencyd/internal/logging"
)

var (
	journalLimit  int
	journalUrgent bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List notifications recorded in the journal",
	Long: `Print notifications from the SQLite journal, newest first.

The journal is written while the dashboard or watch runs with journal.path set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runJournal(cmd.Context(), cfg, journal.ListFilter{Limit: journalLimit, UrgentOnly: journalUrgent}, cmd.OutOrStdout())
	},
}

func init() {
	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "maximum entries to show (0 for all)")
	journalCmd.Flags().BoolVar(&journalUrgent, "urgent", false, "only show urgent notifications")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(ctx context.Context, cfg config.RuntimeConfig, filter journal.ListFilter, out io.Writer) error {
	if cfg.Journal.Path == "" {
		return errors.New("journal: journal.path is not configured")
	}
	logger, closer, err := logging.New(cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	j, err := journal.Open(cfg.Journal.Path, logger)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	entries, err := j.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("list journal: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No notifications recorded.")
		return nil
	}
	total, err := j.Count(ctx)
	if err != nil {
		return fmt.Errorf("count journal: %w", err)
	}
	fmt.Fprintf(out, "%d of %d notification(s):\n", len(entries), total)
	for _, e := range entries {
		printEntry(out, e)
	}
	return nil
}
