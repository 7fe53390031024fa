package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/agencyd/internal/app"
	"github.com/sandeepkv93/agencyd/internal/logging"
)

var watchUser string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the reminder scheduler without the dashboard",
	Long: `Sign in as --user and print every deadline reminder as the scheduler raises
it. The scheduler ticks every reminders.interval. Stop with Ctrl+C or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, closer, err := logging.New(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.Build(ctx, cfg, logger, app.WithClock(newClock()))
		if err != nil {
			return err
		}
		defer a.Close()
		return runWatch(ctx, a, watchUser, cmd.OutOrStdout())
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchUser, "user", "sraddha@gettingitdone.agency", "user to sign in as")
	rootCmd.AddCommand(watchCmd)
}

// runWatch signs in, prints reminder events until ctx is done, then signs
// out. Signing out stops the engine, which closes its channel and ends the
// printer.
func runWatch(ctx context.Context, a *app.App, user string, out io.Writer) error {
	if user == "" {
		return errors.New("watch: --user is required")
	}
	printWarnings(out, a.SeedWarnings)

	engine := a.Session.Login(user)
	a.Logger.Info("watching reminders", "user", user, "interval", a.Config.Reminders.Interval)
	fmt.Fprintf(out, "watching reminders for %s (every %s)\n", user, a.Config.Reminders.Interval)

	wg := conc.NewWaitGroup()
	wg.Go(func() {
		for ev := range engine.C() {
			for _, n := range ev.Notifications {
				printNotification(out, n)
			}
		}
	})

	<-ctx.Done()
	a.Session.Logout()
	wg.Wait()
	if dropped := engine.Dropped(); dropped > 0 {
		a.Logger.Warn("reminder events dropped", "count", dropped)
	}
	a.Logger.Info("watch stopped", "ticks", engine.Ticks())
	return nil
}
