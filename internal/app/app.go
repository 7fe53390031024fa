// Package app assembles the runtime from configuration: logger, seed data,
// journal, desktop notifier, store and session manager.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/agencyd/internal/clock"
	"github.com/sandeepkv93/agencyd/internal/config"
	"github.com/sandeepkv93/agencyd/internal/journal"
	"github.com/sandeepkv93/agencyd/internal/model"
	"github.com/sandeepkv93/agencyd/internal/notify"
	"github.com/sandeepkv93/agencyd/internal/scheduler"
	"github.com/sandeepkv93/agencyd/internal/seed"
	"github.com/sandeepkv93/agencyd/internal/session"
	"github.com/sandeepkv93/agencyd/internal/store"
)

type App struct {
	Config  config.RuntimeConfig
	Logger  *slog.Logger
	Clock   clock.Clock
	Store   *store.Store
	Session *session.Manager
	// Journal is nil when journal.path is empty.
	Journal *journal.Journal
	// SeedWarnings lists records loaded with a degraded field.
	SeedWarnings []seed.Warning
}

type Option func(*options)

type options struct {
	clock    clock.Clock
	notifier notify.Notifier
	hooks    []func(model.Notification)
}

func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithNotifier replaces the desktop notifier chosen from configuration.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithNotificationHook adds a store hook, e.g. for the headless watcher.
func WithNotificationHook(fn func(model.Notification)) Option {
	return func(o *options) { o.hooks = append(o.hooks, fn) }
}

// Build wires a ready-to-login App. ctx bounds journal writes and desktop
// notifications for the life of the App.
func Build(ctx context.Context, cfg config.RuntimeConfig, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	o := options{clock: clock.Real{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.notifier == nil {
		if cfg.Notifications.Desktop {
			o.notifier = notify.Exec{}
		} else {
			o.notifier = notify.Noop{}
		}
	}

	now := o.clock.Now()
	data := seed.Default(now)
	var warnings []seed.Warning
	if cfg.Seed.Path != "" {
		var err error
		data, warnings, err = seed.LoadFile(cfg.Seed.Path, now)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		for _, w := range warnings {
			logger.Warn("seed record degraded", "record", w.Record, "field", w.Field, "err", w.Err)
		}
		logger.Info("seed loaded", "path", cfg.Seed.Path, "tasks", len(data.Tasks), "clients", len(data.Clients))
	}

	a := &App{Config: cfg, Logger: logger, Clock: o.clock, SeedWarnings: warnings}

	storeOpts := []store.Option{
		store.WithClock(o.clock),
		store.WithLogger(logger.With("component", "store")),
		store.WithToastTTL(cfg.Reminders.ToastTTL),
	}
	if cfg.Journal.Path != "" {
		j, err := journal.Open(cfg.Journal.Path, logger.With("component", "journal"))
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		a.Journal = j
		storeOpts = append(storeOpts, store.WithNotificationHook(j.Hook(ctx)))
	}
	if _, noop := o.notifier.(notify.Noop); !noop {
		storeOpts = append(storeOpts, store.WithNotificationHook(notify.Hook(ctx, o.notifier, logger)))
	}
	for _, h := range o.hooks {
		storeOpts = append(storeOpts, store.WithNotificationHook(h))
	}

	a.Store = store.New(data, storeOpts...)
	a.Session = session.NewManager(a.Store, o.clock, scheduler.Config{
		Interval: cfg.Reminders.Interval,
		Buffer:   cfg.Reminders.Buffer,
	}, logger.With("component", "scheduler"))
	return a, nil
}

// Close stops the scheduler and closes the journal.
func (a *App) Close() error {
	var errs []error
	if a.Session != nil {
		a.Session.Close()
	}
	if a.Journal != nil {
		if err := a.Journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close journal: %w", err))
		}
	}
	return errors.Join(errs...)
}
