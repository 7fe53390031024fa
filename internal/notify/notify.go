// Package notify delivers notifications to the operating system's
// notification centre.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sandeepkv93/agencyd/internal/model"
)

type Notifier interface {
	Send(ctx context.Context, n model.Notification) error
}

type Noop struct{}

func (Noop) Send(context.Context, model.Notification) error { return nil }

// Exec shells out to notify-send on Linux and osascript on macOS. Other
// platforms are a no-op.
type Exec struct {
	// GOOS overrides runtime.GOOS when set.
	GOOS string
	// Run executes the command; nil means exec.CommandContext(...).Run.
	Run func(ctx context.Context, name string, args ...string) error
}

func (e Exec) Send(ctx context.Context, n model.Notification) error {
	name, args, ok := e.Command(n)
	if !ok {
		return nil
	}
	run := e.Run
	if run == nil {
		run = func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		}
	}
	if err := run(ctx, name, args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Command returns the program and arguments Send would run for n.
func (e Exec) Command(n model.Notification) (string, []string, bool) {
	goos := e.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "linux":
		args := []string{n.Title, n.Message}
		if n.Urgent {
			args = append([]string{"--urgency=critical"}, args...)
		}
		return "notify-send", args, true
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Message), escapeAppleScript(n.Title))
		return "osascript", []string{"-e", script}, true
	default:
		return "", nil, false
	}
}

// Hook adapts a Notifier to a store notification hook. Each send runs on its
// own goroutine so a slow notifier never holds up the store.
func Hook(ctx context.Context, n Notifier, logger *slog.Logger) func(model.Notification) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(note model.Notification) {
		go func() {
			if err := n.Send(ctx, note); err != nil {
				logger.Warn("desktop notification failed", "notification_id", note.ID, "err", err)
			}
		}()
	}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
