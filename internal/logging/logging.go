// Package logging builds the process logger from runtime configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sandeepkv93/agencyd/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a text logger at cfg's level. With log.path set, output is
// appended to that file and the returned Closer closes it. Otherwise output
// goes to fallback, or is discarded when fallback is nil, which keeps the
// TUI's screen clean.
func New(cfg config.RuntimeConfig, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	if cfg.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), f, nil
	}

	if fallback == nil {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}
	return slog.New(slog.NewTextHandler(fallback, opts)), nopCloser{}, nil
}
