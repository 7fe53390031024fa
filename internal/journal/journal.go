// Package journal keeps an append-only SQLite record of every notification
// the store emits, so reminders can be reviewed after the session ends.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/agencyd/internal/model"
)

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var ErrNotFound = errors.New("journal: not found")

// Entry is a journaled notification. Read state is not kept.
type Entry struct {
	ID        string
	Title     string
	Message   string
	Urgent    bool
	CreatedAt time.Time
}

type ListFilter struct {
	// Limit caps the result; zero means no cap.
	Limit      int
	UrgentOnly bool
}

type row struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Message   string `db:"message"`
	Urgent    bool   `db:"urgent"`
	CreatedAt string `db:"created_at"`
}

type Journal struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Open opens or creates the journal database at path and applies migrations.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	j, err := New(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// New wraps an open database and applies migrations.
func New(db *sqlx.DB, logger *slog.Logger) (*Journal, error) {
	if db == nil {
		return nil, errors.New("journal: nil db")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := MigrateUp(db); err != nil {
		return nil, err
	}
	return &Journal{db: db, logger: logger}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores n. Recording the same id twice keeps the first copy.
func (j *Journal) Record(ctx context.Context, n model.Notification) error {
	_, err := j.db.NamedExecContext(ctx, `
		INSERT OR IGNORE INTO notifications (id, title, message, urgent, created_at)
		VALUES (:id, :title, :message, :urgent, :created_at)`,
		row{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Urgent:    n.Urgent,
			CreatedAt: n.CreatedAt.UTC().Format(timeLayout),
		},
	)
	if err != nil {
		return fmt.Errorf("record notification %s: %w", n.ID, err)
	}
	return nil
}

// Hook adapts Record to a store notification hook. Failures are logged, not
// returned, since the store has no error path for hooks.
func (j *Journal) Hook(ctx context.Context) func(model.Notification) {
	return func(n model.Notification) {
		if err := j.Record(ctx, n); err != nil {
			j.logger.Error("journal write failed", "notification_id", n.ID, "err", err)
		}
	}
}

func (j *Journal) Get(ctx context.Context, id string) (Entry, error) {
	var r row
	err := j.db.GetContext(ctx, &r, `
		SELECT id, title, message, urgent, created_at
		FROM notifications WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return r.entry()
}

// List returns entries newest first.
func (j *Journal) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	query := `SELECT id, title, message, urgent, created_at FROM notifications`
	args := make([]any, 0, 2)
	if filter.UrgentOnly {
		query += ` WHERE urgent = 1`
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	var rows []row
	if err := j.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.entry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM notifications`); err != nil {
		return 0, err
	}
	return n, nil
}

func (r row) entry() (Entry, error) {
	created, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at for %s: %w", r.ID, err)
	}
	return Entry{
		ID:        r.ID,
		Title:     r.Title,
		Message:   r.Message,
		Urgent:    r.Urgent,
		CreatedAt: created,
	}, nil
}
