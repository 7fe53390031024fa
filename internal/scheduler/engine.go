package scheduler

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/agencyd/internal/clock"
	"github.com/sandeepkv93/agencyd/internal/model"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultBuffer   = 64
)

// Checker evaluates and applies due reminders at now, returning the
// notifications it created. *store.Store satisfies it.
type Checker interface {
	CheckReminders(now time.Time) []model.Notification
}

type Config struct {
	Interval time.Duration
	Buffer   int
	Logger   *slog.Logger
}

// Event reports one pass that produced notifications.
type Event struct {
	At            time.Time
	Notifications []model.Notification
}

type Engine struct {
	mu       sync.Mutex
	checker  Checker
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
	out      chan Event
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	dropped  uint64
	ticks    uint64
}

func NewEngine(checker Checker, clk clock.Clock, cfg Config) *Engine {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Engine{
		checker:  checker,
		clock:    clk,
		interval: cfg.Interval,
		logger:   cfg.Logger,
		out:      make(chan Event, cfg.Buffer),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Event {
	return e.out
}

// Start begins ticking. The first pass runs one interval after Start.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	ticker := e.clock.NewTicker(e.interval)
	go e.loop(ticker)
	e.logger.Info("reminder scheduler started", "interval", e.interval)
}

// Stop halts the loop and waits for it to exit. No pass runs after Stop
// returns. An engine cannot be restarted.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	if !e.started {
		e.mu.Unlock()
		return
	}
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
	e.logger.Info("reminder scheduler stopped", "ticks", e.Ticks(), "dropped", e.Dropped())
}

// Tick runs one pass now on the caller's goroutine. It is a no-op once the
// engine is stopped.
func (e *Engine) Tick() []model.Notification {
	if e.isStopped() {
		return nil
	}
	return e.tick(e.clock.Now())
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) Ticks() uint64 {
	return atomic.LoadUint64(&e.ticks)
}

func (e *Engine) loop(ticker clock.Ticker) {
	defer close(e.doneCh)
	defer close(e.out)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			e.tick(e.clock.Now())
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) tick(now time.Time) []model.Notification {
	atomic.AddUint64(&e.ticks, 1)
	created := e.checker.CheckReminders(now)
	if len(created) == 0 {
		return nil
	}
	e.logger.Debug("reminder pass", "at", now, "created", len(created))
	e.emit(Event{At: now, Notifications: created})
	return created
}

func (e *Engine) emit(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped && e.started {
		// out is closed, or about to be, by the loop
		atomic.AddUint64(&e.dropped, 1)
		return
	}
	select {
	case e.out <- ev:
	default:
		atomic.AddUint64(&e.dropped, 1)
	}
}

func (e *Engine) isStopped() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopped
}
