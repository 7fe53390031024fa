// Package session ties the reminder scheduler to the login lifecycle: a
// fresh engine starts on login and is torn down on logout or shutdown.
package session

import (
	"log/slog"
	"sync"

	"github.com/sandeepkv93/agencyd/internal/clock"
	"github.com/sandeepkv93/agencyd/internal/scheduler"
	"github.com/sandeepkv93/agencyd/internal/store"
)

type Manager struct {
	mu     sync.Mutex
	store  *store.Store
	clock  clock.Clock
	cfg    scheduler.Config
	logger *slog.Logger
	engine *scheduler.Engine
}

func NewManager(s *store.Store, clk clock.Clock, cfg scheduler.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	return &Manager{store: s, clock: clk, cfg: cfg, logger: logger}
}

// Login starts the session and its scheduler. Calling it while logged in
// returns the running engine unchanged.
func (m *Manager) Login(user string) *scheduler.Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engine != nil {
		m.logger.Debug("login ignored, session already active", "user", user)
		return m.engine
	}
	m.store.Login(user)
	m.engine = scheduler.NewEngine(m.store, m.clock, m.cfg)
	m.engine.Start()
	return m.engine
}

// Logout stops the scheduler before clearing the session, so no pass can
// run against the ended session.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engine == nil {
		return
	}
	m.engine.Stop()
	m.engine = nil
	m.store.Logout()
}

// Engine returns the running engine, or nil while logged out.
func (m *Manager) Engine() *scheduler.Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine
}

func (m *Manager) Store() *store.Store {
	return m.store
}

// Close stops any running engine without touching session state.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engine != nil {
		m.engine.Stop()
		m.engine = nil
	}
}
