package scope

import (
	"sync"

	"github.com/aalemi-dev/scopekit/client"
	"github.com/aalemi-dev/scopekit/logger"
	"github.com/aalemi-dev/scopekit/observability"
	"github.com/aalemi-dev/scopekit/propagation"
	"github.com/zoobzio/clockz"
)

// Manager owns the process-wide global scope and creates the per-execution
// Local state that holds isolation and current scopes.
type Manager struct {
	cfg      Config
	log      *logger.LoggerClient
	observer observability.Observer
	clock    clockz.Clock
	gen      *propagation.Generator

	mu     sync.Mutex
	global *Scope
}

// Option configures a Manager.
type Option func(*Manager)

// WithObserver reports captures and scoped blocks to o.
func WithObserver(o observability.Observer) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

// WithClock sets the clock used for breadcrumb timestamps.
func WithClock(c clockz.Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithGenerator sets the identifier generator used for propagation
// contexts.
func WithGenerator(g *propagation.Generator) Option {
	return func(m *Manager) {
		if g != nil {
			m.gen = g
		}
	}
}

// NewManager returns a Manager. A nil log discards output.
func NewManager(cfg Config, log *logger.LoggerClient, opts ...Option) *Manager {
	if log == nil {
		log = logger.NewNopLoggerClient()
	}
	m := &Manager{
		cfg:   cfg,
		log:   log,
		clock: clockz.RealClock,
		gen:   propagation.DefaultGenerator(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GlobalScope returns the process-wide scope, creating it on first use.
// The first caller to take the lock creates it and every later caller sees
// that instance.
func (m *Manager) GlobalScope() *Scope {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.global == nil {
		m.global = m.NewScope()
	}
	return m.global
}

// ResetGlobal drops the global scope; the next GlobalScope call creates a
// fresh one.
func (m *Manager) ResetGlobal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.global = nil
}

// BindClient binds c to the global scope.
func (m *Manager) BindClient(c client.Client) {
	m.GlobalScope().BindClient(c)
}

// NewScope returns an empty scope using the manager's settings.
func (m *Manager) NewScope() *Scope {
	return newScope(m.cfg.maxBreadcrumbs(), m.clock, m.gen)
}

// NewLocal returns fresh per-execution state. The isolation scope is created
// empty on first use.
func (m *Manager) NewLocal() *Local {
	return &Local{mgr: m}
}

// Generator returns the identifier generator.
func (m *Manager) Generator() *propagation.Generator {
	return m.gen
}

// Clock returns the manager clock.
func (m *Manager) Clock() clockz.Clock {
	return m.clock
}

// Logger returns the manager logger.
func (m *Manager) Logger() *logger.LoggerClient {
	return m.log
}

func (m *Manager) notify(ctx observability.OperationContext) {
	ctx.Component = observability.ComponentScope
	observability.Notify(m.observer, ctx)
}
