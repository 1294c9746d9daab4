package server

import (
	"context"
	"log/slog"
	"sync"

	"calmcp/internal/eventkit"
	"calmcp/internal/instrumentation"
	"calmcp/internal/query"
	"calmcp/internal/timezone"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx       context.Context
	cancel    context.CancelFunc
	store     eventkit.Store
	gate      *eventkit.AccessGate
	engine    *query.Engine
	timezones *timezone.Service
	metrics   *instrumentation.Metrics
	audit     *instrumentation.AuditLogger
	logger    *slog.Logger
	mu        sync.RWMutex
	shutdown  bool
}

// NewServerContext creates a new server context over the given calendar
// store. The access gate and query engine are built here so that every
// tool shares one monotonic access grant.
func NewServerContext(ctx context.Context, store eventkit.Store, logger *slog.Logger) (*ServerContext, error) {
	if logger == nil {
		logger = slog.Default()
	}
	shutdownCtx, cancel := context.WithCancel(ctx)

	gate := eventkit.NewAccessGate(store, logger)
	engine := query.NewEngine(store, gate, logger)

	return &ServerContext{
		ctx:       shutdownCtx,
		cancel:    cancel,
		store:     store,
		gate:      gate,
		engine:    engine,
		timezones: timezone.NewService(logger),
		logger:    logger,
		shutdown:  false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Store returns the underlying calendar store
func (sc *ServerContext) Store() eventkit.Store {
	return sc.store
}

// AccessGate returns the shared access gate
func (sc *ServerContext) AccessGate() *eventkit.AccessGate {
	return sc.gate
}

// Engine returns the query engine shared by all tools
func (sc *ServerContext) Engine() *query.Engine {
	return sc.engine
}

// TimeZones returns the timezone service
func (sc *ServerContext) TimeZones() *timezone.Service {
	return sc.timezones
}

// Logger returns the server logger
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// SetMetrics wires the metrics recorder into the context and the query
// engine. Safe to call with nil to disable recording.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
	if m != nil {
		sc.engine.SetMetrics(m)
	}
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// not wired.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger wires the audit logger into the context.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.audit = al
}

// AuditLogger returns the audit logger, or nil when auditing is not
// wired.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.audit
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
