package eventkit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"calmcp/internal/logging"
)

// DefaultAccessTimeout bounds how long the consent prompt is allowed to
// sit unanswered before the request counts as denied.
const DefaultAccessTimeout = 30 * time.Second

// AccessGate caches the result of the authorization handshake for the
// lifetime of the process. The flag moves false to true at most once;
// once granted the store is never re-prompted. While denied, each call
// performs the handshake again so a later grant can still succeed.
type AccessGate struct {
	store   Store
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	granted bool
}

// NewAccessGate creates a gate around store using DefaultAccessTimeout.
// A nil logger falls back to slog.Default.
func NewAccessGate(store Store, logger *slog.Logger) *AccessGate {
	return NewAccessGateWithTimeout(store, logger, DefaultAccessTimeout)
}

// NewAccessGateWithTimeout creates a gate with an explicit handshake
// timeout. Used by tests to avoid the full 30 second wait.
func NewAccessGateWithTimeout(store Store, logger *slog.Logger, timeout time.Duration) *AccessGate {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessGate{
		store:   store,
		timeout: timeout,
		logger:  logger,
	}
}

// Ensure reports whether access to the store is granted, performing the
// bounded handshake if the cached flag is not yet set. Denial and
// handshake errors both report false; neither is an error to the
// caller, queries simply see an empty store.
func (g *AccessGate) Ensure(ctx context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.granted {
		return true
	}

	handshakeCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	granted, err := g.store.RequestAccess(handshakeCtx)
	if err != nil {
		g.logger.Warn("calendar access request failed", logging.Err(err))
		return false
	}
	if !granted {
		g.logger.Warn("calendar access denied")
		return false
	}

	g.granted = true
	g.logger.Info("calendar access granted")
	return true
}

// Granted reports the cached flag without triggering a handshake.
func (g *AccessGate) Granted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.granted
}
