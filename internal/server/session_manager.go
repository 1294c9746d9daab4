package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"calmcp/internal/instrumentation"
)

// sessionInfo tracks session metadata for cleanup
type sessionInfo struct {
	lastAccess time.Time
}

// SessionTracker tracks active sessions on the streamable HTTP
// transport. Sessions that go quiet past the timeout are reaped by a
// background goroutine so the active-session gauge stays honest.
type SessionTracker struct {
	sessions       map[string]*sessionInfo
	mu             sync.RWMutex
	cleanupTicker  *time.Ticker
	cleanupDone    chan bool
	sessionTimeout time.Duration
	metrics        *instrumentation.Metrics
	logger         *slog.Logger
}

// NewSessionTracker creates a new session tracker with default timeout and logger
func NewSessionTracker() *SessionTracker {
	return NewSessionTrackerWithLogger(24*time.Hour, slog.Default())
}

// NewSessionTrackerWithTimeout creates a new session tracker with custom timeout
func NewSessionTrackerWithTimeout(timeout time.Duration) *SessionTracker {
	return NewSessionTrackerWithLogger(timeout, slog.Default())
}

// NewSessionTrackerWithLogger creates a new session tracker with custom timeout and logger
func NewSessionTrackerWithLogger(timeout time.Duration, logger *slog.Logger) *SessionTracker {
	if logger == nil {
		logger = slog.Default()
	}

	m := &SessionTracker{
		sessions:       make(map[string]*sessionInfo),
		cleanupTicker:  time.NewTicker(10 * time.Minute),
		cleanupDone:    make(chan bool),
		sessionTimeout: timeout,
		logger:         logger,
	}

	// Start cleanup goroutine
	go m.cleanupExpiredSessions()

	return m
}

// SetMetrics wires the active-session gauge. Safe to call with nil.
func (m *SessionTracker) SetMetrics(metrics *instrumentation.Metrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = metrics
}

// Touch records activity on a session, registering it on first use.
func (m *SessionTracker) Touch(sessionID string) {
	if sessionID == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if info, ok := m.sessions[sessionID]; ok {
		info.lastAccess = time.Now()
		return
	}

	m.sessions[sessionID] = &sessionInfo{lastAccess: time.Now()}
	if m.metrics != nil {
		m.metrics.IncrementActiveSessions(context.Background())
	}
}

// RemoveSession removes a session from the tracker
func (m *SessionTracker) RemoveSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return
	}
	delete(m.sessions, sessionID)
	if m.metrics != nil {
		m.metrics.DecrementActiveSessions(context.Background())
	}
}

// ListSessions returns all active session IDs
func (m *SessionTracker) ListSessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]string, 0, len(m.sessions))
	for sessionID := range m.sessions {
		sessions = append(sessions, sessionID)
	}
	return sessions
}

// cleanupExpiredSessions periodically removes expired sessions
func (m *SessionTracker) cleanupExpiredSessions() {
	for {
		select {
		case <-m.cleanupTicker.C:
			m.mu.Lock()
			now := time.Now()
			expiredCount := 0
			for sessionID, info := range m.sessions {
				if now.Sub(info.lastAccess) > m.sessionTimeout {
					delete(m.sessions, sessionID)
					if m.metrics != nil {
						m.metrics.DecrementActiveSessions(context.Background())
					}
					expiredCount++
				}
			}
			m.mu.Unlock()
			if expiredCount > 0 {
				m.logger.Info("Cleaned up expired sessions", "count", expiredCount)
			}
		case <-m.cleanupDone:
			return
		}
	}
}

// Stop stops the session cleanup goroutine
func (m *SessionTracker) Stop() {
	if m.cleanupTicker != nil {
		m.cleanupTicker.Stop()
	}
	if m.cleanupDone != nil {
		close(m.cleanupDone)
	}
}
