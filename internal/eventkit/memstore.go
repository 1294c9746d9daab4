package eventkit

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-memory Store used for fixtures and tests. It
// mirrors the native store's semantics: the window predicate is
// inclusive on both ends, calendar filters are title-set membership,
// and reads before a granted access request return empty results.
type MemStore struct {
	mu        sync.RWMutex
	calendars []*Calendar
	events    []*Event
	reminders []*Reminder

	grant        bool
	granted      bool
	accessDelay  time.Duration
	accessChecks int
}

// NewMemStore returns an empty store that grants access on request.
func NewMemStore() *MemStore {
	return &MemStore{grant: true}
}

// SetGrant configures the response to the next access request.
func (m *MemStore) SetGrant(grant bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grant = grant
}

// SetAccessDelay makes RequestAccess block for d before answering,
// simulating a slow consent prompt.
func (m *MemStore) SetAccessDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessDelay = d
}

// AccessChecks returns how many times RequestAccess has been called.
func (m *MemStore) AccessChecks() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accessChecks
}

// AddCalendar registers a calendar.
func (m *MemStore) AddCalendar(cal *Calendar) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calendars = append(m.calendars, cal)
}

// AddEvent registers an event. Enumeration order is insertion order.
func (m *MemStore) AddEvent(ev *Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
}

// AddReminder registers a reminder. Enumeration order is insertion order.
func (m *MemStore) AddReminder(r *Reminder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = append(m.reminders, r)
}

// Reset removes all records and clears the granted flag.
func (m *MemStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calendars = nil
	m.events = nil
	m.reminders = nil
	m.granted = false
	m.accessChecks = 0
}

// RequestAccess implements Store.
func (m *MemStore) RequestAccess(ctx context.Context) (bool, error) {
	m.mu.Lock()
	m.accessChecks++
	delay := m.accessDelay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, nil
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.grant {
		m.granted = true
	}
	return m.grant, nil
}

// Calendars implements Store.
func (m *MemStore) Calendars(_ context.Context) ([]*Calendar, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.granted {
		return nil, nil
	}
	out := make([]*Calendar, len(m.calendars))
	copy(out, m.calendars)
	return out, nil
}

// Events implements Store. An event overlaps the window when its start
// is at or before end and its end is at or after start.
func (m *MemStore) Events(_ context.Context, start, end time.Time, calendarNames []string) ([]*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.granted {
		return nil, nil
	}

	var out []*Event
	for _, ev := range m.events {
		if ev.Start.After(end) || ev.End.Before(start) {
			continue
		}
		if !calendarMatches(calendarNames, ev.CalendarTitle) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// Reminders implements Store.
func (m *MemStore) Reminders(_ context.Context, calendarNames []string) ([]*Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.granted {
		return nil, nil
	}

	var out []*Reminder
	for _, r := range m.reminders {
		if !calendarMatches(calendarNames, r.CalendarTitle) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// calendarMatches applies the title-set filter. An empty set means no
// filter; a set containing only unknown titles matches nothing.
func calendarMatches(names []string, title string) bool {
	if len(names) == 0 {
		return true
	}
	for _, n := range names {
		if n == title {
			return true
		}
	}
	return false
}
