package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"calmcp/internal/eventkit"
	"calmcp/internal/logging"
)

// StoreMetrics records the outcome of raw store fetches. Implemented
// by the instrumentation package; nil disables recording.
type StoreMetrics interface {
	RecordStoreOperation(ctx context.Context, operation, status string, duration time.Duration)
}

// Engine orchestrates all queries against the store: range resolution,
// the access gate, projection and the post-filter pipeline. It holds
// no per-query state and is safe for concurrent use.
type Engine struct {
	store   eventkit.Store
	gate    *eventkit.AccessGate
	logger  *slog.Logger
	metrics StoreMetrics
	now     func() time.Time
}

// NewEngine creates an engine over store guarded by gate. A nil logger
// falls back to slog.Default.
func NewEngine(store eventkit.Store, gate *eventkit.AccessGate, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  store,
		gate:   gate,
		logger: logger,
		now:    time.Now,
	}
}

// SetMetrics enables store-operation metrics.
func (e *Engine) SetMetrics(m StoreMetrics) {
	e.metrics = m
}

// SetNow overrides the clock. Used by tests to pin "today".
func (e *Engine) SetNow(now func() time.Time) {
	e.now = now
}

// EventQuery holds the parameters of an event listing. Zero values
// mean "not supplied" except DaysAhead, which callers must default to
// DefaultDaysAhead when the parameter is absent so that an explicit
// zero keeps its same-day meaning.
type EventQuery struct {
	StartDate            string
	EndDate              string
	CalendarNames        []string
	DaysAhead            int
	AttendeeNamePattern  string
	AttendeeStatusFilter []string
	AllDayOnly           bool
	BusyOnly             bool
}

// ReminderQuery holds the parameters of a reminder listing.
type ReminderQuery struct {
	StartDate        string
	EndDate          string
	CalendarNames    []string
	IncludeCompleted bool
	DaysAhead        int
}

// SearchQuery holds the parameters of a full-text search.
type SearchQuery struct {
	Query           string
	SearchEvents    bool
	SearchReminders bool
	StartDate       string
	EndDate         string
}

// EventSearchResult tags an event hit with its entity kind.
type EventSearchResult struct {
	Type string `json:"type"`
	EventSummary
}

// ReminderSearchResult tags a reminder hit with its entity kind.
type ReminderSearchResult struct {
	Type string `json:"type"`
	ReminderSummary
}

// TodaySummary is the combined view returned by the today tool.
type TodaySummary struct {
	Date           string            `json:"date"`
	EventsCount    int               `json:"events_count"`
	Events         []EventSummary    `json:"events"`
	RemindersCount int               `json:"reminders_count"`
	Reminders      []ReminderSummary `json:"reminders"`
}

// Events lists events in the resolved range with all post-filters
// applied, in store enumeration order. A denied access handshake
// yields an empty result, not an error.
func (e *Engine) Events(ctx context.Context, q EventQuery) ([]EventSummary, error) {
	rng, err := ResolveRange(q.StartDate, q.EndDate, q.DaysAhead, e.now())
	if err != nil {
		return nil, err
	}

	if !e.gate.Ensure(ctx) {
		return []EventSummary{}, nil
	}

	raw, err := e.fetchEvents(ctx, rng, q.CalendarNames)
	if err != nil {
		return nil, err
	}

	type projected struct {
		raw     *eventkit.Event
		summary EventSummary
	}
	items := make([]projected, 0, len(raw))
	for _, ev := range raw {
		items = append(items, projected{raw: ev, summary: ProjectEvent(ev)})
	}

	if q.AllDayOnly {
		kept := items[:0]
		for _, it := range items {
			if it.summary.AllDay {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	if q.BusyOnly {
		kept := items[:0]
		for _, it := range items {
			// Unreadable availability fails open: the event is kept.
			if it.raw.Availability == eventkit.AvailabilityBusy || it.raw.Availability == eventkit.AvailabilityUnknown {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	if q.AttendeeNamePattern != "" {
		pattern := strings.ToLower(q.AttendeeNamePattern)
		kept := items[:0]
		for _, it := range items {
			if attendeeMatchesName(it.summary.Attendees, pattern) {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	if len(q.AttendeeStatusFilter) > 0 {
		wanted := make(map[string]bool, len(q.AttendeeStatusFilter))
		for _, s := range q.AttendeeStatusFilter {
			wanted[s] = true
		}
		kept := items[:0]
		for _, it := range items {
			if attendeeMatchesStatus(it.summary.Attendees, wanted) {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	results := make([]EventSummary, 0, len(items))
	for _, it := range items {
		results = append(results, it.summary)
	}
	return results, nil
}

// Reminders lists reminders restricted to the resolved range and
// calendars, with completion and date filtering folded into the
// projection step.
func (e *Engine) Reminders(ctx context.Context, q ReminderQuery) ([]ReminderSummary, error) {
	rng, err := ResolveRange(q.StartDate, q.EndDate, q.DaysAhead, e.now())
	if err != nil {
		return nil, err
	}

	if !e.gate.Ensure(ctx) {
		return []ReminderSummary{}, nil
	}

	raw, err := e.fetchReminders(ctx, q.CalendarNames)
	if err != nil {
		return nil, err
	}

	dateFiltered := q.StartDate != "" || q.EndDate != ""
	results := make([]ReminderSummary, 0, len(raw))
	for _, r := range raw {
		if summary, keep := ProjectReminder(r, rng, dateFiltered, q.IncludeCompleted); keep {
			results = append(results, summary)
		}
	}
	return results, nil
}

// Calendars lists all calendars known to the store.
func (e *Engine) Calendars(ctx context.Context) ([]CalendarInfo, error) {
	if !e.gate.Ensure(ctx) {
		return []CalendarInfo{}, nil
	}

	start := time.Now()
	raw, err := e.store.Calendars(ctx)
	e.recordStoreOp(ctx, "calendars", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	results := make([]CalendarInfo, 0, len(raw))
	for _, cal := range raw {
		results = append(results, ProjectCalendar(cal))
	}
	return results, nil
}

// Search runs a case-insensitive substring search over events and
// reminders. Without explicit date bounds the window is widened to
// SearchDaysAhead days, and completed reminders are included so that
// finished work remains findable. Events come first, then reminders,
// each in their engine's native order.
func (e *Engine) Search(ctx context.Context, q SearchQuery) ([]any, error) {
	needle := strings.ToLower(q.Query)
	results := []any{}

	if q.SearchEvents {
		events, err := e.Events(ctx, EventQuery{
			StartDate: q.StartDate,
			EndDate:   q.EndDate,
			DaysAhead: SearchDaysAhead,
		})
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			if containsFold(ev.Title, needle) || containsFold(ev.Notes, needle) || containsFold(ev.Location, needle) {
				results = append(results, EventSearchResult{Type: "event", EventSummary: ev})
			}
		}
	}

	if q.SearchReminders {
		reminders, err := e.Reminders(ctx, ReminderQuery{
			StartDate:        q.StartDate,
			EndDate:          q.EndDate,
			IncludeCompleted: true,
			DaysAhead:        SearchDaysAhead,
		})
		if err != nil {
			return nil, err
		}
		for _, r := range reminders {
			if containsFold(r.Title, needle) || containsFold(r.Notes, needle) {
				results = append(results, ReminderSearchResult{Type: "reminder", ReminderSummary: r})
			}
		}
	}

	return results, nil
}

// Today builds the combined same-day view: today's events plus
// incomplete reminders due today.
func (e *Engine) Today(ctx context.Context) (TodaySummary, error) {
	today := e.now().Format("2006-01-02")

	events, err := e.Events(ctx, EventQuery{
		StartDate: today,
		EndDate:   today,
		DaysAhead: DefaultDaysAhead,
	})
	if err != nil {
		return TodaySummary{}, err
	}

	reminders, err := e.Reminders(ctx, ReminderQuery{
		StartDate: today,
		EndDate:   today,
		DaysAhead: DefaultDaysAhead,
	})
	if err != nil {
		return TodaySummary{}, err
	}

	return TodaySummary{
		Date:           today,
		EventsCount:    len(events),
		Events:         events,
		RemindersCount: len(reminders),
		Reminders:      reminders,
	}, nil
}

func (e *Engine) fetchEvents(ctx context.Context, rng DateRange, calendars []string) ([]*eventkit.Event, error) {
	start := time.Now()
	raw, err := e.store.Events(ctx, rng.Start, rng.End, calendars)
	e.recordStoreOp(ctx, "events", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	e.logger.Debug("fetched events",
		slog.Int("count", len(raw)),
		slog.Time("range_start", rng.Start),
		slog.Time("range_end", rng.End))
	return raw, nil
}

func (e *Engine) fetchReminders(ctx context.Context, calendars []string) ([]*eventkit.Reminder, error) {
	start := time.Now()
	raw, err := e.store.Reminders(ctx, calendars)
	e.recordStoreOp(ctx, "reminders", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reminders: %w", err)
	}
	e.logger.Debug("fetched reminders", slog.Int("count", len(raw)))
	return raw, nil
}

func (e *Engine) recordStoreOp(ctx context.Context, operation string, err error, duration time.Duration) {
	if e.metrics == nil {
		return
	}
	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
	}
	e.metrics.RecordStoreOperation(ctx, operation, status, duration)
}

func attendeeMatchesName(attendees []AttendeeInfo, lowerPattern string) bool {
	for _, a := range attendees {
		if strings.Contains(strings.ToLower(a.Name), lowerPattern) ||
			strings.Contains(strings.ToLower(a.Email), lowerPattern) {
			return true
		}
	}
	return false
}

func attendeeMatchesStatus(attendees []AttendeeInfo, wanted map[string]bool) bool {
	for _, a := range attendees {
		if wanted[a.Status] {
			return true
		}
	}
	return false
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
