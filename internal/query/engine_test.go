package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calmcp/internal/eventkit"
)

func newTestEngine(t *testing.T, store *eventkit.MemStore) *Engine {
	t.Helper()
	gate := eventkit.NewAccessGateWithTimeout(store, nil, 100*time.Millisecond)
	engine := NewEngine(store, gate, nil)
	engine.SetNow(func() time.Time { return testNow })
	return engine
}

func addEvent(store *eventkit.MemStore, title string, start, end time.Time, opts func(*eventkit.Event)) {
	ev := &eventkit.Event{
		Title:         title,
		CalendarTitle: "Work",
		Start:         start,
		End:           end,
	}
	if opts != nil {
		opts(ev)
	}
	store.AddEvent(ev)
}

func TestEngineEventsBasicScenario(t *testing.T) {
	store := eventkit.NewMemStore()
	addEvent(store, "Team Meeting",
		time.Date(2024, 12, 25, 10, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 11, 0, 0, 0, time.Local), nil)

	engine := newTestEngine(t, store)
	events, err := engine.Events(context.Background(), EventQuery{
		StartDate: "2024-12-25",
		EndDate:   "2024-12-25",
		DaysAhead: DefaultDaysAhead,
	})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "Team Meeting", events[0].Title)
	assert.Equal(t, 0, events[0].AttendeeCount)
	assert.Equal(t, "Organizer", events[0].UserRSVPStatus)
}

func TestEngineEventsCalendarFilterQuirk(t *testing.T) {
	store := eventkit.NewMemStore()
	addEvent(store, "Work thing",
		time.Date(2024, 12, 25, 10, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 11, 0, 0, 0, time.Local), nil)
	addEvent(store, "Home thing",
		time.Date(2024, 12, 25, 12, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 13, 0, 0, 0, time.Local),
		func(ev *eventkit.Event) { ev.CalendarTitle = "Personal" })

	engine := newTestEngine(t, store)
	base := EventQuery{StartDate: "2024-12-25", EndDate: "2024-12-25", DaysAhead: DefaultDaysAhead}

	withNil := base
	withNil.CalendarNames = nil
	gotNil, err := engine.Events(context.Background(), withNil)
	require.NoError(t, err)

	withEmpty := base
	withEmpty.CalendarNames = []string{}
	gotEmpty, err := engine.Events(context.Background(), withEmpty)
	require.NoError(t, err)

	// nil and the empty list are both "no filter".
	assert.Equal(t, gotNil, gotEmpty)
	assert.Len(t, gotNil, 2)

	withBlank := base
	withBlank.CalendarNames = []string{""}
	gotBlank, err := engine.Events(context.Background(), withBlank)
	require.NoError(t, err)
	assert.Empty(t, gotBlank)
}

func TestEngineEventsAllDayOnly(t *testing.T) {
	store := eventkit.NewMemStore()
	addEvent(store, "Holiday",
		time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 23, 59, 59, 0, time.Local),
		func(ev *eventkit.Event) { ev.AllDay = true })
	addEvent(store, "Standup",
		time.Date(2024, 12, 25, 9, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 9, 15, 0, 0, time.Local), nil)

	engine := newTestEngine(t, store)
	events, err := engine.Events(context.Background(), EventQuery{
		StartDate:  "2024-12-25",
		EndDate:    "2024-12-25",
		DaysAhead:  DefaultDaysAhead,
		AllDayOnly: true,
	})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "Holiday", events[0].Title)
}

func TestEngineEventsBusyOnlyFailsOpen(t *testing.T) {
	store := eventkit.NewMemStore()
	addEvent(store, "Busy block",
		time.Date(2024, 12, 25, 9, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 10, 0, 0, 0, time.Local),
		func(ev *eventkit.Event) { ev.Availability = eventkit.AvailabilityBusy })
	addEvent(store, "Free block",
		time.Date(2024, 12, 25, 10, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 11, 0, 0, 0, time.Local),
		func(ev *eventkit.Event) { ev.Availability = eventkit.AvailabilityFree })
	addEvent(store, "Unreadable block",
		time.Date(2024, 12, 25, 11, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 12, 0, 0, 0, time.Local),
		func(ev *eventkit.Event) { ev.Availability = eventkit.AvailabilityUnknown })

	engine := newTestEngine(t, store)
	events, err := engine.Events(context.Background(), EventQuery{
		StartDate: "2024-12-25",
		EndDate:   "2024-12-25",
		DaysAhead: DefaultDaysAhead,
		BusyOnly:  true,
	})
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "Busy block", events[0].Title)
	assert.Equal(t, "Unreadable block", events[1].Title)
}

func TestEngineEventsAttendeeFilters(t *testing.T) {
	store := eventkit.NewMemStore()
	addEvent(store, "Meeting 1",
		time.Date(2024, 12, 25, 9, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 10, 0, 0, 0, time.Local),
		func(ev *eventkit.Event) {
			ev.Attendees = []*eventkit.Participant{
				{Name: "Alice Smith", Email: "alice@example.com", Status: eventkit.ParticipantStatusAccepted},
			}
		})
	addEvent(store, "Meeting 2",
		time.Date(2024, 12, 25, 10, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 11, 0, 0, 0, time.Local),
		func(ev *eventkit.Event) {
			ev.Attendees = []*eventkit.Participant{
				{Name: "Bob Jones", Email: "bob@example.com", Status: eventkit.ParticipantStatusDeclined},
			}
		})

	engine := newTestEngine(t, store)
	base := EventQuery{StartDate: "2024-12-25", EndDate: "2024-12-25", DaysAhead: DefaultDaysAhead}

	t.Run("status filter", func(t *testing.T) {
		q := base
		q.AttendeeStatusFilter = []string{"Accepted"}
		events, err := engine.Events(context.Background(), q)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Meeting 1", events[0].Title)
	})

	t.Run("name pattern matches name", func(t *testing.T) {
		q := base
		q.AttendeeNamePattern = "alice"
		events, err := engine.Events(context.Background(), q)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Meeting 1", events[0].Title)
	})

	t.Run("name pattern matches email", func(t *testing.T) {
		q := base
		q.AttendeeNamePattern = "BOB@EXAMPLE"
		events, err := engine.Events(context.Background(), q)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Meeting 2", events[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		q := base
		q.AttendeeNamePattern = "charlie"
		events, err := engine.Events(context.Background(), q)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestEngineEventsOrderIsStable(t *testing.T) {
	store := eventkit.NewMemStore()
	titles := []string{"First", "Second", "Third", "Fourth"}
	for i, title := range titles {
		addEvent(store, title,
			time.Date(2024, 12, 25, 9+i, 0, 0, 0, time.Local),
			time.Date(2024, 12, 25, 10+i, 0, 0, 0, time.Local), nil)
	}

	engine := newTestEngine(t, store)
	events, err := engine.Events(context.Background(), EventQuery{
		StartDate: "2024-12-25",
		EndDate:   "2024-12-25",
		DaysAhead: DefaultDaysAhead,
	})
	require.NoError(t, err)

	require.Len(t, events, len(titles))
	for i, title := range titles {
		assert.Equal(t, title, events[i].Title)
	}
}

func TestEngineEventsInvalidDate(t *testing.T) {
	engine := newTestEngine(t, eventkit.NewMemStore())

	_, err := engine.Events(context.Background(), EventQuery{StartDate: "whenever", DaysAhead: DefaultDaysAhead})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestEngineDeniedAccessYieldsEmpty(t *testing.T) {
	store := eventkit.NewMemStore()
	store.SetGrant(false)
	addEvent(store, "Hidden",
		time.Date(2024, 12, 25, 10, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 11, 0, 0, 0, time.Local), nil)

	engine := newTestEngine(t, store)

	events, err := engine.Events(context.Background(), EventQuery{DaysAhead: DefaultDaysAhead})
	require.NoError(t, err)
	assert.Empty(t, events)

	reminders, err := engine.Reminders(context.Background(), ReminderQuery{DaysAhead: DefaultDaysAhead})
	require.NoError(t, err)
	assert.Empty(t, reminders)

	calendars, err := engine.Calendars(context.Background())
	require.NoError(t, err)
	assert.Empty(t, calendars)
}

func TestEngineReminders(t *testing.T) {
	store := eventkit.NewMemStore()
	store.AddReminder(&eventkit.Reminder{
		Title:         "Due today",
		CalendarTitle: "Personal",
		DueComponents: &eventkit.DateComponents{Year: 2024, Month: 12, Day: 25, Hour: 18},
	})
	store.AddReminder(&eventkit.Reminder{
		Title:         "No due date",
		CalendarTitle: "Personal",
	})
	completion := time.Date(2024, 12, 24, 20, 0, 0, 0, time.Local)
	store.AddReminder(&eventkit.Reminder{
		Title:          "Already done",
		CalendarTitle:  "Personal",
		DueComponents:  &eventkit.DateComponents{Year: 2024, Month: 12, Day: 25},
		Completed:      true,
		CompletionDate: &completion,
	})

	engine := newTestEngine(t, store)

	t.Run("default range includes undated", func(t *testing.T) {
		reminders, err := engine.Reminders(context.Background(), ReminderQuery{DaysAhead: DefaultDaysAhead})
		require.NoError(t, err)
		require.Len(t, reminders, 2)
		assert.Equal(t, "Due today", reminders[0].Title)
		assert.Equal(t, "No due date", reminders[1].Title)
	})

	t.Run("date filter hides undated", func(t *testing.T) {
		reminders, err := engine.Reminders(context.Background(), ReminderQuery{
			StartDate: "2024-12-25",
			EndDate:   "2024-12-25",
			DaysAhead: DefaultDaysAhead,
		})
		require.NoError(t, err)
		require.Len(t, reminders, 1)
		assert.Equal(t, "Due today", reminders[0].Title)
	})

	t.Run("include completed", func(t *testing.T) {
		reminders, err := engine.Reminders(context.Background(), ReminderQuery{
			StartDate:        "2024-12-25",
			EndDate:          "2024-12-25",
			IncludeCompleted: true,
			DaysAhead:        DefaultDaysAhead,
		})
		require.NoError(t, err)
		require.Len(t, reminders, 2)
		assert.True(t, reminders[1].IsCompleted)
		require.NotNil(t, reminders[1].CompletionDateStr)
	})
}

func TestEngineSearch(t *testing.T) {
	store := eventkit.NewMemStore()
	addEvent(store, "Project kickoff",
		time.Date(2024, 12, 27, 10, 0, 0, 0, time.Local),
		time.Date(2024, 12, 27, 11, 0, 0, 0, time.Local), nil)
	addEvent(store, "Lunch",
		time.Date(2024, 12, 27, 12, 0, 0, 0, time.Local),
		time.Date(2024, 12, 27, 13, 0, 0, 0, time.Local),
		func(ev *eventkit.Event) { ev.Location = "Project X cafeteria" })
	store.AddReminder(&eventkit.Reminder{
		Title:         "Send project status",
		CalendarTitle: "Work",
		DueComponents: &eventkit.DateComponents{Year: 2024, Month: 12, Day: 30},
		Completed:     true,
	})
	store.AddReminder(&eventkit.Reminder{
		Title:         "Water plants",
		CalendarTitle: "Personal",
	})

	engine := newTestEngine(t, store)
	results, err := engine.Search(context.Background(), SearchQuery{
		Query:           "project",
		SearchEvents:    true,
		SearchReminders: true,
	})
	require.NoError(t, err)

	// Two events (title and location matches), then the completed
	// reminder; search surfaces completed reminders.
	require.Len(t, results, 3)

	first, ok := results[0].(EventSearchResult)
	require.True(t, ok)
	assert.Equal(t, "event", first.Type)
	assert.Equal(t, "Project kickoff", first.Title)

	second, ok := results[1].(EventSearchResult)
	require.True(t, ok)
	assert.Equal(t, "Lunch", second.Title)

	third, ok := results[2].(ReminderSearchResult)
	require.True(t, ok)
	assert.Equal(t, "reminder", third.Type)
	assert.Equal(t, "Send project status", third.Title)
}

func TestEngineSearchScopes(t *testing.T) {
	store := eventkit.NewMemStore()
	addEvent(store, "Budget review",
		time.Date(2024, 12, 27, 10, 0, 0, 0, time.Local),
		time.Date(2024, 12, 27, 11, 0, 0, 0, time.Local), nil)
	store.AddReminder(&eventkit.Reminder{Title: "Budget spreadsheet", CalendarTitle: "Work"})

	engine := newTestEngine(t, store)

	eventsOnly, err := engine.Search(context.Background(), SearchQuery{Query: "budget", SearchEvents: true})
	require.NoError(t, err)
	require.Len(t, eventsOnly, 1)

	remindersOnly, err := engine.Search(context.Background(), SearchQuery{Query: "budget", SearchReminders: true})
	require.NoError(t, err)
	require.Len(t, remindersOnly, 1)
	_, ok := remindersOnly[0].(ReminderSearchResult)
	assert.True(t, ok)
}

func TestEngineSearchUsesWiderWindow(t *testing.T) {
	store := eventkit.NewMemStore()
	// 20 days out: outside the 7-day listing default, inside the
	// 30-day search window.
	addEvent(store, "Conference talk",
		time.Date(2025, 1, 14, 10, 0, 0, 0, time.Local),
		time.Date(2025, 1, 14, 11, 0, 0, 0, time.Local), nil)

	engine := newTestEngine(t, store)

	listed, err := engine.Events(context.Background(), EventQuery{DaysAhead: DefaultDaysAhead})
	require.NoError(t, err)
	assert.Empty(t, listed)

	found, err := engine.Search(context.Background(), SearchQuery{Query: "conference", SearchEvents: true})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestEngineToday(t *testing.T) {
	store := eventkit.NewMemStore()
	addEvent(store, "Christmas brunch",
		time.Date(2024, 12, 25, 11, 0, 0, 0, time.Local),
		time.Date(2024, 12, 25, 12, 0, 0, 0, time.Local), nil)
	addEvent(store, "Tomorrow sync",
		time.Date(2024, 12, 26, 9, 0, 0, 0, time.Local),
		time.Date(2024, 12, 26, 10, 0, 0, 0, time.Local), nil)
	store.AddReminder(&eventkit.Reminder{
		Title:         "Wrap presents",
		CalendarTitle: "Personal",
		DueComponents: &eventkit.DateComponents{Year: 2024, Month: 12, Day: 25, Hour: 9},
	})
	store.AddReminder(&eventkit.Reminder{
		Title:         "Already wrapped",
		CalendarTitle: "Personal",
		DueComponents: &eventkit.DateComponents{Year: 2024, Month: 12, Day: 25},
		Completed:     true,
	})

	engine := newTestEngine(t, store)
	summary, err := engine.Today(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-12-25", summary.Date)
	assert.Equal(t, 1, summary.EventsCount)
	require.Len(t, summary.Events, 1)
	assert.Equal(t, "Christmas brunch", summary.Events[0].Title)
	assert.Equal(t, 1, summary.RemindersCount)
	require.Len(t, summary.Reminders, 1)
	assert.Equal(t, "Wrap presents", summary.Reminders[0].Title)
}
