package reminder_tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"calmcp/internal/eventkit"
	"calmcp/internal/query"
	"calmcp/internal/server"
)

func newTestServerContext(t *testing.T, ctx context.Context, store *eventkit.MemStore, now time.Time) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(ctx, store, nil)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	sc.Engine().SetNow(func() time.Time { return now })
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func requestWithArgs(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("expected result content, got none")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestReminderQueryFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected query.ReminderQuery
	}{
		{
			name:     "empty args use defaults",
			args:     map[string]interface{}{},
			expected: query.ReminderQuery{DaysAhead: query.DefaultDaysAhead},
		},
		{
			name: "all parameters",
			args: map[string]interface{}{
				"start_date":        "2024-12-25",
				"end_date":          "2024-12-31",
				"calendar_names":    []interface{}{"Errands"},
				"include_completed": true,
				"days_ahead":        float64(14),
			},
			expected: query.ReminderQuery{
				StartDate:        "2024-12-25",
				EndDate:          "2024-12-31",
				CalendarNames:    []string{"Errands"},
				IncludeCompleted: true,
				DaysAhead:        14,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reminderQueryFromArgs(tt.args)
			if got.StartDate != tt.expected.StartDate ||
				got.EndDate != tt.expected.EndDate ||
				got.IncludeCompleted != tt.expected.IncludeCompleted ||
				got.DaysAhead != tt.expected.DaysAhead {
				t.Errorf("reminderQueryFromArgs() = %+v, expected %+v", got, tt.expected)
			}
			if len(got.CalendarNames) != len(tt.expected.CalendarNames) {
				t.Errorf("calendar names = %v, expected %v", got.CalendarNames, tt.expected.CalendarNames)
			}
		})
	}
}

func TestHandleGetReminders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.Local)

	store := eventkit.NewMemStore()
	store.AddReminder(&eventkit.Reminder{
		Title:         "File expenses",
		CalendarTitle: "Work",
		Priority:      eventkit.PriorityHigh,
		DueComponents: &eventkit.DateComponents{
			Year: 2024, Month: 12, Day: 23,
			Hour: 17, Minute: 0, Second: 0,
		},
	})
	store.AddReminder(&eventkit.Reminder{
		Title:         "Done already",
		CalendarTitle: "Work",
		Completed:     true,
		DueComponents: &eventkit.DateComponents{
			Year: 2024, Month: 12, Day: 21,
			Hour: eventkit.ComponentUnset, Minute: eventkit.ComponentUnset, Second: eventkit.ComponentUnset,
		},
	})
	sc := newTestServerContext(t, ctx, store, now)

	handler := handleGetReminders(sc)
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var reminders []query.ReminderSummary
	if err := json.Unmarshal([]byte(resultText(t, result)), &reminders); err != nil {
		t.Fatalf("failed to decode reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(reminders))
	}
	r := reminders[0]
	if r.Title != "File expenses" {
		t.Errorf("title = %q, expected %q", r.Title, "File expenses")
	}
	if r.Priority != "High" {
		t.Errorf("priority = %q, expected High", r.Priority)
	}
	if r.DueDateStr == nil || *r.DueDateStr != "2024-12-23T17:00:00" {
		t.Errorf("due_date_str = %v, expected 2024-12-23T17:00:00", r.DueDateStr)
	}
}

func TestHandleGetReminders_IncludeCompleted(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.Local)

	store := eventkit.NewMemStore()
	completedAt := time.Date(2024, 12, 21, 9, 30, 0, 0, time.Local)
	store.AddReminder(&eventkit.Reminder{
		Title:          "Done already",
		CalendarTitle:  "Work",
		Completed:      true,
		CompletionDate: &completedAt,
		DueComponents: &eventkit.DateComponents{
			Year: 2024, Month: 12, Day: 21,
			Hour: eventkit.ComponentUnset, Minute: eventkit.ComponentUnset, Second: eventkit.ComponentUnset,
		},
	})
	sc := newTestServerContext(t, ctx, store, now)

	handler := handleGetReminders(sc)
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{
		"include_completed": true,
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var reminders []query.ReminderSummary
	if err := json.Unmarshal([]byte(resultText(t, result)), &reminders); err != nil {
		t.Fatalf("failed to decode reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(reminders))
	}
	if !reminders[0].IsCompleted {
		t.Error("expected is_completed to be true")
	}
	if reminders[0].CompletionDateStr == nil {
		t.Error("expected completion_date_str to be set")
	}
}

func TestHandleGetReminders_NoDueDateDroppedWhenFiltered(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 12, 20, 10, 0, 0, 0, time.Local)

	store := eventkit.NewMemStore()
	store.AddReminder(&eventkit.Reminder{
		Title:         "Someday",
		CalendarTitle: "Backlog",
	})
	sc := newTestServerContext(t, ctx, store, now)

	handler := handleGetReminders(sc)

	// Unfiltered query keeps the undated reminder.
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var reminders []query.ReminderSummary
	if err := json.Unmarshal([]byte(resultText(t, result)), &reminders); err != nil {
		t.Fatalf("failed to decode reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("expected undated reminder in unfiltered query, got %d", len(reminders))
	}

	// An explicit date filter drops it.
	result, err = handler(ctx, requestWithArgs(map[string]interface{}{
		"start_date": "2024-12-20",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &reminders); err != nil {
		t.Fatalf("failed to decode reminders: %v", err)
	}
	if len(reminders) != 0 {
		t.Errorf("expected undated reminder dropped under date filter, got %d", len(reminders))
	}
}

func TestHandleGetReminders_InvalidDate(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t, ctx, eventkit.NewMemStore(), time.Now())

	handler := handleGetReminders(sc)
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{
		"end_date": "25-12-2024",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for malformed date")
	}
}
