package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with calendar titles.

// maxCalendarLabelLength bounds calendar labels so a pathological title
// cannot blow up label storage.
const maxCalendarLabelLength = 64

// SanitizeCalendarLabel normalizes a calendar title for use as a metric
// label. Empty titles become "unknown" and long titles are truncated.
//
// Example:
//
//	SanitizeCalendarLabel("Work")      // "Work"
//	SanitizeCalendarLabel("  Home  ")  // "Home"
//	SanitizeCalendarLabel("")          // "unknown"
func SanitizeCalendarLabel(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "unknown"
	}
	if len(title) > maxCalendarLabelLength {
		return title[:maxCalendarLabelLength]
	}
	return title
}

// Store operation types for calendar store metrics.
// Status and Access constants are defined in config.go.
const (
	OperationEvents    = "events"
	OperationReminders = "reminders"
	OperationCalendars = "calendars"
	OperationSearch    = "search"
	OperationToday     = "today"
)
