package query

import (
	"time"

	"calmcp/internal/eventkit"
)

// timeLayout is the wall-clock serialization used for all event and
// reminder timestamps.
const timeLayout = "2006-01-02T15:04:05"

// AttendeeInfo is the wire representation of one event attendee.
// IsOrganizer is always false: the underlying store does not reliably
// expose organizer-as-attendee, so it is never asserted true.
type AttendeeInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Status        string `json:"status"`
	IsCurrentUser bool   `json:"is_current_user"`
	IsOrganizer   bool   `json:"is_organizer"`
}

// EventSummary is the wire representation of one event.
type EventSummary struct {
	Title          string         `json:"title"`
	Calendar       string         `json:"calendar"`
	StartDateStr   string         `json:"start_date_str"`
	EndDateStr     string         `json:"end_date_str"`
	AllDay         bool           `json:"all_day"`
	Notes          string         `json:"notes"`
	Location       string         `json:"location"`
	MeetingURL     *string        `json:"meeting_url"`
	Organizer      string         `json:"organizer"`
	UserRSVPStatus string         `json:"user_rsvp_status"`
	Attendees      []AttendeeInfo `json:"attendees"`
	AttendeeCount  int            `json:"attendee_count"`
}

// ReminderSummary is the wire representation of one reminder. Due and
// completion timestamps are null when absent.
type ReminderSummary struct {
	Title             string  `json:"title"`
	Calendar          string  `json:"calendar"`
	DueDateStr        *string `json:"due_date_str"`
	CompletionDateStr *string `json:"completion_date_str"`
	IsCompleted       bool    `json:"is_completed"`
	Priority          string  `json:"priority"`
	Notes             string  `json:"notes"`
}

// CalendarInfo is the wire representation of one calendar.
type CalendarInfo struct {
	Title  string `json:"title"`
	Type   string `json:"type"`
	Color  string `json:"color"`
	Source string `json:"source"`
}

// ProjectEvent converts one raw event into its wire representation.
func ProjectEvent(ev *eventkit.Event) EventSummary {
	attendees := make([]AttendeeInfo, 0, len(ev.Attendees))
	for _, a := range ev.Attendees {
		if a == nil {
			continue
		}
		attendees = append(attendees, AttendeeInfo{
			Name:          a.Name,
			Email:         a.Email,
			Status:        RSVPStatus(a),
			IsCurrentUser: a.IsCurrentUser,
		})
	}

	organizer := ""
	if ev.Organizer != nil {
		organizer = ev.Organizer.Name
	}

	return EventSummary{
		Title:          ev.Title,
		Calendar:       ev.CalendarTitle,
		StartDateStr:   ev.Start.Format(timeLayout),
		EndDateStr:     ev.End.Format(timeLayout),
		AllDay:         ev.AllDay,
		Notes:          ev.Notes,
		Location:       ev.Location,
		MeetingURL:     ExtractMeetingURL(ev.URL, ev.Notes),
		Organizer:      organizer,
		UserRSVPStatus: UserRSVPStatus(ev.Attendees),
		Attendees:      attendees,
		AttendeeCount:  len(attendees),
	}
}

// ProjectReminder converts one raw reminder into its wire
// representation, folding in the completion and date-range drop rules.
// The second return value reports whether the reminder survives.
//
// A reminder is dropped when it is completed and completed items were
// not requested, when its due date falls outside the range, or when it
// has no due date and the caller supplied an explicit date filter.
// Reminders without due dates only surface in default-range queries.
func ProjectReminder(r *eventkit.Reminder, rng DateRange, dateFiltered, includeCompleted bool) (ReminderSummary, bool) {
	if r.Completed && !includeCompleted {
		return ReminderSummary{}, false
	}

	// A reconstruction failure degrades to a null due date instead of
	// failing the whole query.
	var due *time.Time
	if r.DueComponents != nil {
		if t, err := r.DueComponents.Time(rng.Start.Location()); err == nil {
			due = &t
		}
	}

	if due != nil {
		if due.Before(rng.Start) || due.After(rng.End) {
			return ReminderSummary{}, false
		}
	} else if dateFiltered {
		return ReminderSummary{}, false
	}

	summary := ReminderSummary{
		Title:       r.Title,
		Calendar:    r.CalendarTitle,
		IsCompleted: r.Completed,
		Priority:    priorityLabel(r.Priority),
		Notes:       r.Notes,
	}
	if due != nil {
		s := due.Format(timeLayout)
		summary.DueDateStr = &s
	}
	if r.CompletionDate != nil {
		s := r.CompletionDate.Format(timeLayout)
		summary.CompletionDateStr = &s
	}
	return summary, true
}

// priorityLabel maps the raw priority code. Codes outside the known
// set collapse to None.
func priorityLabel(code int) string {
	switch code {
	case eventkit.PriorityHigh:
		return "High"
	case eventkit.PriorityMedium:
		return "Medium"
	case eventkit.PriorityLow:
		return "Low"
	default:
		return "None"
	}
}

// ProjectCalendar converts one raw calendar into its wire
// representation.
func ProjectCalendar(cal *eventkit.Calendar) CalendarInfo {
	return CalendarInfo{
		Title:  cal.Title,
		Type:   cal.Type,
		Color:  cal.Color,
		Source: cal.Source,
	}
}
