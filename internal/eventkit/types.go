package eventkit

import (
	"fmt"
	"time"
)

// ParticipantStatus is the raw RSVP code carried by a participant record.
type ParticipantStatus int

// Participant status codes as exposed by the native store.
const (
	ParticipantStatusUnknown   ParticipantStatus = 0
	ParticipantStatusPending   ParticipantStatus = 1
	ParticipantStatusAccepted  ParticipantStatus = 2
	ParticipantStatusDeclined  ParticipantStatus = 3
	ParticipantStatusTentative ParticipantStatus = 4
)

// Availability is the raw busy/free code on an event.
type Availability int

// Availability codes. AvailabilityUnknown marks an event whose
// availability could not be read; the busy filter keeps such events.
const (
	AvailabilityBusy    Availability = 0
	AvailabilityFree    Availability = 1
	AvailabilityUnknown Availability = -1
)

// Reminder priority codes as exposed by the native store. Any code
// outside this set is treated as no priority.
const (
	PriorityNone   = 0
	PriorityHigh   = 1
	PriorityMedium = 5
	PriorityLow    = 9
)

// Calendar identifies a single calendar in the store. Titles are not
// guaranteed unique across sources.
type Calendar struct {
	Title  string
	Type   string
	Color  string
	Source string
}

// Participant is one attendee or organizer record on an event.
type Participant struct {
	Name          string
	Email         string
	Status        ParticipantStatus
	IsCurrentUser bool
}

// Event is a raw event record as enumerated from the store.
type Event struct {
	Title         string
	CalendarTitle string
	Start         time.Time
	End           time.Time
	AllDay        bool
	Notes         string
	Location      string
	URL           string
	Organizer     *Participant
	Attendees     []*Participant
	Availability  Availability
}

// Reminder is a raw reminder record as enumerated from the store.
// DueComponents is nil when the reminder carries no due date.
type Reminder struct {
	Title          string
	CalendarTitle  string
	DueComponents  *DateComponents
	CompletionDate *time.Time
	Completed      bool
	Priority       int
	Notes          string
}

// ComponentUnset is the sentinel for a date component the store did not
// populate.
const ComponentUnset = -1

// DateComponents is a partially-specified wall-clock date as stored on
// a reminder. Hour, minute and second may be ComponentUnset.
type DateComponents struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Time reconstructs an instant in loc from the components. Unset hour,
// minute and second default to zero. Returns an error when the date
// portion is missing or does not name a real calendar day.
func (dc *DateComponents) Time(loc *time.Location) (time.Time, error) {
	if dc.Year <= 0 || dc.Month < 1 || dc.Month > 12 || dc.Day < 1 || dc.Day > 31 {
		return time.Time{}, fmt.Errorf("incomplete date components %d-%d-%d", dc.Year, dc.Month, dc.Day)
	}

	hour, minute, second := dc.Hour, dc.Minute, dc.Second
	if hour == ComponentUnset {
		hour = 0
	}
	if minute == ComponentUnset {
		minute = 0
	}
	if second == ComponentUnset {
		second = 0
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return time.Time{}, fmt.Errorf("invalid time components %d:%d:%d", hour, minute, second)
	}

	t := time.Date(dc.Year, time.Month(dc.Month), dc.Day, hour, minute, second, 0, loc)
	// time.Date normalizes out-of-range days (Feb 30 becomes Mar 1),
	// which would silently shift the due date.
	if t.Day() != dc.Day || t.Month() != time.Month(dc.Month) {
		return time.Time{}, fmt.Errorf("day %d out of range for month %d", dc.Day, dc.Month)
	}
	return t, nil
}
