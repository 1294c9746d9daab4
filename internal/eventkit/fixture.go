package eventkit

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document loaded by LoadFixture. It describes a
// complete store snapshot for development and demos.
type Fixture struct {
	Calendars []FixtureCalendar `yaml:"calendars"`
	Events    []FixtureEvent    `yaml:"events"`
	Reminders []FixtureReminder `yaml:"reminders"`
}

// FixtureCalendar mirrors Calendar in YAML form.
type FixtureCalendar struct {
	Title  string `yaml:"title"`
	Type   string `yaml:"type"`
	Color  string `yaml:"color"`
	Source string `yaml:"source"`
}

// FixtureParticipant mirrors Participant in YAML form. Status is one of
// unknown, pending, accepted, declined, tentative.
type FixtureParticipant struct {
	Name          string `yaml:"name"`
	Email         string `yaml:"email"`
	Status        string `yaml:"status"`
	IsCurrentUser bool   `yaml:"is_current_user"`
}

// FixtureEvent mirrors Event in YAML form. Times are wall-clock local,
// "2006-01-02T15:04:05" or "2006-01-02". Availability is busy, free or
// unknown (default busy).
type FixtureEvent struct {
	Title        string               `yaml:"title"`
	Calendar     string               `yaml:"calendar"`
	Start        string               `yaml:"start"`
	End          string               `yaml:"end"`
	AllDay       bool                 `yaml:"all_day"`
	Notes        string               `yaml:"notes"`
	Location     string               `yaml:"location"`
	URL          string               `yaml:"url"`
	Organizer    *FixtureParticipant  `yaml:"organizer"`
	Attendees    []FixtureParticipant `yaml:"attendees"`
	Availability string               `yaml:"availability"`
}

// FixtureReminder mirrors Reminder in YAML form. Priority is one of
// none, high, medium, low.
type FixtureReminder struct {
	Title      string `yaml:"title"`
	Calendar   string `yaml:"calendar"`
	Due        string `yaml:"due"`
	Completed  bool   `yaml:"completed"`
	Completion string `yaml:"completion"`
	Priority   string `yaml:"priority"`
	Notes      string `yaml:"notes"`
}

// LoadFixture reads a YAML fixture file and builds a MemStore from it.
// The returned store still requires an access handshake like any other.
func LoadFixture(path string) (*MemStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	return fx.Store()
}

// Store converts the fixture document into a populated MemStore.
func (fx *Fixture) Store() (*MemStore, error) {
	store := NewMemStore()

	for _, c := range fx.Calendars {
		store.AddCalendar(&Calendar{
			Title:  c.Title,
			Type:   c.Type,
			Color:  c.Color,
			Source: c.Source,
		})
	}

	for i, e := range fx.Events {
		start, err := parseFixtureTime(e.Start)
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): bad start: %w", i, e.Title, err)
		}
		end, err := parseFixtureTime(e.End)
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): bad end: %w", i, e.Title, err)
		}
		avail, err := parseAvailability(e.Availability)
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i, e.Title, err)
		}

		ev := &Event{
			Title:         e.Title,
			CalendarTitle: e.Calendar,
			Start:         start,
			End:           end,
			AllDay:        e.AllDay,
			Notes:         e.Notes,
			Location:      e.Location,
			URL:           e.URL,
			Availability:  avail,
		}
		if e.Organizer != nil {
			p, err := e.Organizer.participant()
			if err != nil {
				return nil, fmt.Errorf("event %d (%q): organizer: %w", i, e.Title, err)
			}
			ev.Organizer = p
		}
		for j, a := range e.Attendees {
			p, err := a.participant()
			if err != nil {
				return nil, fmt.Errorf("event %d (%q): attendee %d: %w", i, e.Title, j, err)
			}
			ev.Attendees = append(ev.Attendees, p)
		}
		store.AddEvent(ev)
	}

	for i, r := range fx.Reminders {
		rec := &Reminder{
			Title:         r.Title,
			CalendarTitle: r.Calendar,
			Completed:     r.Completed,
			Notes:         r.Notes,
		}
		if r.Due != "" {
			due, err := parseFixtureTime(r.Due)
			if err != nil {
				return nil, fmt.Errorf("reminder %d (%q): bad due: %w", i, r.Title, err)
			}
			rec.DueComponents = &DateComponents{
				Year:   due.Year(),
				Month:  int(due.Month()),
				Day:    due.Day(),
				Hour:   due.Hour(),
				Minute: due.Minute(),
				Second: due.Second(),
			}
		}
		if r.Completion != "" {
			completion, err := parseFixtureTime(r.Completion)
			if err != nil {
				return nil, fmt.Errorf("reminder %d (%q): bad completion: %w", i, r.Title, err)
			}
			rec.CompletionDate = &completion
		}
		priority, err := parsePriority(r.Priority)
		if err != nil {
			return nil, fmt.Errorf("reminder %d (%q): %w", i, r.Title, err)
		}
		rec.Priority = priority
		store.AddReminder(rec)
	}

	return store, nil
}

func (p *FixtureParticipant) participant() (*Participant, error) {
	status, err := parseParticipantStatus(p.Status)
	if err != nil {
		return nil, err
	}
	return &Participant{
		Name:          p.Name,
		Email:         p.Email,
		Status:        status,
		IsCurrentUser: p.IsCurrentUser,
	}, nil
}

func parseFixtureTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func parseParticipantStatus(s string) (ParticipantStatus, error) {
	switch strings.ToLower(s) {
	case "", "unknown":
		return ParticipantStatusUnknown, nil
	case "pending":
		return ParticipantStatusPending, nil
	case "accepted":
		return ParticipantStatusAccepted, nil
	case "declined":
		return ParticipantStatusDeclined, nil
	case "tentative":
		return ParticipantStatusTentative, nil
	default:
		return 0, fmt.Errorf("unrecognized participant status %q", s)
	}
}

func parseAvailability(s string) (Availability, error) {
	switch strings.ToLower(s) {
	case "", "busy":
		return AvailabilityBusy, nil
	case "free":
		return AvailabilityFree, nil
	case "unknown":
		return AvailabilityUnknown, nil
	default:
		return 0, fmt.Errorf("unrecognized availability %q", s)
	}
}

func parsePriority(s string) (int, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return PriorityNone, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return 0, fmt.Errorf("unrecognized priority %q", s)
	}
}
