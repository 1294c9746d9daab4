package query

import (
	"calmcp/internal/eventkit"
)

// RSVP labels form a closed set. StatusOrganizer is assigned by the
// projector when no attendee record represents the current user; it is
// never stored on a raw participant.
const (
	StatusAccepted  = "Accepted"
	StatusDeclined  = "Declined"
	StatusTentative = "Tentative"
	StatusPending   = "Pending"
	StatusUnknown   = "Unknown"
	StatusOrganizer = "Organizer"
)

// RSVPStatus maps a participant's raw status code to its label. A nil
// participant and any unrecognized code both map to Unknown.
func RSVPStatus(p *eventkit.Participant) string {
	if p == nil {
		return StatusUnknown
	}
	switch p.Status {
	case eventkit.ParticipantStatusAccepted:
		return StatusAccepted
	case eventkit.ParticipantStatusDeclined:
		return StatusDeclined
	case eventkit.ParticipantStatusTentative:
		return StatusTentative
	case eventkit.ParticipantStatusPending:
		return StatusPending
	case eventkit.ParticipantStatusUnknown:
		return StatusUnknown
	default:
		return StatusUnknown
	}
}

// UserRSVPStatus resolves the current user's response for an event.
// The first attendee flagged as the current user wins; with no such
// attendee, including the zero-attendee case, the user is assumed to
// be the organizer.
func UserRSVPStatus(attendees []*eventkit.Participant) string {
	for _, a := range attendees {
		if a != nil && a.IsCurrentUser {
			return RSVPStatus(a)
		}
	}
	return StatusOrganizer
}
