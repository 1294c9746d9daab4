package eventkit

import (
	"context"
	"time"
)

// Store is the capability interface over the native calendar and
// reminder source. Implementations must be safe for concurrent reads.
//
// Calendar name filters follow the source's membership semantics: a nil
// or empty slice means "all calendars", a non-empty slice restricts to
// calendars whose title is in the slice. An unauthorized store returns
// empty result sets, not errors.
type Store interface {
	// RequestAccess presents the user-facing consent prompt and blocks
	// until the user responds or ctx is done. It reports whether access
	// was granted. A context deadline counts as denial.
	RequestAccess(ctx context.Context) (bool, error)

	// Calendars enumerates all calendars known to the store.
	Calendars(ctx context.Context) ([]*Calendar, error)

	// Events enumerates events overlapping [start, end], inclusive on
	// both ends, restricted to the named calendars.
	Events(ctx context.Context, start, end time.Time, calendarNames []string) ([]*Event, error)

	// Reminders enumerates reminders in the named calendars.
	Reminders(ctx context.Context, calendarNames []string) ([]*Reminder, error)
}
