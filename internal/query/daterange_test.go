package query

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2024, 12, 25, 14, 30, 0, 0, time.Local)

func TestResolveRangeDefaults(t *testing.T) {
	rng, err := ResolveRange("", "", DefaultDaysAhead, testNow)
	if err != nil {
		t.Fatalf("ResolveRange failed: %v", err)
	}

	wantStart := time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local)
	if !rng.Start.Equal(wantStart) {
		t.Errorf("start = %v, want today at midnight %v", rng.Start, wantStart)
	}

	wantEnd := time.Date(2025, 1, 1, 23, 59, 59, 999999000, time.Local)
	if !rng.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", rng.End, wantEnd)
	}
}

func TestResolveRange(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		daysAhead int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "date-only start resolves to midnight",
			startDate: "2024-12-25",
			daysAhead: 7,
			wantStart: time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, 1, 1, 23, 59, 59, 999999000, time.Local),
		},
		{
			name:      "start with time is preserved",
			startDate: "2024-12-25T09:30:00",
			daysAhead: 1,
			wantStart: time.Date(2024, 12, 25, 9, 30, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 12, 26, 23, 59, 59, 999999000, time.Local),
		},
		{
			name:      "end on same day as start becomes end of day",
			startDate: "2024-12-25",
			endDate:   "2024-12-25",
			daysAhead: 7,
			wantStart: time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 12, 25, 23, 59, 59, 999999000, time.Local),
		},
		{
			name:      "same-day end keeps end-of-day even with explicit time",
			startDate: "2024-12-25T08:00:00",
			endDate:   "2024-12-25T12:00:00",
			daysAhead: 7,
			wantStart: time.Date(2024, 12, 25, 8, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 12, 25, 23, 59, 59, 999999000, time.Local),
		},
		{
			name:      "date-only end on later day becomes end of that day",
			startDate: "2024-12-25",
			endDate:   "2024-12-27",
			daysAhead: 7,
			wantStart: time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 12, 27, 23, 59, 59, 999999000, time.Local),
		},
		{
			name:      "end with non-midnight time on later day is preserved",
			startDate: "2024-12-25",
			endDate:   "2024-12-27T18:15:00",
			daysAhead: 7,
			wantStart: time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 12, 27, 18, 15, 0, 0, time.Local),
		},
		{
			name:      "days ahead zero yields same-day end of day",
			startDate: "2024-12-25",
			daysAhead: 0,
			wantStart: time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 12, 25, 23, 59, 59, 999999000, time.Local),
		},
		{
			name:      "negative days ahead yields end before start",
			startDate: "2024-12-25",
			daysAhead: -2,
			wantStart: time.Date(2024, 12, 25, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 12, 23, 23, 59, 59, 999999000, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := ResolveRange(tt.startDate, tt.endDate, tt.daysAhead, testNow)
			if err != nil {
				t.Fatalf("ResolveRange failed: %v", err)
			}
			if !rng.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", rng.Start, tt.wantStart)
			}
			if !rng.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", rng.End, tt.wantEnd)
			}
		})
	}
}

func TestResolveRangeMalformedDates(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
	}{
		{name: "garbage start", startDate: "not-a-date"},
		{name: "garbage end", startDate: "2024-12-25", endDate: "soon"},
		{name: "wrong separator", startDate: "25/12/2024"},
		{name: "month out of range", startDate: "2024-13-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveRange(tt.startDate, tt.endDate, DefaultDaysAhead, testNow)
			if err == nil {
				t.Fatal("expected error for malformed date")
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("error = %v, want ErrInvalidDate", err)
			}
		})
	}
}
