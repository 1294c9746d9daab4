package timezone

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"
)

// ErrUnknownTimezone marks a zone name the database does not know.
var ErrUnknownTimezone = errors.New("unknown timezone")

// ErrInvalidDatetime marks a datetime string that could not be parsed.
var ErrInvalidDatetime = errors.New("invalid datetime string")

// isoLayout matches aware ISO 8601 output with a numeric offset.
// Fractional seconds are trimmed when zero.
const isoLayout = "2006-01-02T15:04:05.999999-07:00"

// datetimeLayouts are the accepted naive input shapes for Convert.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CurrentTimeResult is the wire shape of a current-time lookup.
type CurrentTimeResult struct {
	Timezone  string  `json:"timezone"`
	Datetime  string  `json:"datetime"`
	Timestamp float64 `json:"timestamp"`
}

// ConversionResult is the wire shape of a zone conversion.
type ConversionResult struct {
	FromTimezone      string `json:"from_timezone"`
	ToTimezone        string `json:"to_timezone"`
	OriginalDatetime  string `json:"original_datetime"`
	ConvertedDatetime string `json:"converted_datetime"`
}

// Service answers time queries. It carries no state beyond a clock.
type Service struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service. A nil logger falls back to
// slog.Default.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger,
		now:    time.Now,
	}
}

// SetNow overrides the clock. Used by tests.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// CurrentTime returns the current instant expressed in the named zone.
func (s *Service) CurrentTime(zoneName string) (CurrentTimeResult, error) {
	loc, err := loadZone(zoneName)
	if err != nil {
		return CurrentTimeResult{}, err
	}

	now := s.now().In(loc)
	return CurrentTimeResult{
		Timezone:  zoneName,
		Datetime:  now.Format(isoLayout),
		Timestamp: float64(now.UnixNano()) / float64(time.Second),
	}, nil
}

// Convert reinterprets datetimeStr as wall-clock time in fromZone and
// expresses the resulting instant in toZone. An input that carries its
// own offset has that offset replaced by fromZone, not composed with
// it; only the written wall-clock components are kept.
func (s *Service) Convert(datetimeStr, fromZone, toZone string) (ConversionResult, error) {
	fromLoc, err := loadZone(fromZone)
	if err != nil {
		return ConversionResult{}, err
	}
	toLoc, err := loadZone(toZone)
	if err != nil {
		return ConversionResult{}, err
	}

	wall, err := parseWallClock(datetimeStr)
	if err != nil {
		return ConversionResult{}, err
	}

	original := time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), fromLoc)
	converted := original.In(toLoc)

	return ConversionResult{
		FromTimezone:      fromZone,
		ToTimezone:        toZone,
		OriginalDatetime:  original.Format(isoLayout),
		ConvertedDatetime: converted.Format(isoLayout),
	}, nil
}

// ListZones enumerates known zone identifiers. A region prefix
// restricts the result to identifiers under "region/".
func (s *Service) ListZones(region string) []string {
	if region == "" {
		out := make([]string, len(zoneNames))
		copy(out, zoneNames)
		return out
	}

	prefix := region + "/"
	out := []string{}
	for _, name := range zoneNames {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

func loadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// parseWallClock parses datetimeStr and returns its literal wall-clock
// components. Offset-carrying input keeps the components as written;
// the offset itself is discarded by the caller.
func parseWallClock(s string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDatetime, s)
}
