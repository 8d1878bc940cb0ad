package stats

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateFunc buckets an instant into a calendar date.
type DateFunc func(time.Time) civil.Date

// InLocation buckets instants by their wall-clock date in loc. A nil loc is UTC.
func InLocation(loc *time.Location) DateFunc {
	if loc == nil {
		loc = time.UTC
	}

	return func(t time.Time) civil.Date {
		return civil.DateOf(t.In(loc))
	}
}

// LoadLocation resolves an IANA zone name, falling back to def when name is empty.
func LoadLocation(name string, def *time.Location) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if def == nil {
			return time.UTC, nil
		}
		return def, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}

	return loc, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02T15:04:05.999999999-07",
}

// ParseTimestamp parses the text forms createdAt is stored and sent in:
// RFC 3339 and Postgres timestamptz output.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, firstErr
}
