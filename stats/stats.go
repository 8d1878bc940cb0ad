// Package stats derives journaling statistics (word counts, days journaled and
// streaks) from a user's entries.
//
// Every function here is pure: callers pass the reference instant and the
// calendar policy explicitly, so results never depend on the host clock or
// the host time zone.
package stats

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/writewithwrabit/journal/models"
)

// ErrInvalidTimestamp is matched by every TimestampError.
var ErrInvalidTimestamp = errors.New("invalid entry timestamp")

// TimestampError identifies an entry whose createdAt is missing or unparseable.
type TimestampError struct {
	EntryID string
	Value   string
	Err     error
}

func (e *TimestampError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("entry %q: %v", e.EntryID, e.Err)
	}
	return fmt.Sprintf("entry %q has invalid createdAt %q: %v", e.EntryID, e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error {
	return e.Err
}

func (e *TimestampError) Is(target error) bool {
	return target == ErrInvalidTimestamp
}

// Compute returns the statistics for entries as seen at now.
//
// The current streak counts backward from today only: if today has no entry
// it is 0, even when yesterday does. dateOf maps every timestamp, now
// included, to a calendar date; nil means the calendar of now's location.
func Compute(entries []*models.Entry, now time.Time, dateOf DateFunc) (*models.UserStats, error) {
	if dateOf == nil {
		dateOf = InLocation(now.Location())
	}

	days, err := journaledDays(entries, dateOf)
	if err != nil {
		return nil, err
	}

	words := 0
	for _, entry := range entries {
		words += WordCount(entry.Content)
	}

	s := &models.UserStats{
		TotalEntries:  len(entries),
		TotalWords:    words,
		DaysJournaled: len(days),
		CurrentStreak: streakEndingOn(days, dateOf(now)),
		LongestStreak: longestStreak(days),
	}
	if s.LongestStreak < s.CurrentStreak {
		s.LongestStreak = s.CurrentStreak
	}

	return s, nil
}

// WordCount counts the maximal runs of non-whitespace characters in content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// EntriesInMonth keeps the entries whose calendar date falls in the given
// month, preserving their order.
func EntriesInMonth(entries []*models.Entry, year int, month time.Month, dateOf DateFunc) ([]*models.Entry, error) {
	matched := []*models.Entry{}
	for _, entry := range entries {
		day, err := entryDate(entry, dateOf)
		if err != nil {
			return nil, err
		}

		if day.Year == year && day.Month == month {
			matched = append(matched, entry)
		}
	}

	return matched, nil
}

func journaledDays(entries []*models.Entry, dateOf DateFunc) (map[civil.Date]struct{}, error) {
	days := make(map[civil.Date]struct{}, len(entries))
	for _, entry := range entries {
		day, err := entryDate(entry, dateOf)
		if err != nil {
			return nil, err
		}
		days[day] = struct{}{}
	}

	return days, nil
}

func latest(days map[civil.Date]struct{}) (last civil.Date, ok bool) {
	for day := range days {
		if !ok || day.After(last) {
			last = day
			ok = true
		}
	}

	return last, ok
}

func entryDate(entry *models.Entry, dateOf DateFunc) (civil.Date, error) {
	if entry == nil {
		return civil.Date{}, &TimestampError{Err: errors.New("nil entry")}
	}
	if strings.TrimSpace(entry.CreatedAt) == "" {
		return civil.Date{}, &TimestampError{EntryID: entry.ID, Err: errors.New("missing createdAt")}
	}

	t, err := ParseTimestamp(entry.CreatedAt)
	if err != nil {
		return civil.Date{}, &TimestampError{EntryID: entry.ID, Value: entry.CreatedAt, Err: err}
	}

	return dateOf(t), nil
}

// streakEndingOn counts consecutive journaled days walking back from day.
func streakEndingOn(days map[civil.Date]struct{}, day civil.Date) int {
	streak := 0
	for {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
		day = day.AddDays(-1)
	}
}

func longestStreak(days map[civil.Date]struct{}) int {
	sorted := make([]civil.Date, 0, len(days))
	for day := range days {
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	longest, run := 0, 0
	for i, day := range sorted {
		if i > 0 && day.DaysSince(sorted[i-1]) == 1 {
			run++
		} else {
			run = 1
		}

		if run > longest {
			longest = run
		}
	}

	return longest
}
