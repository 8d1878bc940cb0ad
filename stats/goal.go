package stats

import (
	"time"

	"github.com/writewithwrabit/journal/models"
)

// Goal holds what the daily word goal is scaled from.
type Goal struct {
	Base          int
	RecentStreak  int // run ending on the last journaled day
	DaysSinceLast int // -1 when the user has never written
}

// GoalFor derives the word goal inputs for a user with the given base goal.
func GoalFor(entries []*models.Entry, base int, now time.Time, dateOf DateFunc) (Goal, error) {
	if dateOf == nil {
		dateOf = InLocation(now.Location())
	}

	days, err := journaledDays(entries, dateOf)
	if err != nil {
		return Goal{}, err
	}

	goal := Goal{Base: base, DaysSinceLast: -1}

	last, ok := latest(days)
	if !ok {
		return goal, nil
	}

	goal.DaysSinceLast = dateOf(now).DaysSince(last)
	if goal.DaysSinceLast < 0 {
		// Entries dated after today still count as written today.
		goal.DaysSinceLast = 0
	}
	goal.RecentStreak = streakEndingOn(days, last)

	return goal, nil
}

// Words scales Base by a multiplier in tenths. New and lapsed writers start
// at 10%, which grows by 10% per streak day up to the full goal. Someone who
// broke a streak of 10 days or more loses 10% per missed day instead of
// starting over.
func (g Goal) Words() int {
	tenths := 1

	switch {
	case g.DaysSinceLast < 0:
	case g.DaysSinceLast <= 1:
		tenths = g.RecentStreak
		if g.DaysSinceLast == 1 {
			// Writing today extends the streak.
			tenths++
		}
	case g.RecentStreak >= 10:
		tenths = 10 - g.DaysSinceLast
	}

	if tenths > 10 {
		tenths = 10
	}
	if tenths < 1 {
		tenths = 1
	}

	return g.Base * tenths / 10
}
