package models

// UserStats is recomputed from a user's entries on every request and never stored.
type UserStats struct {
	TotalEntries  int `json:"totalEntries"`
	TotalWords    int `json:"totalWords"`
	DaysJournaled int `json:"daysJournaled"`
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

type WordGoal struct {
	Base          int    `json:"base"`
	Words         int    `json:"words"`
	DaysSinceLast int    `json:"daysSinceLast"`
	Date          string `json:"date"`
}
