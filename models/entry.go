package models

type Entry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	WordCount int    `json:"wordCount"`
	Content   string `json:"content"`
	GoalHit   bool   `json:"goalHit"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type NewEntry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	GoalHit bool   `json:"goalHit"`
}

type ExistingEntry struct {
	Title   *string `json:"title"`
	Content string  `json:"content"`
	GoalHit bool    `json:"goalHit"`
}
