package models

type Insight struct {
	ID        string   `json:"id"`
	EntryID   string   `json:"entryId"`
	UserID    string   `json:"userId"`
	MoodScore int      `json:"moodScore"`
	Topics    []string `json:"topics"`
	People    []string `json:"people"`
	Places    []string `json:"places"`
	CreatedAt string   `json:"createdAt"`
}

type Prompt struct {
	Text   string `json:"prompt"`
	Source string `json:"source"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message  string         `json:"message"`
	History  []*ChatMessage `json:"history"`
	UserName string         `json:"userName"`
}

type ChatReply struct {
	Message string `json:"message"`
}
