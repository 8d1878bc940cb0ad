package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/writewithwrabit/journal/models"
)

// completionServer answers every chat completion with reply and records the
// last request it saw.
func completionServer(t *testing.T, reply string) (*httptest.Server, *openai.ChatCompletionRequest) {
	t.Helper()

	seen := &openai.ChatCompletionRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(seen))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"chatcmpl-1","object":"chat.completion","model":%q,"choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, seen.Model, reply)
	}))
	t.Cleanup(srv.Close)

	return srv, seen
}

func TestGeneratePrompt(t *testing.T) {
	srv, seen := completionServer(t, "  What made the walk feel different today?\n")
	client := NewClient("test-key", srv.URL, "")

	prompt, err := client.GeneratePrompt(context.Background(), "Went for a long walk by the river.")

	require.NoError(t, err)
	assert.Equal(t, "What made the walk feel different today?", prompt)
	assert.Equal(t, DefaultModel, seen.Model)
	require.Len(t, seen.Messages, 1)
	assert.Contains(t, seen.Messages[0].Content, "Went for a long walk by the river.")
}

func TestAnalyzeEntry(t *testing.T) {
	reply := "```json\n{\"mood_score\": 9, \"topics\": [\"work\"], \"people\": [\"Sam\"]}\n```"
	srv, seen := completionServer(t, reply)
	client := NewClient("test-key", srv.URL, "llama-3.3-70b-versatile")

	analysis, err := client.AnalyzeEntry(context.Background(), "Shipped the release with Sam.")

	require.NoError(t, err)
	assert.Equal(t, 5, analysis.MoodScore)
	assert.Equal(t, []string{"work"}, analysis.Topics)
	assert.Equal(t, []string{"Sam"}, analysis.People)
	assert.Equal(t, []string{}, analysis.Places)
	assert.Equal(t, "llama-3.3-70b-versatile", seen.Model)
	assert.Equal(t, 300, seen.MaxTokens)
}

func TestAnalyzeEntryRejectsProse(t *testing.T) {
	srv, _ := completionServer(t, "I could not analyze that.")
	client := NewClient("test-key", srv.URL, "")

	_, err := client.AnalyzeEntry(context.Background(), "...")

	assert.Error(t, err)
}

func TestChatSendsRecentHistoryOnly(t *testing.T) {
	srv, seen := completionServer(t, "That sounds like a big day, Alex!")
	client := NewClient("test-key", srv.URL, "")

	var history []*models.ChatMessage
	for i := 0; i < 10; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, &models.ChatMessage{Role: role, Content: fmt.Sprintf("message %d", i)})
	}

	reply, err := client.Chat(context.Background(), "Alex", history, "I got the job")

	require.NoError(t, err)
	assert.Equal(t, "That sounds like a big day, Alex!", reply)
	require.Len(t, seen.Messages, 8)
	assert.Equal(t, openai.ChatMessageRoleSystem, seen.Messages[0].Role)
	assert.Contains(t, seen.Messages[0].Content, "Alex")
	assert.Equal(t, "message 4", seen.Messages[1].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, seen.Messages[2].Role)
	assert.Equal(t, "I got the job", seen.Messages[7].Content)
}

func TestChatRequiresMessage(t *testing.T) {
	client := NewClient("test-key", "http://127.0.0.1:0", "")

	_, err := client.Chat(context.Background(), "Alex", nil, "   ")

	assert.Equal(t, ErrEmptyMessage, err)
}

func TestCompletionAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL, "")

	_, err := client.GeneratePrompt(context.Background(), "anything")

	assert.Error(t, err)
}

func TestRandomPrompt(t *testing.T) {
	prompt := RandomPrompt(rand.New(rand.NewSource(666)))

	assert.Contains(t, fallbackPrompts, prompt)
	assert.Contains(t, fallbackPrompts, RandomPrompt(nil))
}

func TestReflectionPromptTruncatesLongContent(t *testing.T) {
	long := make([]rune, promptContentLimit+50)
	for i := range long {
		long[i] = 'é'
	}

	prompt := reflectionPrompt(string(long))

	assert.NotContains(t, prompt, string(long))
	assert.Contains(t, prompt, string(long[:promptContentLimit]))
}
