// Package ai generates writing prompts, entry analyses and companion replies
// through an OpenAI compatible chat completion API (Groq by default).
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/writewithwrabit/journal/models"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-8b-instant"

	// Only the most recent chat messages are sent along with a new one.
	chatHistoryLimit = 6
)

var (
	ErrNoChoices    = errors.New("completion returned no choices")
	ErrEmptyMessage = errors.New("message is required")
)

// Analysis is the structured summary extracted from one entry.
type Analysis struct {
	MoodScore int      `json:"mood_score"`
	Topics    []string `json:"topics"`
	People    []string `json:"people"`
	Places    []string `json:"places"`
}

type Client struct {
	api   *openai.Client
	model string
}

func NewClient(apiKey, baseURL, model string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(baseURL, "/")

	if model == "" {
		model = DefaultModel
	}

	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: model,
	}
}

// GeneratePrompt asks for one reflection question about content.
func (c *Client) GeneratePrompt(ctx context.Context, content string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: reflectionPrompt(content)},
	}

	return c.complete(ctx, messages, 0.8, 120)
}

// AnalyzeEntry extracts mood, topics, people and places from content.
func (c *Client) AnalyzeEntry(ctx context.Context, content string) (*Analysis, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: analysisPrompt(content)},
	}

	reply, err := c.complete(ctx, messages, 0.3, 300)
	if err != nil {
		return nil, err
	}

	return parseAnalysis(reply)
}

// Chat answers message as a journaling companion addressing userName.
func (c *Client) Chat(ctx context.Context, userName string, history []*models.ChatMessage, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: companionPrompt(userName),
	})
	for _, m := range history {
		if m == nil {
			continue
		}

		role := openai.ChatMessageRoleUser
		if m.Role == openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	return c.complete(ctx, messages, 0.8, 200)
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// parseAnalysis reads the JSON object out of a completion, tolerating code
// fences and surrounding prose.
func parseAnalysis(reply string) (*Analysis, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("analysis is not JSON: %q", reply)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(reply[start:end+1]), &analysis); err != nil {
		return nil, fmt.Errorf("analysis is not JSON: %w", err)
	}

	if analysis.MoodScore > 5 {
		analysis.MoodScore = 5
	}
	if analysis.MoodScore < -5 {
		analysis.MoodScore = -5
	}
	if analysis.Topics == nil {
		analysis.Topics = []string{}
	}
	if analysis.People == nil {
		analysis.People = []string{}
	}
	if analysis.Places == nil {
		analysis.Places = []string{}
	}

	return &analysis, nil
}
