package resolvers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/writewithwrabit/journal/ai"
	"github.com/writewithwrabit/journal/auth"
	wrabitDB "github.com/writewithwrabit/journal/db"
	"github.com/writewithwrabit/journal/models"
)

const insightColumns = "id, entry_id, user_id, mood_score, topics, people, places, created_at"

// Prompt suggests what to write about next. Without an assistant, or when the
// assistant fails, a built-in prompt is returned instead.
func (r *mutationResolver) Prompt(ctx context.Context, content string) (*models.Prompt, error) {
	if user := auth.ForContext(ctx); user == nil {
		return &models.Prompt{}, ErrAccessDenied
	}

	if r.ai != nil && strings.TrimSpace(content) != "" {
		text, err := r.ai.GeneratePrompt(ctx, content)
		if err == nil && text != "" {
			return &models.Prompt{Text: text, Source: "ai"}, nil
		}
		log.Printf("falling back to a built-in prompt: %v", err)
	}

	return &models.Prompt{Text: ai.RandomPrompt(nil), Source: "fallback"}, nil
}

// AnalyzeEntry runs the entry through the assistant and stores the result.
func (r *mutationResolver) AnalyzeEntry(ctx context.Context, id string) (*models.Insight, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return &models.Insight{}, ErrAccessDenied
	}

	if r.ai == nil {
		return nil, ErrUnavailable
	}

	entry, err := r.ownedEntry(ctx, user.Subject, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(entry.Content) == "" {
		return nil, fmt.Errorf("%w: entry %s is empty", ErrBadInput, id)
	}

	analysis, err := r.ai.AnalyzeEntry(ctx, entry.Content)
	if err != nil {
		return nil, err
	}

	insight := &models.Insight{
		ID:        uuid.New().String(),
		EntryID:   entry.ID,
		UserID:    user.Subject,
		MoodScore: analysis.MoodScore,
		Topics:    analysis.Topics,
		People:    analysis.People,
		Places:    analysis.Places,
	}

	res := wrabitDB.LogAndQueryRow(ctx, r.db, "INSERT INTO insights (id, entry_id, user_id, mood_score, topics, people, places) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at", insight.ID, insight.EntryID, insight.UserID, insight.MoodScore, pq.Array(insight.Topics), pq.Array(insight.People), pq.Array(insight.Places))
	if err := res.Scan(&insight.CreatedAt); err != nil {
		return nil, err
	}

	return insight, nil
}

func (r *queryResolver) Insights(ctx context.Context, entryID string) ([]*models.Insight, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return []*models.Insight{}, ErrAccessDenied
	}

	if _, err := uuid.Parse(entryID); err != nil {
		return nil, ErrNotFound
	}

	res, err := wrabitDB.LogAndQuery(ctx, r.db, "SELECT "+insightColumns+" FROM insights WHERE entry_id = $1 AND user_id = $2 ORDER BY created_at DESC", entryID, user.Subject)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	insights := []*models.Insight{}
	for res.Next() {
		var insight = new(models.Insight)
		if err := res.Scan(&insight.ID, &insight.EntryID, &insight.UserID, &insight.MoodScore, pq.Array(&insight.Topics), pq.Array(&insight.People), pq.Array(&insight.Places), &insight.CreatedAt); err != nil {
			return nil, err
		}

		insights = append(insights, insight)
	}

	return insights, res.Err()
}

func (r *mutationResolver) Chat(ctx context.Context, input models.ChatRequest) (*models.ChatReply, error) {
	if user := auth.ForContext(ctx); user == nil {
		return &models.ChatReply{}, ErrAccessDenied
	}

	if r.ai == nil {
		return nil, ErrUnavailable
	}

	reply, err := r.ai.Chat(ctx, input.UserName, input.History, input.Message)
	if errors.Is(err, ai.ErrEmptyMessage) {
		return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	if err != nil {
		return nil, err
	}

	return &models.ChatReply{Message: reply}, nil
}
