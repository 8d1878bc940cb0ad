package resolvers

import (
	"context"

	"github.com/writewithwrabit/journal/auth"
	wrabitDB "github.com/writewithwrabit/journal/db"
	"github.com/writewithwrabit/journal/models"
	"github.com/writewithwrabit/journal/stats"
)

// Stats computes the caller's statistics as of now in their time zone.
func (r *queryResolver) Stats(ctx context.Context, tz *string) (*models.UserStats, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return &models.UserStats{}, ErrAccessDenied
	}

	loc, err := r.location(tz)
	if err != nil {
		return nil, err
	}

	entries, err := r.journalEntries(ctx, user.Subject)
	if err != nil {
		return nil, err
	}

	return stats.Compute(entries, r.clock().In(loc), stats.InLocation(loc))
}

// WordGoal scales the caller's configured goal by their streak.
func (r *queryResolver) WordGoal(ctx context.Context, tz *string) (*models.WordGoal, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return &models.WordGoal{}, ErrAccessDenied
	}

	loc, err := r.location(tz)
	if err != nil {
		return nil, err
	}

	var base int
	res := wrabitDB.LogAndQueryRow(ctx, r.db, "SELECT word_goal FROM users WHERE firebase_id = $1", user.Subject)
	if err := scanNotFound(res.Scan(&base)); err != nil {
		return nil, err
	}

	entries, err := r.journalEntries(ctx, user.Subject)
	if err != nil {
		return nil, err
	}

	now := r.clock().In(loc)
	dateOf := stats.InLocation(loc)
	goal, err := stats.GoalFor(entries, base, now, dateOf)
	if err != nil {
		return nil, err
	}

	return &models.WordGoal{
		Base:          goal.Base,
		Words:         goal.Words(),
		DaysSinceLast: goal.DaysSinceLast,
		Date:          dateOf(now).String(),
	}, nil
}
