package resolvers

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/writewithwrabit/journal/auth"
	"github.com/writewithwrabit/journal/cryptopasta"
	wrabitDB "github.com/writewithwrabit/journal/db"
	"github.com/writewithwrabit/journal/models"
	"github.com/writewithwrabit/journal/stats"
)

const entryColumns = "id, user_id, title, word_count, content, goal_hit, created_at, updated_at"

var errNoKey = errors.New("no encryption key configured")

func (r *Resolver) scanEntry(row interface{ Scan(...interface{}) error }) (*models.Entry, error) {
	var entry = new(models.Entry)
	err := row.Scan(&entry.ID, &entry.UserID, &entry.Title, &entry.WordCount, &entry.Content, &entry.GoalHit, &entry.CreatedAt, &entry.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	entry.Content = r.decrypt(entry.Content)

	return entry, nil
}

func (r *Resolver) queryEntries(ctx context.Context, query string, args ...interface{}) ([]*models.Entry, error) {
	res, err := wrabitDB.LogAndQuery(ctx, r.db, query, args...)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	entries := []*models.Entry{}
	for res.Next() {
		entry, err := r.scanEntry(res)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, res.Err()
}

// journalEntries loads every entry the user has saved, newest first. Drafts
// opened by DailyEntry and never saved are skipped; saved entries count even
// when they hold no words.
func (r *Resolver) journalEntries(ctx context.Context, userID string) ([]*models.Entry, error) {
	return r.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries WHERE user_id = $1 AND NOT draft ORDER BY created_at DESC", userID)
}

// Encrypt the content for the database
// but return the unencrypted content to the client
func (r *Resolver) encrypt(content string) (string, error) {
	if r.key == nil {
		return "", errNoKey
	}

	ciphertext, err := cryptopasta.Encrypt([]byte(content), r.key)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(ciphertext), nil
}

// decrypt returns stored content as-is when it is not our ciphertext, which
// is the case for rows written before encryption was enabled.
func (r *Resolver) decrypt(stored string) string {
	if r.key == nil || stored == "" {
		return stored
	}

	decoded, err := hex.DecodeString(stored)
	if err != nil {
		return stored
	}

	content, err := cryptopasta.Decrypt(decoded, r.key)
	if err != nil {
		return stored
	}

	return string(content)
}

func validTimestamp(s string) bool {
	if _, err := stats.ParseTimestamp(s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (r *queryResolver) Entries(ctx context.Context, startDate *string, endDate *string) ([]*models.Entry, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return []*models.Entry{}, ErrAccessDenied
	}

	for _, date := range []*string{startDate, endDate} {
		if date != nil && !validTimestamp(*date) {
			return nil, fmt.Errorf("%w: invalid date %q", ErrBadInput, *date)
		}
	}

	if startDate != nil && endDate == nil {
		return r.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries WHERE user_id = $1 AND created_at >= $2 AND NOT draft ORDER BY created_at DESC", user.Subject, *startDate)
	} else if startDate == nil && endDate != nil {
		return r.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries WHERE user_id = $1 AND created_at <= $2 AND NOT draft ORDER BY created_at DESC", user.Subject, *endDate)
	} else if startDate != nil && endDate != nil {
		return r.queryEntries(ctx, "SELECT "+entryColumns+" FROM entries WHERE user_id = $1 AND created_at >= $2 AND NOT draft AND created_at <= $3 ORDER BY created_at DESC", user.Subject, *startDate, *endDate)
	}

	return r.journalEntries(ctx, user.Subject)
}

func (r *queryResolver) Entry(ctx context.Context, id string) (*models.Entry, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return &models.Entry{}, ErrAccessDenied
	}

	return r.ownedEntry(ctx, user.Subject, id)
}

func (r *Resolver) ownedEntry(ctx context.Context, userID string, id string) (*models.Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	res := wrabitDB.LogAndQueryRow(ctx, r.db, "SELECT "+entryColumns+" FROM entries WHERE id = $1 AND user_id = $2", id, userID)

	return r.scanEntry(res)
}

// EntriesByMonth lists the entries written in a calendar month of the
// caller's time zone.
func (r *queryResolver) EntriesByMonth(ctx context.Context, year int, month int, tz *string) ([]*models.Entry, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return []*models.Entry{}, ErrAccessDenied
	}

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: invalid month %d", ErrBadInput, month)
	}

	loc, err := r.location(tz)
	if err != nil {
		return nil, err
	}

	entries, err := r.journalEntries(ctx, user.Subject)
	if err != nil {
		return nil, err
	}

	return stats.EntriesInMonth(entries, year, time.Month(month), stats.InLocation(loc))
}

// DailyEntry returns the latest entry created at or after date, opening an
// empty draft for that date when there is none. Saving it with UpdateEntry
// turns it into a journal entry.
func (r *queryResolver) DailyEntry(ctx context.Context, date string) (*models.Entry, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return &models.Entry{}, ErrAccessDenied
	}

	if !validTimestamp(date) {
		return nil, fmt.Errorf("%w: invalid date %q", ErrBadInput, date)
	}

	res := wrabitDB.LogAndQueryRow(ctx, r.db, "SELECT "+entryColumns+" FROM entries WHERE user_id = $1 AND created_at >= $2 ORDER BY created_at DESC LIMIT 1", user.Subject, date)
	entry, err := r.scanEntry(res)
	if err != ErrNotFound {
		return entry, err
	}

	res = wrabitDB.LogAndQueryRow(ctx, r.db, "INSERT INTO entries (id, user_id, title, content, word_count, draft, created_at) VALUES ($1, $2, $3, $4, $5, true, $6) RETURNING "+entryColumns, uuid.New().String(), user.Subject, "", "", 0, date)

	return r.scanEntry(res)
}

func (r *mutationResolver) CreateEntry(ctx context.Context, input models.NewEntry) (*models.Entry, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return &models.Entry{}, ErrAccessDenied
	}

	content, err := r.encrypt(input.Content)
	if err != nil {
		return nil, err
	}

	entry := &models.Entry{
		ID:        uuid.New().String(),
		UserID:    user.Subject,
		Title:     input.Title,
		Content:   input.Content,
		WordCount: stats.WordCount(input.Content),
		GoalHit:   input.GoalHit,
	}

	res := wrabitDB.LogAndQueryRow(ctx, r.db, "INSERT INTO entries (id, user_id, title, content, word_count, goal_hit) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at", entry.ID, entry.UserID, entry.Title, content, entry.WordCount, entry.GoalHit)
	if err := res.Scan(&entry.CreatedAt, &entry.UpdatedAt); err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *mutationResolver) UpdateEntry(ctx context.Context, id string, input models.ExistingEntry) (*models.Entry, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return &models.Entry{}, ErrAccessDenied
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	content, err := r.encrypt(input.Content)
	if err != nil {
		return nil, err
	}

	entry := &models.Entry{
		ID:        id,
		UserID:    user.Subject,
		Content:   input.Content,
		WordCount: stats.WordCount(input.Content),
		GoalHit:   input.GoalHit,
	}

	res := wrabitDB.LogAndQueryRow(ctx, r.db, "UPDATE entries SET title = COALESCE($1, title), content = $2, word_count = $3, goal_hit = $4, draft = false, updated_at = now() WHERE id = $5 AND user_id = $6 RETURNING title, created_at, updated_at", input.Title, content, entry.WordCount, entry.GoalHit, entry.ID, entry.UserID)
	err = res.Scan(&entry.Title, &entry.CreatedAt, &entry.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *mutationResolver) DeleteEntry(ctx context.Context, id string) (*models.Entry, error) {
	user := auth.ForContext(ctx)
	if user == nil {
		return &models.Entry{}, ErrAccessDenied
	}

	var entry = &models.Entry{}
	if _, err := uuid.Parse(id); err != nil {
		return entry, nil
	}

	res, err := wrabitDB.LogAndExec(ctx, r.db, "DELETE FROM entries WHERE user_id = $1 AND id = $2", user.Subject, id)
	if err != nil {
		return nil, err
	}

	count, err := res.RowsAffected()
	if err == nil && count == 1 {
		entry.ID = id
	}

	return entry, nil
}
