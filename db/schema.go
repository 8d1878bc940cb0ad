package db

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		firebase_id TEXT UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT,
		email TEXT NOT NULL UNIQUE,
		word_goal INTEGER NOT NULL DEFAULT 1000,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		word_count INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL DEFAULT '',
		goal_hit BOOLEAN NOT NULL DEFAULT false,
		draft BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`ALTER TABLE entries ADD COLUMN IF NOT EXISTS draft BOOLEAN NOT NULL DEFAULT false`,
	`CREATE INDEX IF NOT EXISTS entries_user_id_created_at ON entries (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS insights (
		id UUID PRIMARY KEY,
		entry_id UUID NOT NULL REFERENCES entries (id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		mood_score INTEGER NOT NULL,
		topics TEXT[] NOT NULL DEFAULT '{}',
		people TEXT[] NOT NULL DEFAULT '{}',
		places TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db Querier) error {
	for _, statement := range schema {
		if _, err := LogAndExec(ctx, db, statement); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
