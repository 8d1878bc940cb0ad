package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/writewithwrabit/journal/cryptopasta"
	"github.com/writewithwrabit/journal/models"
	"github.com/writewithwrabit/journal/resolvers"
)

func execute(args ...string) (string, error) {
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestKeygen(t *testing.T) {
	first, err := execute("keygen")
	require.NoError(t, err)
	second, err := execute("keygen")
	require.NoError(t, err)

	key := strings.TrimSpace(first)
	assert.Len(t, key, 32)
	assert.NotEqual(t, first, second)

	// The key must round-trip through the encryption helpers.
	ciphertext, err := cryptopasta.Encrypt([]byte("hello"), cryptopasta.KeyFromString(key))
	require.NoError(t, err)
	plaintext, err := cryptopasta.Decrypt(ciphertext, cryptopasta.KeyFromString(key))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(plaintext))
}

func TestStatsRequiresUser(t *testing.T) {
	_, err := execute("stats")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"user"`)
}

func TestWriteStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM entries WHERE user_id \\= \\$1").
		WithArgs("abcdefg").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "word_count", "content", "goal_hit", "created_at", "updated_at"}).
			AddRow("2", "abcdefg", "", 2, "good morning", true, "2026-10-19T06:00:00Z", "2026-10-19T06:00:00Z").
			AddRow("1", "abcdefg", "", 1, "hello", false, "2026-10-18T21:00:00Z", "2026-10-18T21:00:00Z"))

	r := resolvers.New(db, resolvers.Options{
		EncryptionKey: "f3e2a1b0c9d8e7f6a5b4c3d2e1f0a9b8",
		Now: func() time.Time {
			return time.Date(2026, time.October, 19, 15, 30, 0, 0, time.UTC)
		},
	})

	out := &bytes.Buffer{}
	require.NoError(t, writeStats(context.Background(), out, r.Query(), "abcdefg", "UTC"))

	var s models.UserStats
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, 2, s.TotalEntries)
	assert.Equal(t, 3, s.TotalWords)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Contains(t, out.String(), "\n  \"totalEntries\": 2")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
