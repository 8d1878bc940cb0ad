package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/writewithwrabit/journal/models"
)

func TestLogAndQueryShouldReturnResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "content", "created_at"}).
		AddRow("a1", "IWoB2L4lcJW8brqOHd7oJfzn8vt2", "first", "2026-10-18T09:00:00Z").
		AddRow("a2", "IWoB2L4lcJW8brqOHd7oJfzn8vt2", "second", "2026-10-19T09:00:00Z")

	mock.ExpectQuery("SELECT id, user_id, content, created_at FROM entries WHERE user_id = \\$1").
		WithArgs("IWoB2L4lcJW8brqOHd7oJfzn8vt2").
		WillReturnRows(rows)

	res, err := LogAndQuery(context.Background(), db, "SELECT id, user_id, content, created_at FROM entries WHERE user_id = $1", "IWoB2L4lcJW8brqOHd7oJfzn8vt2")
	require.NoError(t, err)
	defer res.Close()

	var entries []models.Entry
	for res.Next() {
		var entry models.Entry
		require.NoError(t, res.Scan(&entry.ID, &entry.UserID, &entry.Content, &entry.CreatedAt))
		entries = append(entries, entry)
	}

	assert.Len(t, entries, 2)
	assert.Equal(t, "second", entries[1].Content)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLogAndQueryShouldReturnErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM entries").WillReturnError(errors.New("connection reset"))

	res, err := LogAndQuery(context.Background(), db, "SELECT id FROM entries")

	assert.Nil(t, res)
	assert.EqualError(t, err, "connection reset")
}

func TestLogAndQueryRowShouldReturnResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "first_name", "email", "word_goal"}).
		AddRow("1", "Test", "testing@writewithwrabit.com", 1000)

	mock.ExpectQuery("SELECT id, first_name, email, word_goal FROM users WHERE id = \\$1").
		WithArgs("1").
		WillReturnRows(rows)

	res := LogAndQueryRow(context.Background(), db, "SELECT id, first_name, email, word_goal FROM users WHERE id = $1", "1")
	var user models.User
	err = res.Scan(&user.ID, &user.FirstName, &user.Email, &user.WordGoal)

	assert.NoError(t, err)
	assert.Equal(t, "testing@writewithwrabit.com", user.Email)
	assert.Equal(t, 1000, user.WordGoal)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLogAndExecShouldReturnResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM entries WHERE user_id = \\$1 AND id = \\$2").
		WithArgs("abcdefg", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	Verbose = false
	defer func() { Verbose = true }()

	res, err := LogAndExec(context.Background(), db, "DELETE FROM entries WHERE user_id = $1 AND id = $2", "abcdefg", "1")
	require.NoError(t, err)

	count, err := res.RowsAffected()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestMigrateShouldCreateTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS entries").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE entries ADD COLUMN IF NOT EXISTS draft").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS entries_user_id_created_at").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS insights").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, Migrate(context.Background(), db))

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestMigrateShouldStopOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("permission denied"))

	err = Migrate(context.Background(), db)

	assert.EqualError(t, err, "migrate: permission denied")
}

func TestOptionsDSN(t *testing.T) {
	o := Options{Host: "project:region:instance", User: "wrabit", Password: "secret", Name: "journal"}

	assert.Equal(t, "host=project:region:instance dbname=journal user=wrabit password=secret sslmode=disable", o.DSN())

	o.SSLMode = "require"
	assert.Contains(t, o.DSN(), "sslmode=require")
}
