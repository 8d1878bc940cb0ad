package db

import (
	"context"
	"database/sql"
	"log"
)

// Querier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Verbose controls whether statements and their arguments are logged.
var Verbose = true

func logStatement(query string, args []interface{}) {
	if !Verbose {
		return
	}

	log.Println(query)
	if len(args) > 0 {
		log.Println(args...)
	}
}

func LogAndQuery(ctx context.Context, db Querier, query string, args ...interface{}) (*sql.Rows, error) {
	logStatement(query, args)

	return db.QueryContext(ctx, query, args...)
}

func LogAndQueryRow(ctx context.Context, db Querier, query string, args ...interface{}) *sql.Row {
	logStatement(query, args)

	return db.QueryRowContext(ctx, query, args...)
}

func LogAndExec(ctx context.Context, db Querier, query string, args ...interface{}) (sql.Result, error) {
	logStatement(query, args)

	return db.ExecContext(ctx, query, args...)
}
