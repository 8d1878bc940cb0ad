package db

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "cloudsqlpostgres" driver used on App Engine.
	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/postgres"
	// Registers the plain "postgres" driver for local databases.
	_ "github.com/lib/pq"
)

// Options describes a Postgres connection.
type Options struct {
	Driver   string
	Host     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the key/value connection string both drivers accept.
func (o Options) DSN() string {
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s dbname=%s user=%s password=%s sslmode=%s", o.Host, o.Name, o.User, o.Password, sslMode)
}

// Open connects and pings the database.
func Open(ctx context.Context, o Options) (*sql.DB, error) {
	conn, err := sql.Open(o.Driver, o.DSN())
	if err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("DB: %w", err)
	}

	return conn, nil
}
