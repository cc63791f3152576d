package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"vitrina/logger"
)

// DB holds the database connection. It stays nil when analytics is disabled.
var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS analytics_events (
	id              BIGSERIAL PRIMARY KEY,
	session_id      TEXT        NOT NULL,
	kind            TEXT        NOT NULL,
	resource_handle TEXT        NOT NULL DEFAULT '',
	path            TEXT        NOT NULL DEFAULT '',
	occurred_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analytics_events_kind_time_idx ON analytics_events (kind, occurred_at);
`

// InitDB opens the database connection for connStr and prepares the schema
func InitDB(ctx context.Context, connStr string) error {
	if connStr == "" {
		return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	DB = conn
	logger.L().Infof("✓ Database connection established successfully")
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
