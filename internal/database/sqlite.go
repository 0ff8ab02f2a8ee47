package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/edutrack/studentbook/internal/config"
)

// NewSQLiteDB opens the SQLite database file, creating it if needed, and
// validates the connection. SQLite permits a single writer, so the pool
// is capped at one connection.
func NewSQLiteDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	log.Info().
		Str("path", cfg.SQLitePath).
		Msg("SQLite connected")

	return db, nil
}
