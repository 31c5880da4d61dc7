package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens a SQLite database file. A sqlite:// prefix is stripped.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if path == "" {
		return nil, fmt.Errorf("SQLite connection requires a file path")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return ping(ctx, db)
}
