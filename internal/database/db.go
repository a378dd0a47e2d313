package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open opens a PostgreSQL connection pool for the given URL.
// sql.Open does not establish a connection; use db.Ping to verify it.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
