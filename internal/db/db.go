// Package db implements the SQLite storage engine for tokens and captured
// requests. All functions take an explicitly passed *sql.DB; there is no
// package-level handle.
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrConflict is returned when an insert collides with an existing primary key.
var ErrConflict = errors.New("record already exists")

const schema = `
CREATE TABLE IF NOT EXISTS tokens (
	token TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	webhook_url TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS requests (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	token_id TEXT NOT NULL,
	method TEXT NOT NULL,
	value TEXT NOT NULL,
	headers TEXT NOT NULL,
	query_parameters TEXT NOT NULL,
	body TEXT,
	body_object TEXT,
	message TEXT,
	FOREIGN KEY (token_id) REFERENCES tokens (token)
);

CREATE INDEX IF NOT EXISTS idx_requests_token_id ON requests (token_id);
CREATE INDEX IF NOT EXISTS idx_requests_date ON requests (date);
`

// Pragmas ride the DSN so the driver applies them to every connection the
// pool opens, not just the one that happened to run them. A bounded busy
// timeout makes concurrent writers wait for the lock instead of failing
// immediately with SQLITE_BUSY.
const dsnPragmas = "?_pragma=busy_timeout(5000)" +
	"&_pragma=journal_mode(WAL)" +
	"&_pragma=foreign_keys(1)" +
	"&_pragma=synchronous(NORMAL)"

// Open opens the database at dbPath, creating it if missing, and prepares the
// schema. Idempotent, safe to call on every startup.
func Open(dbPath string) (*sql.DB, error) {
	d, err := sql.Open("sqlite", dbPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := d.Exec(schema); err != nil {
		d.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return d, nil
}

func isConstraint(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
