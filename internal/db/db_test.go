package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rsclarke/hooktrap/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestOpenCreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	d, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = d.Close() }()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpenIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	d, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	_ = d.Close()

	d, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	_ = d.Close()
}

func TestSchemaCreated(t *testing.T) {
	d := openTestDB(t)

	for _, table := range []string{"tokens", "requests"} {
		var name string
		err := d.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}

	for _, index := range []string{"idx_requests_token_id", "idx_requests_date"} {
		var name string
		err := d.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", index).Scan(&name)
		if err != nil {
			t.Errorf("index %s not found: %v", index, err)
		}
	}
}

func TestConcurrentWriterWaitsForLock(t *testing.T) {
	d := openTestDB(t)

	// Hold the write lock on one pooled connection.
	tx, err := d.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(
		"INSERT INTO tokens (token, created_at, webhook_url) VALUES (?, ?, ?)",
		"11111111-1111-1111-1111-111111111111",
		time.Now().UTC().Format(models.TimeFormat),
		"https://hooks.example.com/first",
	); err != nil {
		t.Fatalf("insert inside transaction failed: %v", err)
	}

	// A second writer on another pooled connection must wait for the lock
	// within the busy timeout, not fail immediately with SQLITE_BUSY.
	done := make(chan error, 1)
	go func() {
		done <- CreateToken(d, testToken("22222222-2222-2222-2222-222222222222", time.Now()))
	}()

	time.Sleep(250 * time.Millisecond)
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("concurrent CreateToken failed instead of waiting for the lock: %v", err)
	}

	for _, tok := range []string{
		"11111111-1111-1111-1111-111111111111",
		"22222222-2222-2222-2222-222222222222",
	} {
		exists, err := TokenExists(d, tok)
		if err != nil {
			t.Fatalf("TokenExists failed: %v", err)
		}
		if !exists {
			t.Errorf("token %s missing after concurrent writes", tok)
		}
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	d := openTestDB(t)

	var fkEnabled int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("PRAGMA foreign_keys failed: %v", err)
	}
	if fkEnabled != 1 {
		t.Error("foreign keys not enabled")
	}
}
