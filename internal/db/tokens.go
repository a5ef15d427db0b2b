package db

import (
	"database/sql"
	"fmt"

	"github.com/rsclarke/hooktrap/internal/models"
)

// CreateToken inserts a new token row. A duplicate token value yields
// ErrConflict; the row is never overwritten.
func CreateToken(d *sql.DB, t models.Token) error {
	_, err := d.Exec(
		"INSERT INTO tokens (token, created_at, webhook_url) VALUES (?, ?, ?)",
		t.Token, t.CreatedAt, t.WebhookURL,
	)
	if err != nil {
		if isConstraint(err) {
			return fmt.Errorf("create token %s: %w", t.Token, ErrConflict)
		}
		return err
	}
	return nil
}

// TokenExists reports whether a token row exists.
func TokenExists(d *sql.DB, token string) (bool, error) {
	var count int
	err := d.QueryRow("SELECT COUNT(*) FROM tokens WHERE token = ?", token).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListTokens returns all tokens, most recently created first.
func ListTokens(d *sql.DB) ([]models.Token, error) {
	rows, err := d.Query("SELECT token, created_at, webhook_url FROM tokens ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []models.Token
	for rows.Next() {
		var t models.Token
		if err := rows.Scan(&t.Token, &t.CreatedAt, &t.WebhookURL); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// DeleteToken removes the token and all of its captured requests in a single
// transaction. Deleting an absent token is not an error.
func DeleteToken(d *sql.DB, token string) error {
	tx, err := d.Begin()
	if err != nil {
		return fmt.Errorf("begin delete token: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM requests WHERE token_id = ?", token); err != nil {
		return fmt.Errorf("delete requests for token: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM tokens WHERE token = ?", token); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}

	return tx.Commit()
}
