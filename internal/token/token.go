// Package token provides webhook token generation and validation.
package token

import "github.com/google/uuid"

// Generate returns a fresh random 128-bit token formatted as a UUID string.
func Generate() string {
	return uuid.NewString()
}

// Validate reports whether s parses as a UUID.
func Validate(s string) error {
	_, err := uuid.Parse(s)
	return err
}
