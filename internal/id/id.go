package id

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a fresh random statement ID (UUID v4, canonical form).
func New() string {
	return uuid.NewString()
}

// Parse validates a statement ID and returns it in canonical lowercase form.
func Parse(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid statement ID %q: %w", s, err)
	}
	return u.String(), nil
}

// Short returns the first block of an ID, for display.
// "0b0b4c1e-..." -> "0b0b4c1e"
func Short(s string) string {
	if len(s) < 8 {
		return s
	}
	return s[:8]
}
