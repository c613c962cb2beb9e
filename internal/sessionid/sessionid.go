// Package sessionid generates identifiers for practice sessions and decks.
package sessionid

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 identifier. Time ordering keeps JSON
// store filenames and database rows in rough creation order, which makes
// the decision history cheap to scan chronologically.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the system randomness source does; fall
		// back to v4 rather than refusing to create a session.
		return uuid.NewString()
	}
	return id.String()
}

// Validate checks that id is a well-formed UUID.
func Validate(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid session id %q: %w", id, err)
	}
	return nil
}
