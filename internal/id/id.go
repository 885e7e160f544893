package id

import "github.com/google/uuid"

// New returns a fresh identifier for a user-entered event.
func New() string {
	return uuid.NewString()
}

// ForPosting returns the identifier of the interest posting for a month key.
// Deterministic so regeneration produces stable IDs across passes.
func ForPosting(monthKey string) string {
	return "interest-" + monthKey
}
