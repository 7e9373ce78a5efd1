package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost matches the work factor the production data was written with.
const DefaultHashCost = bcrypt.DefaultCost

// HashPassword hashes a password with bcrypt at the given cost.
// A cost below bcrypt's minimum falls back to DefaultHashCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = DefaultHashCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPassword compares a plaintext password with a stored digest.
// A mismatch returns (false, nil). A digest bcrypt cannot parse returns
// (false, ErrInvalidDigest) so callers can log the integrity problem
// without treating it differently from a failed verification.
func CheckPassword(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrInvalidDigest
	}
}
