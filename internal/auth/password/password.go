// Package password hashes and verifies principal credentials with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooLong is returned by Hash for plaintexts over bcrypt's 72 byte limit.
var ErrTooLong = bcrypt.ErrPasswordTooLong

// Hasher wraps bcrypt at a fixed cost. The zero value uses bcrypt.DefaultCost.
type Hasher struct {
	Cost int
}

// Hash returns a salted bcrypt digest of plaintext.
func (h Hasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed or empty
// digest is a mismatch, not an error.
func (h Hasher) Verify(plaintext, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
