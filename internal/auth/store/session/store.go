// Package session stores the single active refresh token per principal.
//
// Error Contract:
//   - Get returns sentinel.ErrNotFound when no record exists or it expired
//   - Put overwrites any existing record and resets its TTL (last write wins)
//   - Delete is idempotent
package session

import (
	"fmt"

	id "intake/pkg/domain"
)

const keyPrefix = "refresh_token:"

// Key returns the store key for a principal's session record.
func Key(userID id.UserID) string {
	return fmt.Sprintf("%s%s", keyPrefix, userID)
}
