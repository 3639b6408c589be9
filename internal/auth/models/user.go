package models

import (
	"strings"
	"time"
	"unicode/utf8"

	id "intake/pkg/domain"
)

// User is a principal that can authenticate. Role is carried opaquely.
type User struct {
	ID           id.UserID
	Email        string
	PasswordHash string
	Role         string
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FirstInitial returns the upper-cased first letter of FirstName, or "".
func (u *User) FirstInitial() string {
	r, size := utf8.DecodeRuneInString(u.FirstName)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return strings.ToUpper(string(r))
}
