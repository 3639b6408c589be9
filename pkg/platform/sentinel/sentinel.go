// Package sentinel defines the store-level errors services translate into
// domain errors. Stores wrap them with the identifier involved.
package sentinel

import "errors"

var (
	// ErrNotFound means no row, record or live session exists for the key.
	ErrNotFound = errors.New("not found")
	// ErrConflict means an insert collided with a unique key.
	ErrConflict = errors.New("conflict")
)
