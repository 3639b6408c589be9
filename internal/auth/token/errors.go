package token

import "errors"

// Reason explains why verification failed. It is logged, never returned to clients.
type Reason string

const (
	ReasonExpired      Reason = "expired"
	ReasonBadSignature Reason = "bad_signature"
	ReasonMalformed    Reason = "malformed"
	ReasonWrongType    Reason = "wrong_type"
)

// ErrInvalidToken matches every verification failure via errors.Is.
var ErrInvalidToken = errors.New("invalid token")

// InvalidTokenError is returned by Verify.
type InvalidTokenError struct {
	Kind   Kind
	Reason Reason
	Err    error
}

func invalid(kind Kind, reason Reason, err error) *InvalidTokenError {
	return &InvalidTokenError{Kind: kind, Reason: reason, Err: err}
}

func (e *InvalidTokenError) Error() string {
	return "invalid " + e.Kind.String() + " token: " + string(e.Reason)
}

func (e *InvalidTokenError) Unwrap() error {
	return e.Err
}

func (e *InvalidTokenError) Is(target error) bool {
	return target == ErrInvalidToken
}

// ReasonOf extracts the failure reason, or "" when err is not a token error.
func ReasonOf(err error) Reason {
	var ite *InvalidTokenError
	if errors.As(err, &ite) {
		return ite.Reason
	}
	return ""
}
