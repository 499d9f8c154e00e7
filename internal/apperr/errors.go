// Package apperr holds the errors the identity and grid layers hand back
// to callers. Storage errors never cross this boundary unwrapped.
package apperr

import "errors"

// ErrLinkConflict is returned when an external identity is already bound
// to a different account.
var ErrLinkConflict = errors.New("external identity already linked to another account")

// ValidationError rejects malformed input, a wrong grid size, or a taken
// username/email on a fresh insert.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validation builds a ValidationError.
func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

// AuthError rejects a local login. Reason is for logs only; Error() stays
// coarse so callers cannot tell an unknown user from a wrong password.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "invalid credentials"
}

// Auth builds an AuthError.
func Auth(reason string) error {
	return &AuthError{Reason: reason}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}
