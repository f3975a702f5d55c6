package core

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCredential marks authentication paths the Linkurious client
// deliberately does not implement. API-key authentication is a declared
// capability gap, not a transient failure.
var ErrUnsupportedCredential = errors.New("apikey authentication is not implemented")

// AuthError is returned when login fails or when no usable credential
// pair was supplied. Reason carries the server-stated cause when available.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "could not authenticate"
	}
	return fmt.Sprintf("could not authenticate: %s", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsUnsupportedCredentialErr reports whether err stems from a credential
// type the client does not support (currently only api keys).
func IsUnsupportedCredentialErr(err error) bool {
	return errors.Is(err, ErrUnsupportedCredential)
}
