package api

import (
	"errors"
	"fmt"
)

// AuthRequiredError means the session lacks the credentials a protected
// call needs. No network call was made. The caller is expected to send the
// user to login rather than proceed.
type AuthRequiredError struct {
	Reason string
}

func (e *AuthRequiredError) Error() string {
	if e.Reason == "" {
		return "login required"
	}
	return fmt.Sprintf("login required: %s", e.Reason)
}

// IsAuthRequired reports whether err is (or wraps) an [AuthRequiredError].
func IsAuthRequired(err error) bool {
	var ae *AuthRequiredError
	return errors.As(err, &ae)
}

// Error is a rejection from the remote API. Message carries the server's
// error text when the payload had one, else a generic fallback.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// NetworkError is a transport failure: no HTTP response was received at
// all. Surfaced to users as a generic retry-suggesting message.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
