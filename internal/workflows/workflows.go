// package workflows implements the stateful user-action sequences of the
// client: login/registration, venue browsing, and the booking state
// machine.
package workflows

import (
	"errors"
	"fmt"
)

var (
	// ErrVenueManagerRequired rejects venue writes from accounts without
	// the venue-manager role, before any network call.
	ErrVenueManagerRequired = fmt.Errorf("venue manager role required")

	// ErrNotConfirmed rejects a destructive action whose caller has not
	// collected an explicit user confirmation first.
	ErrNotConfirmed = fmt.Errorf("destructive action not confirmed")
)

// ValidationError is a failed local precondition: bad dates, short
// password, wrong email domain. Surfaced inline; no network call was
// made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a [ValidationError].
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
