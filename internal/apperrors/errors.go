package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates a request was made without a usable access token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoScope indicates an operation that requires an active property scope
// was called while no property is selected.
var ErrNoScope = errors.New("no active property selected")

// ErrNotRunning indicates the notifier was consumed outside its running
// lifecycle (subscribe before Start or after Stop).
var ErrNotRunning = errors.New("notifier must be used within a running notifier")

// RemoteError is returned when the API answers with a non-success status.
// It is distinct from transport errors, which are returned as-is.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote returned status %d", e.Status)
	}
	return fmt.Sprintf("remote returned status %d: %s", e.Status, e.Body)
}

// IsRemote reports whether err is a RemoteError, returning it if so.
func IsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
