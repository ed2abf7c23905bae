package kafka

import (
	"errors"

	"service-parcel/internal/apperr"
)

// PermanentError marks a message that will never succeed; it is skipped instead of retried.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err as a PermanentError.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

// IsPermanent reports whether retrying the message cannot help.
// Malformed input is always permanent.
func IsPermanent(err error) bool {
	var pe PermanentError
	return errors.As(err, &pe) || errors.Is(err, apperr.ErrInvalid)
}
