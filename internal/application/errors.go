package application

import "errors"

// Error kinds surfaced to the driving adapters. Services attach a detail with
// newError so callers can match with errors.Is and still show the detail.
// Anything that matches none of them is an internal fault.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)

// kindError pairs an error kind with a caller-facing detail message.
type kindError struct {
	kind   error
	detail string
}

func (e *kindError) Error() string { return e.detail }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, detail string) error {
	return &kindError{kind: kind, detail: detail}
}

// Detail returns the caller-facing message of an error created by a service,
// or the empty string for internal faults.
func Detail(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.detail
	}
	return ""
}
