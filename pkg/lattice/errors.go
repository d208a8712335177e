package lattice

import (
	"errors"
)

var (
	// ErrInvalidProps is the kind of every error caused by invalid construct properties.
	ErrInvalidProps = errors.New("invalid properties")
	// ErrImported is returned when a mutating operation is attempted on an imported service or service network.
	ErrImported = errors.New("imported resource")
	// ErrAuthTypeNone is returned when an auth policy operation is attempted while authorization is disabled.
	ErrAuthTypeNone = errors.New("auth type is NONE")
	// ErrDuplicatePriority is returned when a listener rule priority is already in use.
	ErrDuplicatePriority = errors.New("duplicate rule priority")
	// ErrInvalidPolicy is returned when an auth policy fails validation at apply time.
	ErrInvalidPolicy = errors.New("invalid auth policy")
)

// Error is a construct validation error. Error() returns just the message; the kind (and cause, if any) are
// available through errors.Is / errors.As.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func invalid(message string) error {
	return &Error{Kind: ErrInvalidProps, Message: message}
}

// Ptr returns a pointer to v, for setting optional properties.
func Ptr[T any](v T) *T {
	return &v
}
