package scheduling

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable classification of a scheduling error.
type Kind string

const (
	KindBadRequest      Kind = "badRequest"
	KindNotFound        Kind = "notFound"
	KindPolicyViolation Kind = "policyViolation"
	KindProviderError   Kind = "providerError"
	KindTimeout         Kind = "timeout"
)

// Error carries a kind plus a reason string safe to show to a
// non-technical user. Zero slots and non-working days are successful
// results, never Errors.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// NewError builds an Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, defaulting to providerError for
// anything that is not a scheduling Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindProviderError
}
