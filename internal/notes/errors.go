package notes

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failures a use case can report.
type Kind int

const (
	KindStoreUnavailable Kind = iota
	KindInvalid
	KindNotFound
	KindMalformedID
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not found"
	case KindMalformedID:
		return "malformed id"
	default:
		return "store unavailable"
	}
}

// Error carries a failure kind, a client-facing reason (only meaningful for KindInvalid)
// and the underlying cause, if any.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

var (
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrMalformedID = &Error{Kind: KindMalformedID}
)

func (e *Error) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works for wrapped values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Invalid reports a validation failure with a human-readable reason.
func Invalid(reason string) *Error {
	return &Error{Kind: KindInvalid, Reason: reason}
}

// Unavailable wraps a persistence failure. A nil err yields nil.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStoreUnavailable, Err: err}
}

// KindOf classifies err. Errors outside the taxonomy count as KindStoreUnavailable.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreUnavailable
}
