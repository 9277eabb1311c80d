package failure

import (
	"errors"
	"fmt"
)

// Error is an immutable error value tagged with a Kind.
//
// Op names the failed operation ("get_quote", "submit_attestation");
// Err is the optional underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// New builds an Error with no underlying cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap builds an Error around an underlying cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports kind equality, so errors.Is(err, &Error{Kind: k}) matches any
// error of kind k regardless of op and message.
func (e *Error) Is(target error) bool {
	var fe *Error
	if !errors.As(target, &fe) {
		return false
	}
	return e != nil && e.Kind == fe.Kind
}

// KindOf extracts the Kind from err.
//
// The second return is false when err carries no *Error anywhere in its
// chain; callers are expected to treat such errors as non-retryable.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) && fe != nil {
		return fe.Kind, true
	}
	return KindUnknown, false
}
