package record

import (
	"errors"
	"fmt"
)

// Kind classifies a remote-store failure. The kind is decided once at the
// collaborator boundary (the store adapter); call sites branch with KindOf or
// IsKind instead of re-deriving meaning from message text.
type Kind int

const (
	KindUnknown Kind = iota

	// KindNotInitialized: the collaborator itself is unavailable (nil client,
	// missing configuration).
	KindNotInitialized

	// KindNotFound: the backend returned no row for the given identity.
	KindNotFound

	// KindInvalidInput: validation failed before any remote call was made.
	KindInvalidInput

	// KindAuthRequired: the backend rejected the call for policy/authorization
	// reasons.
	KindAuthRequired

	// KindRemoteFailure: the backend reported failure for a non-auth reason,
	// or the transport errored.
	KindRemoteFailure

	// KindPartialFailure: a batch write mixed successes and failures.
	KindPartialFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotInitialized:
		return "not_initialized"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindAuthRequired:
		return "auth_required"
	case KindRemoteFailure:
		return "remote_failure"
	case KindPartialFailure:
		return "partial_failure"
	}
	return "unknown"
}

// Error carries the kind plus the failing operation, e.g. "fetch products_c".
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a kinded error with a plain message.
func E(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Err: errors.New(msg)}
}

// Wrap attaches a kind and operation to an underlying error.
// A nil err yields nil. An already-kinded err keeps its kind.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	if existing := KindOf(err); existing != KindUnknown {
		kind = existing
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the kind from err, KindUnknown when err carries none.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
