package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch-cycle failure. The kind is machine-readable and
// stable; the message on the error is what views show to the user.
type Kind string

const (
	// KindAuthUnavailable means no credential could be acquired. Terminal for
	// the cycle - callers must not retry until the user re-authenticates.
	KindAuthUnavailable Kind = "auth_unavailable"

	// KindInvalidInput means the symbol or symbol list was rejected before any
	// network call was made.
	KindInvalidInput Kind = "invalid_input"

	// KindTransportFailure covers network and non-2xx HTTP errors.
	KindTransportFailure Kind = "transport_failure"

	// KindPartialData means the cycle reached Ready but one or more optional
	// fields failed normalization and were replaced with defaults.
	KindPartialData Kind = "partial_data"

	// KindTimeout means the cycle exceeded its deadline.
	KindTimeout Kind = "timeout"
)

// Error carries a failure kind alongside a user-facing message. The message
// is intentionally distinct from the kind so views never render internal
// identifiers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the failure kind from an error chain. Errors that were
// never classified report as transport failures, which is the safest default
// for anything that escaped the fetch path.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindTransportFailure
}

// MessageOf returns the user-facing message from an error chain, falling
// back to a generic one for unclassified errors.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong while fetching data. Please try again."
}
