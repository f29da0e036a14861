package inference

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed submission. The UI reacts differently per
// kind (re-prompt, redirect to login, generic failure), so every error
// that crosses the client boundary carries one.
type ErrorKind string

const (
	// KindAuth: missing credential before send, or 401/403 from the
	// service.
	KindAuth ErrorKind = "auth"
	// KindValidation: the service rejected the payload (4xx with a
	// `detail` message).
	KindValidation ErrorKind = "validation"
	// KindTransport: network failure, timeout, or a non-2xx response
	// without a parseable detail.
	KindTransport ErrorKind = "transport"
)

// Error is the single tagged error type returned by the client. Detail
// preserves any server-supplied human-readable message verbatim for
// display.
type Error struct {
	Kind       ErrorKind
	Detail     string
	StatusCode int // 0 when no HTTP response was received
	cause      error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("inference %s error: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("inference %s error", e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf returns the classification of err, or "" when err is not an
// inference error.
func KindOf(err error) ErrorKind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}
