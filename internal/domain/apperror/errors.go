package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure surfaced by validation, the gateway or a backend.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is client-side input rejected before (or instead of) a network call.
	KindValidation
	// KindAuth is the backend rejecting credentials.
	KindAuth
	// KindNotImplemented is an operation the real backend does not serve yet.
	KindNotImplemented
	// KindNetwork is a transport failure.
	KindNetwork
	// KindTimeout is a request that exceeded the configured timeout.
	KindTimeout
	// KindUnauthorized is a 401 whose refresh-retry also failed.
	KindUnauthorized
	// KindRequest is any other non-2xx response.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotImplemented:
		return "not_implemented"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindUnauthorized:
		return "unauthorized"
	case KindRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Error is the single error type crossing package boundaries.
// Error() is the human-readable message shown to the driver.
type Error struct {
	Kind    Kind
	Field   string // set for per-field validation failures
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func Auth(message string) *Error { return New(KindAuth, message) }

func NotImplemented(message string) *Error { return New(KindNotImplemented, message) }

func NotImplementedf(format string, args ...any) *Error {
	return New(KindNotImplemented, fmt.Sprintf(format, args...))
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns err's message, or fallback when err carries none.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
