package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrUnauthorized signals a role or ownership mismatch.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a state conflict (HTTP 409). The stored state is untouched.
var ErrConflict = errors.New("conflict")

// ErrConfiguration marks a configuration that must not be applied.
var ErrConfiguration = errors.New("invalid configuration")

// ErrTransient marks a failure that may succeed when the whole operation is retried.
var ErrTransient = errors.New("temporarily unavailable")

// Wire codes reported to clients in error messages.
const (
	CodeInvalid      = "invalid"
	CodeUnauthorized = "unauthorized"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeUnavailable  = "unavailable"
	CodeInternal     = "internal"
)

// Coder is implemented by errors that carry a more specific wire code.
type Coder interface {
	Code() string
}

// Code maps err onto a stable wire code.
func Code(err error) string {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalid):
		return CodeInvalid
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrTransient):
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// Kind is a sentinel error with its own wire code that still matches a base category
// through errors.Is.
type Kind struct {
	msg  string
	code string
	base error
}

// NewKind creates a coded sentinel that unwraps to base.
func NewKind(msg, code string, base error) *Kind {
	return &Kind{msg: msg, code: code, base: base}
}

func (k *Kind) Error() string { return k.msg }

// Code returns the wire code.
func (k *Kind) Code() string { return k.code }

// Unwrap exposes the base category.
func (k *Kind) Unwrap() error { return k.base }
