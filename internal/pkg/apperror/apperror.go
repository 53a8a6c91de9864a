package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and retry policy.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindNotFound
	KindInvalidState
	KindValidation
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidState:
		return "INVALID_STATE"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindStorage:
		return "STORAGE_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Error carries the failure kind plus the entity (and optionally field) that
// caused it, so callers and the HTTP layer can report "penalty exceeds deposit
// for item X" instead of a bare message.
type Error struct {
	Kind   Kind
	Entity string
	Field  string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Entity != "" && e.Field != "":
		return fmt.Sprintf("%s: %s.%s: %s", e.Kind, e.Entity, e.Field, e.Msg)
	case e.Entity != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Unauthorized(entity, msg string) *Error {
	return &Error{Kind: KindUnauthorized, Entity: entity, Msg: msg}
}

func NotFound(entity, msg string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Msg: msg}
}

func InvalidState(entity, msg string) *Error {
	return &Error{Kind: KindInvalidState, Entity: entity, Msg: msg}
}

func Validation(entity, field, msg string) *Error {
	return &Error{Kind: KindValidation, Entity: entity, Field: field, Msg: msg}
}

func Validationf(entity, field, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Entity: entity, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func Storage(entity, msg string, cause error) *Error {
	return &Error{Kind: KindStorage, Entity: entity, Msg: msg, Err: cause}
}

// IsKind reports whether err (or anything it wraps) is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == k
	}
	return false
}

// KindOf extracts the kind from err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}
