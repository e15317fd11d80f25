// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindNotFound           Kind = "not_found"
	KindInvalidTransition  Kind = "invalid_transition"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindConflict           Kind = "conflict"
	KindPreconditionFailed Kind = "precondition_failed"
	KindInternal           Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrConflict) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidTransition  = &Error{Kind: KindInvalidTransition}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrPreconditionFailed = &Error{Kind: KindPreconditionFailed}
)

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func ValidationFields(message string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func InvalidTransition(entity, from, to string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: fmt.Sprintf("%s cannot move from %s to %s", entity, from, to)}
}

func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func PreconditionFailed(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPreconditionFailed, Message: fmt.Sprintf(format, args...)}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf reports the kind carried by err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func HTTPStatus(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case KindUnauthorized, KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindPreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
