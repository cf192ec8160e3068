package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindConsistency
	KindPartialFailure
	KindExternalService
)

type Error struct {
	kind    Kind
	message string
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the user-facing text without any wrapped cause.
func (e *Error) Message() string {
	return e.message
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{kind: kind, message: message, wrapped: err}
}

func Validation(message string) *Error      { return New(KindValidation, message) }
func Unauthenticated(message string) *Error { return New(KindAuthentication, message) }
func Forbidden(message string) *Error       { return New(KindAuthorization, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func Consistency(message string) *Error     { return New(KindConsistency, message) }
func External(message string, err error) *Error {
	return Wrap(KindExternalService, message, err)
}

// PartialFailure marks a cascade step that failed after the primary
// mutation already committed. Callers may retry the cascade.
func PartialFailure(message string, err error) *Error {
	return Wrap(KindPartialFailure, message, err)
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict, KindConsistency:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
