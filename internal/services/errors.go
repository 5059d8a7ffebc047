package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindDuplicate    ErrorKind = "duplicate"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindStore        ErrorKind = "store_failure"
)

// Error is the only error type handed to the HTTP layer. Message is safe to
// show to callers; Err keeps the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func ValidationError(message string) *Error {
	return newError(KindValidation, message)
}

func NotFound(message string) *Error {
	return newError(KindNotFound, message)
}

func Duplicate(message string) *Error {
	return newError(KindDuplicate, message)
}

func Unauthorized(message string) *Error {
	return newError(KindUnauthorized, message)
}

func Forbidden(message string) *Error {
	return newError(KindForbidden, message)
}

// storeError wraps a persistence error. Errors that are already *Error pass
// through untouched so transactions can return them verbatim.
func storeError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: KindNotFound, Message: notFoundMsg, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindDuplicate, Message: "Registro duplicado", Err: err}
	}
	return &Error{Kind: KindStore, Message: "Erro interno do servidor", Err: err}
}

// KindOf reports the kind of err, KindStore for anything unclassified.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func Conflict(message string) *Error {
	return newError(KindConflict, message)
}
