package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures for the HTTP layer: NOT_FOUND maps to 404, INVALID to
// 400 and anything else to 500.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error is a classified failure whose Message is safe to show to API callers.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is an *Error with the same code and message, so a
// sentinel wrapped with WrapError still matches it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

var (
	ErrTaskNotFound   = NewError(ErrCodeNotFound, "Task not found")
	ErrInvalidPayload = NewError(ErrCodeInvalid, "invalid payload")
	ErrTitleRequired  = NewError(ErrCodeInvalid, "Task title is required")
)

// CodeOf returns the classification of err. Unclassified errors are INTERNAL.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) && dErr.Code != "" {
		return dErr.Code
	}
	return ErrCodeInternal
}

// IsDomainError reports whether err is classified with code.
func IsDomainError(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
