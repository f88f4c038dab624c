// Package errors defines the application error type shared by the TX Pay
// client, the services and the console handlers. Codes, not messages, drive
// HTTP statuses and localized texts.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeConflict     ErrorCode = "conflict" // duplicate email, refused state transition
	ErrCodeValidation   ErrorCode = "validation"
	ErrCodeForeignKey   ErrorCode = "foreign_key"
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	ErrCodeForbidden    ErrorCode = "forbidden"
	ErrCodeUnavailable  ErrorCode = "unavailable" // the TX Pay API could not be reached or failed
	ErrCodeInternal     ErrorCode = "internal"
	ErrCodeTimeout      ErrorCode = "timeout"
	ErrCodeCanceled     ErrorCode = "canceled"
)

var codeStatus = map[ErrorCode]int{
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeForeignKey:   http.StatusConflict,
	ErrCodeValidation:   http.StatusUnprocessableEntity,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeUnavailable:  http.StatusBadGateway,
	ErrCodeTimeout:      http.StatusGatewayTimeout,
	ErrCodeCanceled:     http.StatusRequestTimeout,
}

// HTTPStatus is the status a console response reports for c. Unknown codes
// are internal errors.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := codeStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AppError is a categorized error. Field names the offending input field for
// validation and conflict errors.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Field   string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New returns an AppError with code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NotFound(message string) *AppError     { return New(ErrCodeNotFound, message) }
func Conflict(message string) *AppError     { return New(ErrCodeConflict, message) }
func Validation(message string) *AppError   { return New(ErrCodeValidation, message) }
func Unauthorized(message string) *AppError { return New(ErrCodeUnauthorized, message) }
func Forbidden(message string) *AppError    { return New(ErrCodeForbidden, message) }
func Unavailable(message string) *AppError  { return New(ErrCodeUnavailable, message) }
func Internal(message string) *AppError     { return New(ErrCodeInternal, message) }

// Validationf formats a validation message.
func Validationf(format string, args ...any) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// ValidationField reports message against one input field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Wrap categorizes err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Is reports whether err carries code anywhere in its chain.
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

func IsConflict(err error) bool     { return Is(err, ErrCodeConflict) }
func IsValidation(err error) bool   { return Is(err, ErrCodeValidation) }
func IsUnauthorized(err error) bool { return Is(err, ErrCodeUnauthorized) }
func IsUnavailable(err error) bool  { return Is(err, ErrCodeUnavailable) }
func IsCanceled(err error) bool     { return Is(err, ErrCodeCanceled) }

// GetCode returns the code of the first AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	if appErr, ok := asAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// GetField returns the offending field of err, or "".
func GetField(err error) string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Field
	}
	return ""
}

// GetMessage returns the AppError message, or the raw error text otherwise.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := asAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
