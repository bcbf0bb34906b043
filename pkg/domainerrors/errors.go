// Package domainerrors carries coded, typed errors from services to the
// transport layer. Stores return sentinel errors (pkg/sentinel); services
// translate those into coded errors here; handlers map codes to HTTP status.
// No layer swallows a failure into a generic success.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain failure. Codes are terminal: the core performs no
// retry or downgrade, the caller decides what to do with them.
type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeAlreadyExists     Code = "already_exists"
	CodeOwnerMismatch     Code = "owner_mismatch"
	CodeInvalidArgument   Code = "invalid_argument"
	CodeInvalidStatus     Code = "invalid_status"
	CodeExpired           Code = "expired"
	CodeInsufficientFunds Code = "insufficient_funds"
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeInternal          Code = "internal"
)

// Error is a coded domain error. It may wrap an underlying infrastructure
// cause, which stays reachable through errors.Is/As.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(cause error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code from err, or CodeInternal when err is not a coded
// domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-safe message from err. Falls back to the code
// string so raw infrastructure errors never leak to clients.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return string(CodeInternal)
}

// ToHTTPStatus maps a code to the HTTP status the transport layer responds
// with. Unknown codes map to 500.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeInvalidStatus:
		return http.StatusConflict
	case CodeInvalidArgument, CodeOwnerMismatch:
		return http.StatusBadRequest
	case CodeExpired, CodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
