// Package errors provides the structured error type shared by the parser,
// the calculator and the batch driver
package errors

// Always import the project errors package as perr

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies failures; per-line codes are recoverable, NotFound and
// Unavailable abort a run
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeNotFound is for input resources that cannot be located or opened
	ErrorCodeNotFound

	// ErrorCodeUnavailable is for source backends that cannot be reached
	ErrorCodeUnavailable

	// ErrorCodeMalformedStructure is for lines with too few fields
	ErrorCodeMalformedStructure

	// ErrorCodeInvalidFieldValue is for fields that fail numeric or integer parsing
	ErrorCodeInvalidFieldValue

	// ErrorCodeInvalidArgument is for calculator precondition failures
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for invalid configuration or request payloads
	ErrorCodeValidation
)

// String returns a stable label, used for metrics and logs
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeNotFound:
		return "not_found"
	case ErrorCodeUnavailable:
		return "unavailable"
	case ErrorCodeMalformedStructure:
		return "malformed_structure"
	case ErrorCodeInvalidFieldValue:
		return "invalid_field_value"
	case ErrorCodeInvalidArgument:
		return "invalid_argument"
	case ErrorCodeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// HTTPStatusCode turns an ErrorCode into an http status code
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case ErrorCodeMalformedStructure, ErrorCodeInvalidFieldValue, ErrorCodeValidation:
		return http.StatusBadRequest
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured error type
// msg is human facing; field, line and raw describe the offending input when known
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	line  int
	raw   string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Message returns the message without the wrapped cause
func (e *Error) Message() string { return e.msg }

// Field returns the offending field label, if any
func (e *Error) Field() string { return e.field }

// Line returns the 1-based input line, or 0 when not tied to a line
func (e *Error) Line() int { return e.line }

// Raw returns the offending raw text, if any
func (e *Error) Raw() string { return e.raw }

// New creates a new *Error
func New(code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg}
}

// Newf creates a new *Error with a formatted message
func Newf(code ErrorCode, format string, args ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	if orig == nil {
		return nil
	}
	return &Error{orig: orig, code: code, msg: msg}
}

// FieldValue builds an InvalidFieldValue error that remembers where the bad value came from
func FieldValue(field string, line int, raw, msg string) error {
	return &Error{code: ErrorCodeInvalidFieldValue, msg: msg, field: field, line: line, raw: raw}
}

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// MessageOf returns the human message of err without any wrapped cause
func MessageOf(err error) string {
	if e, ok := As(err); ok {
		return e.msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
