// Package errors provides coded errors for starmap.
//
// Every error that crosses a package boundary and that a caller might want
// to branch on carries a [Code]:
//
//   - INVALID_*: bad options, catalogs, formats or paths
//   - *NOT_FOUND: missing files or remote catalogs
//   - NETWORK_ERROR, RATE_LIMITED: remote catalog downloads
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %v", scale)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // reject the options
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidCatalog, decodeErr, "decode %s", path)
//
// Codes survive fmt.Errorf("%w") wrapping.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidCatalog Code = "INVALID_CATALOG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// IsInvalid reports whether c is one of the INVALID_* codes, i.e. the
// caller asked for something that can never succeed as given.
func (c Code) IsInvalid() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns err's text with code prefixes removed from every
// *Error in the chain.
func UserMessage(err error) string {
	e, ok := as(err)
	if !ok {
		return err.Error()
	}
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + UserMessage(e.Cause)
	}
	// Keep fmt.Errorf prefixes added around the coded error.
	if outer, inner := err.Error(), e.Error(); outer != inner && strings.HasSuffix(outer, inner) {
		msg = strings.TrimSuffix(outer, inner) + msg
	}
	return msg
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
