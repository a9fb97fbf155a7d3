package core

import (
	"errors"
	"fmt"
)

// Error codes
const (
	NOERROR     int = 0
	EMISSING    int = 122 // font file or image does not exist
	EINVALID    int = 123 // resource or configuration cannot be parsed
	ECONNECTION int = 124 // remote resource cannot be fetched
	EINTERNAL   int = 125 // internal error
	ENOFONT     int = 126 // no usable font left
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EMISSING:
		return "resource not found"
	case EINVALID:
		return "invalid resource"
	case ECONNECTION:
		return "remote resource not available"
	case EINTERNAL:
		return "internal error"
	case ENOFONT:
		return "no usable font"
	}
	return "undefined error"
}

// Sentinel errors, one per error code. Any error with the same code
// matches them with errors.Is.
var (
	ErrMissing    = ErrorWithCode(nil, EMISSING)
	ErrInvalid    = ErrorWithCode(nil, EINVALID)
	ErrConnection = ErrorWithCode(nil, ECONNECTION)
	ErrNoFont     = ErrorWithCode(nil, ENOFONT)
)

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	if e.msg != "" && e.msg != e.error.Error() {
		return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.error)
	}
	return fmt.Sprintf("[%d] %v", e.code, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

// Is matches errors carrying the same code.
func (e coreError) Is(target error) bool {
	if t, ok := target.(coreError); ok {
		return t.code == e.code
	}
	return false
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting the code is created.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// IsCode is a shortcut for Code(err) == code.
func IsCode(err error, code int) bool {
	return Code(err) == code
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}
