package errors

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeInternal        ErrorCode = "INTERNAL_ERROR"

	// Resolution failures that abort the requested operation.
	CodeStartFileUnreadable  ErrorCode = "START_FILE_UNREADABLE"
	CodeSnippetFileNotFound  ErrorCode = "SNIPPET_FILE_NOT_FOUND"
	CodeNoSnippetFound       ErrorCode = "NO_SNIPPET_FOUND"
	CodeEmptySnippetBody     ErrorCode = "EMPTY_SNIPPET_BODY"
	CodeUnreadableSourceFile ErrorCode = "UNREADABLE_SOURCE_FILE"
)

type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]interface{}
}

// CtxPath is the context key naming the source file an error is about.
const CtxPath = "path"

func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) > 0 {
		msg += fmt.Sprintf(" %v", e.Context)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg}
}

func Wrap(err error, code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg, Err: err}
}

// WithPath builds a coded error that names the file it failed on.
func WithPath(err error, code ErrorCode, msg, path string) error {
	de := &DomainError{Code: code, Message: msg, Err: err}
	return de.WithContext(CtxPath, path)
}

// AddContext attaches key/value context, wrapping foreign errors as internal ones.
func AddContext(err error, key string, value interface{}) error {
	var de *DomainError
	if errors.As(err, &de) {
		de.WithContext(key, value)
		return de
	}
	return &DomainError{
		Code:    CodeInternal,
		Message: "wrapped error",
		Err:     err,
		Context: map[string]interface{}{key: value},
	}
}

func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost DomainError, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
