// Package apperrs defines the closed set of application error kinds shared by
// the service layer and the HTTP boundary. Handlers inspect the kind with
// errors.As instead of matching on message text.
package apperrs

import "fmt"

// Kind classifies an application error.
type Kind int

const (
	// KindStorage covers datastore rejections and unexpected persistence
	// failures.
	KindStorage Kind = iota
	// KindNotFound means the referenced resource does not exist.
	KindNotFound
	// KindForbidden means the resource exists but the caller does not own it.
	KindForbidden
	// KindValidation means the input was malformed or out of constraint.
	KindValidation
	// KindUnavailable means an upstream dependency (the suggestion service)
	// could not serve the request.
	KindUnavailable
)

// Error is an application error with a classification and, for validation
// failures, a per-field detail map.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a KindForbidden error.
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error carrying field-level details.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Storage wraps a datastore failure.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// Unavailable wraps an upstream dependency failure.
func Unavailable(message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}
