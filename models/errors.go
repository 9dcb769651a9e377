package models

import "fmt"

// ErrorValidation rejects a request because of missing or malformed input,
// including a duplicate article name. Err holds validator details if any.
type ErrorValidation struct {
	Message string
	Err     error
}

func (e ErrorValidation) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e ErrorValidation) Unwrap() error {
	return e.Err
}

// ErrorNotFound is returned for unknown articles and for drafts the
// requester is not allowed to see.
type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string {
	return e.Message
}

// ErrorUnauthorized means a mutating operation arrived without an identity.
type ErrorUnauthorized struct {
	Message string
}

func (e ErrorUnauthorized) Error() string {
	return e.Message
}

// ErrorForbidden means the identity is known but is not the article author.
type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string {
	return e.Message
}

func NewValidationError(message string, err error) error {
	return ErrorValidation{Message: message, Err: err}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return ErrorNotFound{Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorizedError(message string) error {
	return ErrorUnauthorized{Message: message}
}

func NewForbiddenError(message string) error {
	return ErrorForbidden{Message: message}
}
