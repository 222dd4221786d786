package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrDuplicateDocument indicates that a movement with the same document type and
// document number already exists.
var ErrDuplicateDocument = errors.New("document number already exists for document type")

// ErrInsufficientFunds indicates that an operation would leave an account with a
// negative balance and was refused. The balance is untouched.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInUse indicates that a delete was blocked because other records still
// reference the resource.
var ErrInUse = errors.New("resource is in use")

// ErrConflict indicates a concurrent-modification or state conflict; the whole
// operation is safe to retry from scratch.
var ErrConflict = errors.New("conflict detected")

// ErrForbidden indicates the caller is authenticated but not allowed to perform
// the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an infrastructure failure with a status code and a
// human-readable message. Business-rule failures use the sentinel errors above
// instead.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
