package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the borrower already holds an active loan for the book.
var ErrConflict = errors.New("active loan already exists")

// ErrLimitExceeded indicates that the borrower reached the maximum number of active loans.
var ErrLimitExceeded = errors.New("active loan limit reached")

// ErrUnavailable indicates that no copy of the book can be lent right now.
var ErrUnavailable = errors.New("book unavailable")

// ErrRemoteUnreachable indicates a transport failure talking to the catalog or user service.
var ErrRemoteUnreachable = errors.New("remote service unreachable")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// LimitExceededError carries the borrower's current active loan count.
// It matches ErrLimitExceeded with errors.Is.
type LimitExceededError struct {
	Current int
	Limit   int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s: %d active loans (limit %d)", ErrLimitExceeded.Error(), e.Current, e.Limit)
}

func (e *LimitExceededError) Unwrap() error { return ErrLimitExceeded }

// NewLimitExceeded builds a LimitExceededError.
func NewLimitExceeded(current, limit int) *LimitExceededError {
	return &LimitExceededError{Current: current, Limit: limit}
}

// AppError wraps an infrastructure failure with the HTTP status it should surface as.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
