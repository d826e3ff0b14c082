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

// ErrInvalidState indicates an operation attempted on an entity in the wrong
// lifecycle state, e.g. settling an order that is already closed.
var ErrInvalidState = errors.New("entity is in an invalid state for this operation")

// ErrInsufficientStock indicates a settlement would drive a product's stock
// below zero. The whole settlement aborts with no side effects.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrCreditLimitExceeded indicates a credit sale would push a customer's
// balance past their configured credit limit.
var ErrCreditLimitExceeded = errors.New("credit limit exceeded")

// ErrForbidden indicates the caller's role does not permit the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnavailable indicates a transport/infrastructure failure talking to the
// datastore or an external collaborator; callers may retry.
var ErrUnavailable = errors.New("backing service unavailable")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a wrapped cause. The
// repository layer produces these for infrastructure failures.
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
	if e.Err != nil {
		return e.Err
	}
	// Infrastructure AppErrors without a specific cause behave as retryable
	// unavailability for errors.Is checks.
	return ErrUnavailable
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
