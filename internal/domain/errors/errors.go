// Package errors defines the typed, recoverable error kinds returned by the
// ledger core: Unauthorized, InvalidArgument, NotFound, AlreadyExists and
// InsufficientQuantity. None of them is fatal to the process.
package errors

import (
	"net/http"

	"pharmachain/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrUnauthorized is returned when the caller's role does not permit the operation.
	ErrUnauthorized = NewBaseError(
		http.StatusForbidden,
		"UNAUTHORIZED",
		"caller is not authorized for this operation",
		"",
	)

	// ErrInvalidArgument is returned for malformed or mismatched input:
	// zero identifiers, non-positive quantities, unequal parallel arrays,
	// invalid roles or lifecycle transitions.
	ErrInvalidArgument = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ARGUMENT",
		"invalid argument",
		"",
	)

	// ErrMaterialNotFound is returned when a material has never been restocked.
	ErrMaterialNotFound = NewBaseError(
		http.StatusNotFound,
		"MATERIAL_NOT_FOUND",
		"raw material not found",
		"",
	)

	// ErrBatchNotFound is returned when no batch exists for a (medicine, batch) pair.
	ErrBatchNotFound = NewBaseError(
		http.StatusNotFound,
		"BATCH_NOT_FOUND",
		"batch not found",
		"",
	)

	// ErrOrderNotFound is returned when the referenced order does not exist.
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"order not found",
		"",
	)

	// ErrBatchAlreadyExists is returned on a duplicate (medicine, batch) key.
	// Batch creation is a one-shot operation, never an update.
	ErrBatchAlreadyExists = NewBaseError(
		http.StatusConflict,
		"BATCH_ALREADY_EXISTS",
		"batch already exists",
		"",
	)

	// ErrOrderAlreadyExists is returned on a duplicate order id.
	ErrOrderAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ORDER_ALREADY_EXISTS",
		"order already exists",
		"",
	)

	// ErrInsufficientQuantity is returned when a deduction exceeds the balance.
	ErrInsufficientQuantity = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_QUANTITY",
		"insufficient material quantity",
		"",
	)

	// ErrInternalError covers unexpected infrastructure failures.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
