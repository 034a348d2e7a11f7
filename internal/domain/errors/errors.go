// Package errors defines the application error taxonomy shared between the
// usecase and delivery layers.
package errors

import (
	"net/http"

	"ratehub/internal/errors"
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

// FieldError describes one request-body field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value"`
}

// ValidationError carries the per-field breakdown of a failed request
// validation alongside the usual AppError surface.
type ValidationError struct {
	*BaseError
	Fields []FieldError
}

// NewValidationError creates a ValidationError with the given field failures.
func NewValidationError(fields []FieldError) *ValidationError {
	return &ValidationError{
		BaseError: ErrValidationFailed,
		Fields:    fields,
	}
}

// Predefined error types
var (
	// Validation and bad-request errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)

	ErrNoUpdatableFields = NewBaseError(
		http.StatusBadRequest,
		"NO_UPDATABLE_FIELDS",
		"No valid fields to update",
		"",
	)

	ErrCurrentPasswordIncorrect = NewBaseError(
		http.StatusBadRequest,
		"CURRENT_PASSWORD_INCORRECT",
		"Current password is incorrect",
		"",
	)

	ErrSelfDeletion = NewBaseError(
		http.StatusBadRequest,
		"SELF_DELETION",
		"Cannot delete your own account",
		"",
	)

	ErrOwnerNotFound = NewBaseError(
		http.StatusBadRequest,
		"OWNER_NOT_FOUND",
		"Owner user not found",
		"",
	)

	ErrOwnerRoleRequired = NewBaseError(
		http.StatusBadRequest,
		"OWNER_ROLE_REQUIRED",
		"User must have store_owner role to own a store",
		"",
	)

	// Authentication errors
	ErrTokenRequired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_REQUIRED",
		"Access token is required",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid token",
		"",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"Token expired",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrNoUserContext = NewBaseError(
		http.StatusUnauthorized,
		"NO_USER_CONTEXT",
		"Access denied. No user context.",
		"",
	)

	// Authorization errors
	ErrAccessDenied = NewBaseError(
		http.StatusForbidden,
		"ACCESS_DENIED",
		"Access denied",
		"",
	)

	ErrInsufficientRole = NewBaseError(
		http.StatusForbidden,
		"INSUFFICIENT_ROLE",
		"Access denied. Insufficient permissions.",
		"",
	)

	// Not-found errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrStoreNotFound = NewBaseError(
		http.StatusNotFound,
		"STORE_NOT_FOUND",
		"Store not found",
		"",
	)

	ErrRatingNotFound = NewBaseError(
		http.StatusNotFound,
		"RATING_NOT_FOUND",
		"Rating not found",
		"",
	)

	// Conflict errors
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"Email is already taken",
		"",
	)

	ErrUserEmailExists = NewBaseError(
		http.StatusConflict,
		"USER_EMAIL_EXISTS",
		"User already exists with this email",
		"",
	)

	ErrStoreEmailExists = NewBaseError(
		http.StatusConflict,
		"STORE_EMAIL_EXISTS",
		"Store already exists with this email",
		"",
	)

	ErrRatingConflict = NewBaseError(
		http.StatusConflict,
		"RATING_CONFLICT",
		"Rating was submitted concurrently, please retry",
		"",
	)
)

// NewDatabaseExecuteError wraps an unexpected database failure. The raw error
// is preserved for server-side logging only; clients see a generic message.
func NewDatabaseExecuteError(err error, message string) error {
	base := NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		message,
		err.Error(),
	)

	return errors.Wrap(base, message)
}
