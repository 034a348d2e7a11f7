// Package response defines the JSON envelope shared by every endpoint.
package response

import (
	domainerrors "ratehub/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response body. Message, Data and Errors are each
// omitted when empty so success and failure bodies stay minimal.
type Envelope struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message,omitempty"`
	Data    any                       `json:"data,omitempty"`
	Errors  []domainerrors.FieldError `json:"errors,omitempty"`
}

// Success writes a success envelope with the given payload and message.
func Success(c echo.Context, statusCode int, data any, message string) error {
	return c.JSON(statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Failure writes an error envelope with just a message.
func Failure(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
	})
}

// ValidationFailure writes a 400-style envelope carrying the per-field
// breakdown of a failed request validation.
func ValidationFailure(c echo.Context, statusCode int, message string, fields []domainerrors.FieldError) error {
	return c.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}
