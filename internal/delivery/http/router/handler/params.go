package handler

import (
	"strconv"

	domainerrors "ratehub/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// pathUUID parses a path parameter as a UUID. A malformed ID maps to the
// resource's not-found error so probing with garbage looks like a miss.
func pathUUID(c echo.Context, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, notFound
	}

	return id, nil
}

// queryInt reads an integer query parameter, falling back on absence or
// garbage. Range clamping happens in the pagination helpers.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

// queryUUID reads an optional UUID query parameter. Garbage is rejected so
// admin filters fail loudly instead of silently matching nothing.
func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.NewValidationError([]domainerrors.FieldError{
			{Field: name, Message: name + " must be a valid UUID", Value: raw},
		})
	}

	return &id, nil
}
