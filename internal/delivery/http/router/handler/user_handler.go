package handler

import (
	"net/http"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/delivery/http/response"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user directory handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// ListUsers returns a filtered, sorted page of the user directory.
func (h *UserHandler) ListUsers(c echo.Context) error {
	input := usecase.ListUsersInput{
		Search: c.QueryParam("search"),
		Role:   c.QueryParam("role"),
		Sort:   c.QueryParam("sort"),
		Page:   queryInt(c, "page", 0),
		Size:   queryInt(c, "size", 10),
	}

	output, err := h.uc.ListUsers(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// GetUser returns a single account; store owners carry their store's rating.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathUUID(c, "id", domainerrors.ErrUserNotFound)
	if err != nil {
		return err
	}

	output, err := h.uc.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": output}, "")
}

// CreateUser handles admin account creation with an explicit role.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var input usecase.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid user body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.CreateUser(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{"user": output}, "User created successfully")
}

// UpdateUser applies a partial update; admin-or-self is checked downstream.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrNoUserContext
	}

	id, err := pathUUID(c, "id", domainerrors.ErrUserNotFound)
	if err != nil {
		return err
	}

	var input usecase.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid user body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.UpdateUser(c.Request().Context(), id, input, current)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": output}, "User updated successfully")
}

// DeleteUser removes an account; self-deletion is rejected downstream.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrNoUserContext
	}

	id, err := pathUUID(c, "id", domainerrors.ErrUserNotFound)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Request().Context(), id, current); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// DashboardStats returns platform-wide totals for the admin dashboard.
func (h *UserHandler) DashboardStats(c echo.Context) error {
	output, err := h.uc.DashboardStats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
