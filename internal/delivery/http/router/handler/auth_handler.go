// Package handler contains the HTTP handlers for the application.
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

// AuthHandler holds dependencies for account and session handlers.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register handles the self-service registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid registration body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "User registered successfully")
}

// Login handles the credential login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid login body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// GetProfile returns the authenticated user's account.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrNoUserContext
	}

	output, err := h.uc.GetProfile(c.Request().Context(), current.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"user": output}, "")
}

// UpdatePassword changes the authenticated user's password.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrNoUserContext
	}

	var input usecase.UpdatePasswordInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid password body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.uc.UpdatePassword(c.Request().Context(), current.ID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password updated successfully")
}
