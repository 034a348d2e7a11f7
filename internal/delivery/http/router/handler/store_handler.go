package handler

import (
	"net/http"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/delivery/http/response"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StoreHandler holds dependencies for store directory handlers.
type StoreHandler struct {
	uc usecase.StoreUsecase
}

// NewStoreHandler is the constructor for StoreHandler, injected by Fx.
func NewStoreHandler(uc usecase.StoreUsecase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// ListStores returns a page of the store directory. When a viewer is
// authenticated, each row carries that viewer's own rating.
func (h *StoreHandler) ListStores(c echo.Context) error {
	input := usecase.ListStoresInput{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Page:   queryInt(c, "page", 0),
		Size:   queryInt(c, "size", 10),
		Viewer: viewerID(c),
	}

	output, err := h.uc.ListStores(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// GetStore returns a single store with the viewer's rating when present.
func (h *StoreHandler) GetStore(c echo.Context) error {
	id, err := pathUUID(c, "id", domainerrors.ErrStoreNotFound)
	if err != nil {
		return err
	}

	output, err := h.uc.GetStore(c.Request().Context(), id, viewerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"store": output}, "")
}

// CreateStore handles admin store creation, optionally assigning an owner.
func (h *StoreHandler) CreateStore(c echo.Context) error {
	var input usecase.CreateStoreInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid store body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.CreateStore(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{"store": output}, "Store created successfully")
}

// UpdateStore applies a partial update; admin-or-owner is checked downstream.
func (h *StoreHandler) UpdateStore(c echo.Context) error {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrNoUserContext
	}

	id, err := pathUUID(c, "id", domainerrors.ErrStoreNotFound)
	if err != nil {
		return err
	}

	var input usecase.UpdateStoreInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid store body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.UpdateStore(c.Request().Context(), id, input, current)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"store": output}, "Store updated successfully")
}

// DeleteStore removes a store; its ratings cascade at the database level.
func (h *StoreHandler) DeleteStore(c echo.Context) error {
	id, err := pathUUID(c, "id", domainerrors.ErrStoreNotFound)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteStore(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Store deleted successfully")
}

// GetStoreRatings returns the store summary plus every rating with rater
// identity. Admins see any store, owners only their own.
func (h *StoreHandler) GetStoreRatings(c echo.Context) error {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrNoUserContext
	}

	id, err := pathUUID(c, "id", domainerrors.ErrStoreNotFound)
	if err != nil {
		return err
	}

	output, err := h.uc.GetStoreRatings(c.Request().Context(), id, current)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// viewerID returns the authenticated viewer's ID when optional
// authentication resolved one.
func viewerID(c echo.Context) *uuid.UUID {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return nil
	}

	return &current.ID
}
