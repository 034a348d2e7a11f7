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

// RatingHandler holds dependencies for rating handlers.
type RatingHandler struct {
	uc usecase.RatingUsecase
}

// NewRatingHandler is the constructor for RatingHandler, injected by Fx.
func NewRatingHandler(uc usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

// SubmitRating creates or replaces the caller's rating for a store. The
// success message tells the client which of the two happened.
func (h *RatingHandler) SubmitRating(c echo.Context) error {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrNoUserContext
	}

	var input usecase.SubmitRatingInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid rating body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.SubmitRating(c.Request().Context(), current.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Rating submitted successfully"
	if output.Updated {
		message = "Rating updated successfully"
	}

	return response.Success(c, http.StatusOK, map[string]any{"rating": output.Rating}, message)
}

// DeleteRating removes a rating; owner-or-admin is checked downstream.
func (h *RatingHandler) DeleteRating(c echo.Context) error {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrNoUserContext
	}

	id, err := pathUUID(c, "id", domainerrors.ErrRatingNotFound)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteRating(c.Request().Context(), id, current); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Rating deleted successfully")
}

// ListMyRatings returns the caller's ratings joined with store identity.
func (h *RatingHandler) ListMyRatings(c echo.Context) error {
	current, ok := deliverycontext.GetCurrentUser(c)
	if !ok {
		return domainerrors.ErrNoUserContext
	}

	page := queryInt(c, "page", 0)
	size := queryInt(c, "size", 10)

	output, err := h.uc.ListUserRatings(c.Request().Context(), current.ID, page, size)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// ListAllRatings returns the admin-wide rating listing with optional
// store_id/user_id filters.
func (h *RatingHandler) ListAllRatings(c echo.Context) error {
	storeID, err := queryUUID(c, "store_id")
	if err != nil {
		return err
	}

	userID, err := queryUUID(c, "user_id")
	if err != nil {
		return err
	}

	input := usecase.ListRatingsInput{
		StoreID: storeID,
		UserID:  userID,
		Page:    queryInt(c, "page", 0),
		Size:    queryInt(c, "size", 10),
	}

	output, err := h.uc.ListAllRatings(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
