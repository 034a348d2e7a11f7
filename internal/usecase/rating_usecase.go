package usecase

import (
	"context"

	"github.com/google/uuid"

	"ratehub/internal/domain/entity"
)

// --- Input DTOs ---

// SubmitRatingInput defines a rating submission. Resubmitting for the same
// store updates the existing rating in place.
type SubmitRatingInput struct {
	StoreID string `json:"store_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// ListRatingsInput carries the admin-wide rating listing parameters.
type ListRatingsInput struct {
	StoreID *uuid.UUID
	UserID  *uuid.UUID
	Page    int
	Size    int
}

// --- Output DTOs ---

// SubmitRatingOutput reports the persisted rating and whether an existing
// one was updated (the success message differs).
type SubmitRatingOutput struct {
	Rating  *RatingOutput
	Updated bool
}

// UserRatingListOutput is one page of the current user's rating history.
type UserRatingListOutput struct {
	Ratings    []*UserRatingOutput `json:"ratings"`
	Pagination Pagination          `json:"pagination"`
}

// AdminRatingListOutput is one page of the platform-wide rating listing.
type AdminRatingListOutput struct {
	Ratings    []*AdminRatingOutput `json:"ratings"`
	Pagination Pagination           `json:"pagination"`
}

// RatingUsecase defines the interface for rating operations.
type RatingUsecase interface {
	// SubmitRating inserts or updates the requester's rating for a store
	// and recomputes the store's aggregates in the same transaction.
	SubmitRating(ctx context.Context, userID uuid.UUID, input SubmitRatingInput) (*SubmitRatingOutput, error)

	// DeleteRating removes a rating and recomputes the store's aggregates
	// in the same transaction. Only the rating's owner or an admin may
	// delete it.
	DeleteRating(ctx context.Context, ratingID uuid.UUID, requester *entity.User) error

	// ListUserRatings returns the requester's rating history joined with
	// store identity, most recently updated first.
	ListUserRatings(ctx context.Context, userID uuid.UUID, page, size int) (*UserRatingListOutput, error)

	// ListAllRatings returns the platform-wide listing with optional store
	// and user filters.
	ListAllRatings(ctx context.Context, input ListRatingsInput) (*AdminRatingListOutput, error)
}
