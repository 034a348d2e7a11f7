package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRatingNotFound is a domain-specific error returned when a rating is not found.
var ErrRatingNotFound = errors.New("rating not found")

// ErrDuplicateRating is returned when the (user, store) uniqueness constraint
// rejects an insert; it signals that a concurrent writer won the race.
var ErrDuplicateRating = errors.New("rating already exists for user and store")

// ListRatingsParams filters the admin-wide rating listing.
type ListRatingsParams struct {
	StoreID *uuid.UUID
	UserID  *uuid.UUID
	Page    Pageable
}

// RatingRepository defines the standard operations for rating persistence.
type RatingRepository interface {
	// FindByID retrieves a single rating by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rating, error)

	// FindForUpdate retrieves the rating for a (user, store) pair with a
	// row-level write lock, serializing concurrent upserts of the same pair.
	// Only meaningful inside a transaction.
	FindForUpdate(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error)

	// Create persists a new rating. Returns ErrDuplicateRating when the
	// (user_id, store_id) unique constraint is violated.
	Create(ctx context.Context, rating *entity.Rating) error

	// Update modifies an existing rating's value and refreshes the entity's
	// timestamps from the stored row.
	Update(ctx context.Context, rating *entity.Rating) error

	// Delete removes a rating.
	Delete(ctx context.Context, id uuid.UUID) error

	// StoreIDsByUser returns the distinct store IDs the user has rated.
	// Callers that are about to cascade-delete the user's ratings use it to
	// know which store aggregates need recomputing afterwards.
	StoreIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// ListByUser returns the user's ratings joined with their stores, ordered
	// by updated_at descending, plus the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, page Pageable) ([]*entity.Rating, int64, error)

	// ListByStore returns all ratings for a store joined with rater identity,
	// ordered by created_at descending.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Rating, error)

	// List returns ratings joined with store and user identity under the
	// given filter, ordered by created_at descending, plus the total count.
	List(ctx context.Context, params ListRatingsParams) ([]*entity.Rating, int64, error)

	// Count returns the total number of ratings.
	Count(ctx context.Context) (int64, error)
}
