package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is a domain-specific error returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// ListStoresParams narrows and orders a store directory query.
type ListStoresParams struct {
	// Search matches name or address as a case-insensitive substring.
	Search string
	// ViewerID, when set, attaches the viewer's own rating to each row.
	ViewerID *uuid.UUID
	Sort     Sort
	Page     Pageable
}

// StoreRepository defines the standard operations for store persistence.
type StoreRepository interface {
	// FindByID retrieves a store. A non-nil viewerID left-joins the viewer's
	// own rating into entity.Store.ViewerRating.
	FindByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*entity.Store, error)

	// FindByOwner retrieves the store owned by the given user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error)

	// EmailInUse reports whether any store other than exclude holds the email.
	// Pass uuid.Nil to check against all stores.
	EmailInUse(ctx context.Context, email string, exclude uuid.UUID) (bool, error)

	// Create persists a new store.
	Create(ctx context.Context, store *entity.Store) error

	// Update modifies an existing store.
	Update(ctx context.Context, store *entity.Store) error

	// Delete removes a store; its ratings cascade at the database level.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of stores plus the total count under the same filter.
	List(ctx context.Context, params ListStoresParams) ([]*entity.Store, int64, error)

	// RefreshAggregates recomputes average_rating and total_ratings for the
	// store from its current ratings. Must run in the same transaction as the
	// rating write that invalidated them.
	RefreshAggregates(ctx context.Context, storeID uuid.UUID) error

	// Count returns the total number of stores.
	Count(ctx context.Context) (int64, error)
}
