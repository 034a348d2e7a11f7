package usecase

import (
	"context"

	"github.com/google/uuid"

	"ratehub/internal/domain/entity"
)

// --- Input DTOs ---

// ListStoresInput carries the store directory query parameters. Viewer, when
// set, attaches the viewer's own rating to each row.
type ListStoresInput struct {
	Search string
	Sort   string
	Page   int
	Size   int
	Viewer *uuid.UUID
}

// CreateStoreInput defines the data an admin provides to create a store.
type CreateStoreInput struct {
	Name    string  `json:"name" validate:"required,min=1,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Address string  `json:"address" validate:"omitempty,max=400"`
	OwnerID *string `json:"owner_id" validate:"omitempty,uuid"`
}

// UpdateStoreInput is a partial update; nil fields are left untouched.
type UpdateStoreInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=400"`
	OwnerID *string `json:"owner_id" validate:"omitempty,uuid"`
}

// --- Output DTOs ---

// StoreListOutput is one page of the store directory.
type StoreListOutput struct {
	Stores     []*StoreOutput `json:"stores"`
	Pagination Pagination     `json:"pagination"`
}

// StoreRatingsOutput is the raters listing for one store.
type StoreRatingsOutput struct {
	Store   *StoreSummaryOutput `json:"store"`
	Ratings []*StoreRaterOutput `json:"ratings"`
}

// StoreSortFields is the allow-list of sortable store directory columns.
var StoreSortFields = []string{"name", "email", "address", "average_rating", "created_at"}

// StoreUsecase defines the interface for store directory operations.
type StoreUsecase interface {
	// ListStores returns a page of stores with optional substring search
	// over name or address.
	ListStores(ctx context.Context, input ListStoresInput) (*StoreListOutput, error)

	// GetStore returns one store, with the viewer's own rating when a
	// viewer is given.
	GetStore(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*StoreOutput, error)

	// CreateStore creates a store. A given owner must exist and hold the
	// store_owner role.
	CreateStore(ctx context.Context, input CreateStoreInput) (*StoreOutput, error)

	// UpdateStore applies a partial update. Only an admin or the current
	// owner may update; only an admin may reassign ownership.
	UpdateStore(ctx context.Context, id uuid.UUID, input UpdateStoreInput, requester *entity.User) (*StoreOutput, error)

	// DeleteStore removes a store; its ratings cascade.
	DeleteStore(ctx context.Context, id uuid.UUID) error

	// GetStoreRatings returns all ratings for a store with rater identity.
	// Only an admin or that store's owner may call it.
	GetStoreRatings(ctx context.Context, id uuid.UUID, requester *entity.User) (*StoreRatingsOutput, error)
}
