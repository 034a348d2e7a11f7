// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"time"

	"github.com/google/uuid"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/repository"
)

// Pagination is the list-payload block consumed by clients. Its field names
// are part of the wire format and intentionally camelCase.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// NewPagination derives the pagination block from the requested page and the
// total row count under the same filter.
func NewPagination(page repository.Pageable, total int64) Pagination {
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}

	return Pagination{
		CurrentPage:  page.Page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: page.Size,
	}
}

// UserOutput is the wire representation of a user. The password hash never
// appears here.
type UserOutput struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Address   string      `json:"address"`
	Role      entity.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewUserOutput maps a user entity onto its wire representation.
func NewUserOutput(user *entity.User) *UserOutput {
	return &UserOutput{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UserDetailOutput adds the owned store's average rating for store owners.
// The rating key is always present and null for non-owners.
type UserDetailOutput struct {
	UserOutput
	Rating *float64 `json:"rating"`
}

// StoreOutput is the wire representation of a store. UserRating is the
// requesting user's own rating and stays null for anonymous viewers.
type StoreOutput struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Address       string     `json:"address"`
	OwnerID       *uuid.UUID `json:"owner_id"`
	AverageRating *float64   `json:"average_rating"`
	TotalRatings  int        `json:"total_ratings"`
	UserRating    *int       `json:"user_rating"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewStoreOutput maps a store entity onto its wire representation.
func NewStoreOutput(store *entity.Store) *StoreOutput {
	return &StoreOutput{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
		UserRating:    store.ViewerRating,
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
}

// StoreSummaryOutput is the condensed store header of the raters listing.
type StoreSummaryOutput struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	AverageRating *float64  `json:"average_rating"`
}

// RatingOutput is the bare rating returned after a submit.
type RatingOutput struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRatingOutput maps a rating entity onto its bare wire representation.
func NewRatingOutput(rating *entity.Rating) *RatingOutput {
	return &RatingOutput{
		ID:        rating.ID,
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// UserRatingOutput is a rating in the user's own history, flattened with the
// rated store's identity.
type UserRatingOutput struct {
	ID           uuid.UUID `json:"id"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	StoreID      uuid.UUID `json:"store_id"`
	StoreName    string    `json:"store_name"`
	StoreAddress string    `json:"store_address"`
}

// StoreRaterOutput is a rating on a store, flattened with the rater's identity.
type StoreRaterOutput struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
}

// AdminRatingOutput is the platform-wide rating listing row, flattened with
// both store and rater identity.
type AdminRatingOutput struct {
	ID        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	StoreID   uuid.UUID `json:"store_id"`
	StoreName string    `json:"store_name"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
}

// DashboardStatsOutput carries the admin dashboard's three platform counts.
// Field names are part of the wire format and intentionally camelCase.
type DashboardStatsOutput struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}
