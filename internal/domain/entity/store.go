package entity

import (
	"time"

	"github.com/google/uuid"
)

// Store is a rateable store listing. AverageRating and TotalRatings are
// derived aggregates over the store's ratings; they are recomputed inside the
// same transaction as every rating write and never mutated directly.
type Store struct {
	ID            uuid.UUID
	Name          string
	Email         string     // Contact email, unique across stores.
	Address       string
	OwnerID       *uuid.UUID // Owning user; must hold the store_owner role when set.
	AverageRating *float64   // Mean of all ratings, nil while the store has none.
	TotalRatings  int
	// ViewerRating is the requesting user's own rating for this store. It is
	// populated only by viewer-scoped reads (left join) and is nil for
	// anonymous queries or when the viewer has not rated the store.
	ViewerRating *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
