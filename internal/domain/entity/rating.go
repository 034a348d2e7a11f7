package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a single user's score for a single store. The (UserID, StoreID)
// pair is unique: resubmitting updates the existing row in place.
type Rating struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	StoreID uuid.UUID
	Rating  int // Integer score in [1,5].
	// Store and User are populated only by joined list queries; nil otherwise.
	Store     *Store
	User      *User
	CreatedAt time.Time
	UpdatedAt time.Time
}
