package model

import (
	"time"

	"github.com/google/uuid"
)

// RatingModel mirrors the 'ratings' table. A user rates a store at most once,
// enforced by the composite unique index.
type RatingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_store;index"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User  *UserModel  `gorm:"foreignKey:UserID"`
	Store *StoreModel `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
