package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel mirrors the 'stores' table. AverageRating and TotalRatings are
// denormalized aggregates refreshed inside the same transaction as rating writes.
type StoreModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name          string     `gorm:"type:varchar(100);not null"`
	Email         string     `gorm:"type:varchar(255);unique;not null"`
	Address       string     `gorm:"type:varchar(400)"`
	OwnerID       *uuid.UUID `gorm:"type:uuid;index"`
	AverageRating *float64   `gorm:"type:decimal(3,2)"`
	TotalRatings  int        `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Owner   *UserModel    `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	Ratings []RatingModel `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}
