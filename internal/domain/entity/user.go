// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. PasswordHash is carried for credential
// checks inside the application and must never reach the wire; the usecase
// layer maps users to output DTOs that strip it.
type User struct {
	ID           uuid.UUID // Global unique identifier for the account.
	Name         string    // Display name, 20-60 characters by policy.
	Email        string    // Login identifier, unique across the platform.
	PasswordHash string    // bcrypt hash of the password. Never serialized.
	Address      string    // Optional postal address, up to 400 characters.
	Role         Role      // Closed role enumeration driving authorization.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
