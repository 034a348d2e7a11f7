// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when a unique email constraint is violated.
var ErrDuplicateEmail = errors.New("email already registered")

// ListUsersParams narrows and orders a user directory query.
type ListUsersParams struct {
	// Search matches name, email, or address as a case-insensitive substring.
	Search string
	// Role filters by exact role when non-empty.
	Role entity.Role
	Sort Sort
	Page Pageable
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete
// implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// EmailInUse reports whether any user other than exclude holds the email.
	// Pass uuid.Nil to check against all users.
	EmailInUse(ctx context.Context, email string, exclude uuid.UUID) (bool, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user; dependent ratings cascade at the database level.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a page of users plus the total count under the same filter.
	List(ctx context.Context, params ListUsersParams) ([]*entity.User, int64, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}
