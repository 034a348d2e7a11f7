package usecase

import (
	"context"

	"github.com/google/uuid"

	"ratehub/internal/domain/entity"
)

// --- Input DTOs ---

// ListUsersInput carries the directory query parameters. Sort is the raw
// "<field>:<ASC|DESC>" token; it is sanitized against the allow-list below.
type ListUsersInput struct {
	Search string
	Role   string
	Sort   string
	Page   int
	Size   int
}

// CreateUserInput defines the data an admin provides to create an account.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address" validate:"omitempty,max=400"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user store_owner"`
}

// UpdateUserInput is a partial update; nil fields are left untouched.
// A patch with no recognized fields is rejected.
type UpdateUserInput struct {
	Name    *string `json:"name" validate:"omitempty,min=20,max=60"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=400"`
	Role    *string `json:"role" validate:"omitempty,oneof=admin user store_owner"`
}

// --- Output DTOs ---

// UserListOutput is one page of the user directory.
type UserListOutput struct {
	Users      []*UserOutput `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// UserSortFields is the allow-list of sortable user directory columns.
var UserSortFields = []string{"name", "email", "address", "role", "created_at"}

// UserUsecase defines the interface for user directory operations.
type UserUsecase interface {
	// ListUsers returns a page of the directory with optional substring
	// search (name/email/address) and role filter.
	ListUsers(ctx context.Context, input ListUsersInput) (*UserListOutput, error)

	// GetUser returns a user; for store owners the owned store's average
	// rating is attached.
	GetUser(ctx context.Context, id uuid.UUID) (*UserDetailOutput, error)

	// CreateUser creates an account with an explicit role (default user).
	CreateUser(ctx context.Context, input CreateUserInput) (*UserOutput, error)

	// UpdateUser applies a partial update. Non-admin requesters may only
	// update themselves and may not change roles.
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput, requester *entity.User) (*UserOutput, error)

	// DeleteUser removes an account. Requesters cannot delete themselves.
	DeleteUser(ctx context.Context, id uuid.UUID, requester *entity.User) error

	// DashboardStats returns the platform-wide counts for the admin
	// dashboard.
	DashboardStats(ctx context.Context) (*DashboardStatsOutput, error)
}
