package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address" validate:"omitempty,max=400"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordInput defines the data required to change the current
// user's password. Field names match the wire format.
type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password"`
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user together with a signed token.
type AuthOutput struct {
	User  *UserOutput `json:"user"`
	Token string      `json:"token"`
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a regular user account and returns it with a token.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and returns the user with a fresh token.
	// Failures are uniformly ErrInvalidCredentials.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// GetProfile returns the current user's account.
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserOutput, error)

	// UpdatePassword verifies the current password and stores a new hash.
	UpdatePassword(ctx context.Context, userID uuid.UUID, input UpdatePasswordInput) error
}
