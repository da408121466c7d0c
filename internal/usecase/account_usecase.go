// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"nimbus/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Validation mirrors the pre-conditions the HTTP layer guarantees: a
// well-formed email and a non-empty password.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput defines the data required to change the password of the
// authenticated account.
type ChangePasswordInput struct {
	Password string `json:"password" validate:"required"`
}

// FavouriteInput defines the payload for saving a favourite location.
type FavouriteInput struct {
	Name    string  `json:"name" validate:"required"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// RemoveFavouriteInput identifies favourites by their exact coordinates.
type RemoveFavouriteInput struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// --- Output DTOs ---

// LoginOutput returns the issued access token after a successful login.
type LoginOutput struct {
	Token   string
	Account *entity.Account
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account after checking the email is unused.
	Register(ctx context.Context, input *RegisterInput) (*entity.Account, error)

	// Authenticate verifies credentials and issues an access token. Unknown
	// email and wrong password fail identically.
	Authenticate(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// ChangePassword re-hashes and stores a new password for the account.
	ChangePassword(ctx context.Context, accountID uuid.UUID, input *ChangePasswordInput) (*entity.Account, error)

	// ListFavourites returns the account's favourites in append order.
	ListFavourites(ctx context.Context, accountID uuid.UUID) ([]entity.Favourite, error)

	// AddFavourite appends a favourite; duplicates are permitted.
	AddFavourite(ctx context.Context, accountID uuid.UUID, input *FavouriteInput) (*entity.Account, error)

	// RemoveFavourite removes every favourite at exactly (lat, lon).
	RemoveFavourite(ctx context.Context, accountID uuid.UUID, input *RemoveFavouriteInput) (*entity.Account, error)
}
