// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"nimbus/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID, including its favourites.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address, including its favourites.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account. The storage assigns the ID and enforces
	// email uniqueness; a violation surfaces as the domain conflict error.
	Create(ctx context.Context, account *entity.Account) error

	// UpdatePassword replaces the stored password hash of the given account.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// PushFavourite appends a favourite to the account's sequence.
	PushFavourite(ctx context.Context, id uuid.UUID, favourite entity.Favourite) error

	// RemoveFavourites deletes every favourite of the account whose coordinates
	// equal (lat, lon) exactly. Removing zero favourites is not an error as long
	// as the account exists.
	RemoveFavourites(ctx context.Context, id uuid.UUID, lat, lon float64) error
}
